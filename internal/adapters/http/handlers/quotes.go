package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnstudio/quote-studio/internal/adapters/http/dto"
	"github.com/mnstudio/quote-studio/internal/adapters/http/middleware"
	"github.com/mnstudio/quote-studio/internal/app"
)

// QuotesHandler exposes the quote collection over HTTP.
type QuotesHandler struct {
	collection *app.Collection
	logger     *slog.Logger
}

// NewQuotesHandler creates a new quotes handler.
func NewQuotesHandler(collection *app.Collection, logger *slog.Logger) *QuotesHandler {
	return &QuotesHandler{
		collection: collection,
		logger:     logger,
	}
}

// List handles GET /api/v1/quotes
// Returns the quotes passing the active filter, newest first, together
// with the category index and the filter state.
func (h *QuotesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewQuoteListResponse(
		h.collection.Filtered(),
		h.collection.Categories(),
		h.collection.Filter(),
	))
}

// UpdateFilter handles PUT /api/v1/quotes/filter
// Updates the view restrictions and returns the resulting view, so the
// caller does not need a second round trip.
func (h *QuotesHandler) UpdateFilter(c *gin.Context) {
	var req dto.FilterRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	if req.SearchTerm != nil {
		h.collection.SetSearchTerm(*req.SearchTerm)
	}

	if req.Category != nil {
		h.collection.SetCategory(*req.Category)
	}

	h.List(c)
}

// Create handles POST /api/v1/quotes
// Admin only; the router guards the route with the admin middleware.
func (h *QuotesHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	identity := middleware.Identity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.ErrorCodeUnauthorized,
			"sign in required",
		))

		return
	}

	quote := h.collection.Add(c.Request.Context(), req.Draft(), identity.ID)

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(*quote))
}

// Like handles POST /api/v1/quotes/:id/like
// Flips the signed-in identity's like on the quote; toggling an unknown
// id changes nothing. Either way the call succeeds.
func (h *QuotesHandler) Like(c *gin.Context) {
	h.collection.ToggleLike(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Save handles POST /api/v1/quotes/:id/save
func (h *QuotesHandler) Save(c *gin.Context) {
	h.collection.ToggleSave(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Share handles POST /api/v1/quotes/:id/share
// No identity required; shares are anonymous.
func (h *QuotesHandler) Share(c *gin.Context) {
	h.collection.RecordShare(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Interactions handles GET /api/v1/quotes/interactions
// Returns the signed-in identity's liked and saved quote ids.
func (h *QuotesHandler) Interactions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.InteractionsResponse{
		Liked: h.collection.Liked(),
		Saved: h.collection.Saved(),
	})
}

// RegisterQuoteRoutes registers quote routes on the given router group.
// Toggles and interaction reads require a signed-in identity; uploads
// additionally require the admin flag.
func (h *QuotesHandler) RegisterQuoteRoutes(rg *gin.RouterGroup, source middleware.IdentitySource) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.List)
	quotes.PUT("/filter", h.UpdateFilter)
	quotes.POST("/:id/share", h.Share)

	signedIn := quotes.Group("")
	signedIn.Use(middleware.RequireIdentity(source))
	signedIn.GET("/interactions", h.Interactions)
	signedIn.POST("/:id/like", h.Like)
	signedIn.POST("/:id/save", h.Save)

	admin := quotes.Group("")
	admin.Use(middleware.RequireIdentity(source), middleware.RequireAdmin())
	admin.POST("", h.Create)
}
