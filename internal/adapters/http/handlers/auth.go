package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnstudio/quote-studio/internal/adapters/http/dto"
	"github.com/mnstudio/quote-studio/internal/adapters/http/middleware"
	"github.com/mnstudio/quote-studio/internal/app"
)

// AuthHandler exposes the identity service over HTTP.
type AuthHandler struct {
	identity *app.Identity
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(identity *app.Identity, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		logger:   logger,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	identity, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewIdentityResponse(identity))
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	identity, err := h.identity.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewIdentityResponse(identity))
}

// GoogleSignIn handles POST /api/v1/auth/google
// Answers 503 when no Google client is configured.
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req dto.GoogleSignInRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		dto.HandleBindingError(c, err)
		return
	}

	identity, err := h.identity.SignInWithProvider(c.Request.Context(), req.Credential)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewIdentityResponse(identity))
}

// Logout handles POST /api/v1/auth/logout
// Signing out while signed out is fine.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.identity.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
// Returns the signed-in identity.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.Identity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.ErrorCodeUnauthorized,
			"sign in required",
		))

		return
	}

	c.JSON(http.StatusOK, dto.NewIdentityResponse(identity))
}

// RegisterAuthRoutes registers auth routes on the given router group.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.Register)
	auth.POST("/google", h.GoogleSignIn)
	auth.POST("/logout", h.Logout)

	me := auth.Group("")
	me.Use(middleware.RequireIdentity(h.identity))
	me.GET("/me", h.Me)
}
