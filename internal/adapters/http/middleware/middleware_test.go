package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnstudio/quote-studio/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubSource struct {
	identity *domain.Identity
}

func (s *stubSource) Current() *domain.Identity { return s.identity }

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())

	var captured string

	engine.GET("/", func(c *gin.Context) {
		captured = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, captured)
	assert.Equal(t, captured, rec.Header().Get(HeaderRequestID))
}

func TestRequestID_PropagatesHeader(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "caller-supplied")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "caller-supplied", rec.Header().Get(HeaderRequestID))
}

func TestRequireIdentity(t *testing.T) {
	cases := []struct {
		name       string
		identity   *domain.Identity
		wantStatus int
	}{
		{name: "signed out", identity: nil, wantStatus: http.StatusUnauthorized},
		{name: "signed in", identity: &domain.Identity{ID: "u1"}, wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(RequireIdentity(&stubSource{identity: tc.identity}))
			engine.GET("/", func(c *gin.Context) {
				require.NotNil(t, Identity(c))
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name       string
		identity   *domain.Identity
		wantStatus int
	}{
		{name: "admin", identity: &domain.Identity{ID: "u1", Admin: true}, wantStatus: http.StatusOK},
		{name: "not admin", identity: &domain.Identity{ID: "u2"}, wantStatus: http.StatusForbidden},
		{name: "signed out", identity: nil, wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(RequireIdentity(&stubSource{identity: tc.identity}), RequireAdmin())
			engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestRecovery_ReturnsErrorEnvelope(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(discardLogger()))
	engine.GET("/", func(*gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestLogging_PassesThrough(t *testing.T) {
	engine := gin.New()
	engine.Use(Logging(discardLogger()))
	engine.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
