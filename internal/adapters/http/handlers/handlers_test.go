package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mnstudio/quote-studio/internal/adapters/store"
	"github.com/mnstudio/quote-studio/internal/app"
	"github.com/mnstudio/quote-studio/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRig wires a full API surface over in-memory state.
type testRig struct {
	engine     *gin.Engine
	identity   *app.Identity
	collection *app.Collection
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	kv := store.NewMemory()
	logger := discardLogger()

	identity := app.NewIdentity(app.IdentityConfig{
		Store:      kv,
		AdminEmail: "admin@mnstudio.com",
		Logger:     logger,
	})

	collection := app.NewCollection(app.CollectionConfig{
		Store:  kv,
		Logger: logger,
		Seed:   app.SeedQuotes(),
	})

	identity.OnChange(func(id *domain.Identity) {
		collection.SetIdentity(context.Background(), id)
	})

	engine := gin.New()
	api := engine.Group("/api/v1")

	NewQuotesHandler(collection, logger).RegisterQuoteRoutes(api, identity)
	NewAuthHandler(identity, logger).RegisterAuthRoutes(api)

	return &testRig{
		engine:     engine,
		identity:   identity,
		collection: collection,
	}
}

func (r *testRig) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	r.engine.ServeHTTP(rec, req)

	return rec
}

func (r *testRig) signIn(t *testing.T, email string) {
	t.Helper()

	rec := r.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}
