package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnstudio/quote-studio/internal/adapters/http/dto"
)

func TestAuth_Login(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "reader@example.com",
		"password": "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[dto.IdentityResponse](t, rec)
	assert.Equal(t, "reader@example.com", resp.Email)
	assert.Equal(t, "reader", resp.Name)
	assert.False(t, resp.IsAdmin)
}

func TestAuth_Login_AdminFlag(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "admin@mnstudio.com",
		"password": "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[dto.IdentityResponse](t, rec)
	assert.True(t, resp.IsAdmin)
}

func TestAuth_Login_MalformedEmail(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "not-an-email",
		"password": "pw",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeJSON[dto.ErrorResponse](t, rec)
	assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "email")
}

func TestAuth_RegisterThenLogin(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Reader One",
		"email":    "reader@example.com",
		"password": "s3cret-pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rig.do(t, http.MethodPost, "/api/v1/auth/logout", nil)

	// Wrong password is rejected once the account exists.
	rec = rig.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "reader@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = rig.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "reader@example.com",
		"password": "s3cret-pw",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[dto.IdentityResponse](t, rec)
	assert.Equal(t, "Reader One", resp.Name)
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	rig := newTestRig(t)

	body := gin.H{"name": "Reader", "email": "reader@example.com", "password": "s3cret-pw"}

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = rig.do(t, http.MethodPost, "/api/v1/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_Google_Unconfigured(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/google", gin.H{
		"credential": "some-token",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuth_Me(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rig.signIn(t, "reader@example.com")

	rec = rig.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[dto.IdentityResponse](t, rec)
	assert.Equal(t, "reader@example.com", resp.Email)
}

func TestAuth_Logout_ClearsIdentity(t *testing.T) {
	rig := newTestRig(t)
	rig.signIn(t, "reader@example.com")

	rec := rig.do(t, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = rig.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Signing out twice is fine.
	rec = rig.do(t, http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
