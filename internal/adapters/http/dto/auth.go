package dto

import (
	"time"

	"github.com/mnstudio/quote-studio/internal/domain"
)

// LoginRequest is the payload for email/password sign-in.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,notempty,max=200"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// GoogleSignInRequest carries the opaque credential issued by Google
// sign-in on the client.
type GoogleSignInRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// IdentityResponse is the wire representation of the signed-in identity.
type IdentityResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"isAdmin"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewIdentityResponse maps a domain identity to its wire representation.
func NewIdentityResponse(identity *domain.Identity) IdentityResponse {
	return IdentityResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		Name:      identity.Name,
		IsAdmin:   identity.Admin,
		Avatar:    identity.Avatar,
		CreatedAt: identity.CreatedAt,
	}
}
