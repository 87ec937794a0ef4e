package domain

import "time"

// Identity is the signed-in user. At most one identity is active in the
// process at any time; the collection manager only reads it transiently
// to resolve the current user id.
type Identity struct {
	// ID is the unique identifier for the identity.
	ID string

	// Email is the sign-in address.
	Email string

	// Name is the display name.
	Name string

	// Admin marks the identity allowed to upload quotes.
	Admin bool

	// Avatar is an optional picture URL.
	Avatar string

	// CreatedAt is when the identity was first established.
	CreatedAt time.Time
}
