// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"
	"fmt"
)

// KeyValueStore is the durable device-local store. It survives process
// restarts but is never shared across devices. No transactional guarantees
// beyond single-key atomicity are assumed.
type KeyValueStore interface {
	// Get retrieves the value stored under key.
	// The second return value is false if the key is absent.
	Get(ctx context.Context, key StoreKey) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key StoreKey, value string) error

	// Delete removes the value stored under key.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, key StoreKey) error
}

// StoreKey is an opaque storage key. Keys are always built through the
// constructors below so the on-disk shape lives in exactly one place and
// per-identity records cannot collide by accident.
type StoreKey string

// InteractionKind distinguishes the two per-identity interaction sets.
type InteractionKind string

const (
	// InteractionLikes is the set of quote ids the identity has liked.
	InteractionLikes InteractionKind = "likes"

	// InteractionSaves is the set of quote ids the identity has saved.
	InteractionSaves InteractionKind = "saves"
)

// CurrentIdentityKey returns the key holding the serialized signed-in identity.
func CurrentIdentityKey() StoreKey {
	return "identity/current"
}

// InteractionKey returns the key holding one identity's interaction set.
func InteractionKey(identityID string, kind InteractionKind) StoreKey {
	return StoreKey(fmt.Sprintf("interactions/%s/%s", identityID, kind))
}

// AccountKey returns the key holding a registered account record,
// addressed by sign-in email.
func AccountKey(email string) StoreKey {
	return StoreKey("accounts/" + email)
}
