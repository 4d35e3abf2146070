// Package identity persists the signed-in identity (bearer token, username,
// email) in a local key-value table. The session reads it once at creation;
// it is written on login and profile save, and cleared on logout or account
// deletion.
package identity

import (
	"context"
)

// Well-known keys.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyEmail    = "email"
)

type Repository interface {
	// Get returns the stored value, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
