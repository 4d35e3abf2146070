// Package api implements the HTTP client for the dashboard backend.
// Each interface method corresponds to one backend operation; transport
// and status failures are mapped to sentinel errors so callers can match
// them with errors.Is / errors.As.
package api

import (
	"context"
)

// Profile is the user record the backend returns.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Client is the backend operation surface used by the session workflows.
// Implementations must honor context cancellation and return at most one
// of (payload, error).
type Client interface {
	// Register creates a new account.
	Register(ctx context.Context, username, email, password string) (*Profile, error)

	// Login authenticates and returns a bearer token.
	Login(ctx context.Context, username, password string) (*Token, error)

	// Me fetches the profile of the token's owner.
	Me(ctx context.Context, token string) (*Profile, error)

	// UpdateUsername changes the username of the account identified by email.
	UpdateUsername(ctx context.Context, token, username, email string) (*Profile, error)

	// ChangePassword replaces the current password.
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error

	// DeleteAccount permanently removes the token's owner.
	DeleteAccount(ctx context.Context, token string) error
}
