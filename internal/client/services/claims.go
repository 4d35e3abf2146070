package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can learn from a bearer token without the
// server's signing key: the subject (username) and the expiry.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectToken parses the token without verifying its signature; the server
// remains the authority, this is display-only (expiry warnings, prefill).
// A malformed token yields (nil, false) rather than an error.
func InspectToken(token string) (*TokenInfo, bool) {
	if token == "" {
		return nil, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, true
}

// Expired reports whether the token carries an expiry in the past.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}
