// Package validate holds the per-field input rules for the session
// workflows. Functions are pure: they take the raw value and return the
// list of human-readable violations (empty slice means valid).
package validate

import (
	"regexp"
	"strings"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
)

// Username requires a trimmed, non-empty value of at least 3 characters
// from [a-zA-Z0-9_-]. Length and charset violations accumulate.
func Username(v string) []string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return []string{"Username is required"}
	}

	var errs []string
	if len(trimmed) < 3 {
		errs = append(errs, "Username must be at least 3 characters")
	}
	if !usernameRe.MatchString(trimmed) {
		errs = append(errs, "Username can only contain letters, numbers, underscores and hyphens")
	}
	return errs
}

// Email requires a trimmed, non-empty value in basic local@domain.tld shape.
func Email(v string) []string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return []string{"Email is required"}
	}
	if !emailRe.MatchString(trimmed) {
		return []string{"Please enter a valid email address"}
	}
	return nil
}

// Password checks the primary/new password. The checks are deliberately
// chained: an empty password reports only "required", a short one only the
// length rule, and complexity rules fire one at a time.
func Password(v string) []string {
	if v == "" {
		return []string{"Password is required"}
	} else if len(v) < 8 {
		return []string{"Password must be at least 8 characters"}
	} else if !upperRe.MatchString(v) {
		return []string{"Password must contain at least one uppercase letter"}
	} else if !lowerRe.MatchString(v) {
		return []string{"Password must contain at least one lowercase letter"}
	} else if !digitRe.MatchString(v) {
		return []string{"Password must contain at least one number"}
	}
	return nil
}

// ConfirmPassword compares the confirmation against the just-entered new
// password. An empty new password skips the check entirely.
func ConfirmPassword(v, newPassword string) []string {
	if newPassword == "" {
		return nil
	}
	if v != newPassword {
		return []string{"Passwords do not match"}
	}
	return nil
}

// CurrentPassword only requires a non-empty value.
func CurrentPassword(v string) []string {
	if v == "" {
		return []string{"Current password is required"}
	}
	return nil
}
