package session

import "strings"

// Kind selects which workflow a Session runs.
type Kind string

const (
	KindSignup  Kind = "signup"
	KindLogin   Kind = "login"
	KindProfile Kind = "profile"
)

// Step identifies the stage a Session is in. Exactly one step is active at
// a time; transitions happen only on validated input or network results.
type Step string

const (
	StepUsername        Step = "username"
	StepEmail           Step = "email"
	StepPassword        Step = "password"
	StepMenu            Step = "menu"
	StepEditUsername    Step = "edit_username"
	StepCurrentPassword Step = "current_password"
	StepNewPassword     Step = "new_password"
	StepConfirmPassword Step = "confirm_password"
	StepConfirmSave     Step = "confirm_save"
	StepConfirmDelete   Step = "confirm_delete"
	StepSubmitting      Step = "submitting"
	StepComplete        Step = "complete"
	StepEnded           Step = "ended"
)

// Secret reports whether input for the step must not be echoed verbatim.
func (s Step) Secret() bool {
	switch s {
	case StepPassword, StepCurrentPassword, StepNewPassword, StepConfirmPassword:
		return true
	}
	return false
}

// Terminal reports whether the session accepts no further input.
func (s Step) Terminal() bool {
	return s == StepComplete || s == StepEnded
}

// Form data keys.
const (
	fieldUsername        = "username"
	fieldEmail           = "email"
	fieldPassword        = "password"
	fieldCurrentPassword = "currentPassword"
	fieldNewPassword     = "newPassword"
)

// MenuCommand is the profile menu's operation set, modelled as a tagged
// union instead of raw string comparison so dispatch can be exhaustive.
type MenuCommand int

const (
	MenuUnknown MenuCommand = iota
	MenuUpdateUsername
	MenuChangePassword
	MenuReviewProfile
	MenuSaveChanges
	MenuDeleteAccount
	MenuLogout
	MenuExit
)

// ParseMenuCommand maps a numeric menu choice to its command. Anything
// outside "1".."7" is rejected.
func ParseMenuCommand(input string) (MenuCommand, bool) {
	switch strings.TrimSpace(input) {
	case "1":
		return MenuUpdateUsername, true
	case "2":
		return MenuChangePassword, true
	case "3":
		return MenuReviewProfile, true
	case "4":
		return MenuSaveChanges, true
	case "5":
		return MenuDeleteAccount, true
	case "6":
		return MenuLogout, true
	case "7":
		return MenuExit, true
	}
	return MenuUnknown, false
}
