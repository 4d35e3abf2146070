package session

import (
	"fmt"

	"github.com/avoronov/secdash/internal/transcript"
)

// scriptLine is one message of a scripted playback sequence.
type scriptLine struct {
	text string
	cat  transcript.Category
}

func sysLine(t string) scriptLine     { return scriptLine{text: t, cat: transcript.CategorySystem} }
func infoLine(t string) scriptLine    { return scriptLine{text: t, cat: transcript.CategoryInfo} }
func promptLine(t string) scriptLine  { return scriptLine{text: t, cat: transcript.CategoryPrompt} }
func successLine(t string) scriptLine { return scriptLine{text: t, cat: transcript.CategorySuccess} }
func warnLine(t string) scriptLine    { return scriptLine{text: t, cat: transcript.CategoryWarning} }

const networkErrorFallback = "Network error. Please try again."

func (s *Session) bannerScript() []scriptLine {
	switch s.kind {
	case KindSignup:
		return []scriptLine{
			sysLine("=== SECURITY DASHBOARD REGISTRATION ==="),
			sysLine("Initializing secure registration channel..."),
			sysLine("Connection established."),
			promptLine("Enter username:"),
		}
	case KindLogin:
		return []scriptLine{
			sysLine("=== SECURITY DASHBOARD LOGIN ==="),
			sysLine("Establishing encrypted session..."),
			sysLine("Connection established."),
			promptLine("Enter username:"),
		}
	default:
		lines := []scriptLine{
			sysLine("=== PROFILE MANAGEMENT CONSOLE ==="),
			sysLine(fmt.Sprintf("Loading profile for %s...", s.username)),
		}
		return append(lines, menuScript()...)
	}
}

func menuScript() []scriptLine {
	return []scriptLine{
		infoLine("1. Update username"),
		infoLine("2. Change password"),
		infoLine("3. Review profile"),
		infoLine("4. Save changes"),
		infoLine("5. Delete account"),
		infoLine("6. Logout"),
		infoLine("7. Exit"),
		promptLine("Select an option (1-7):"),
	}
}

// promptScript returns the scripted transition announcing the given step.
func (s *Session) promptScript(step Step) []scriptLine {
	switch step {
	case StepUsername:
		return []scriptLine{promptLine("Enter username:")}
	case StepEmail:
		return []scriptLine{promptLine("Enter email address:")}
	case StepPassword:
		if s.kind == KindSignup {
			return []scriptLine{promptLine("Create password:")}
		}
		return []scriptLine{promptLine("Enter password:")}
	case StepEditUsername:
		return []scriptLine{
			promptLine(fmt.Sprintf("Enter new username (leave empty to keep '%s'):", s.currentUsername())),
		}
	case StepCurrentPassword:
		return []scriptLine{promptLine("Enter current password:")}
	case StepNewPassword:
		return []scriptLine{promptLine("Enter new password (leave empty to cancel):")}
	case StepConfirmPassword:
		return []scriptLine{promptLine("Confirm new password:")}
	case StepConfirmDelete:
		return []scriptLine{
			warnLine("This will permanently delete your account."),
			warnLine("All analysis history will be lost."),
			promptLine("Type DELETE to confirm:"),
		}
	}
	return nil
}

func (s *Session) confirmSaveScript() []scriptLine {
	lines := []scriptLine{warnLine("You are about to apply the following changes:")}
	if s.changed[fieldUsername] {
		lines = append(lines, infoLine(fmt.Sprintf("  username -> %s", s.form[fieldUsername])))
	}
	if s.changed[fieldPassword] {
		lines = append(lines, infoLine("  password -> (updated)"))
	}
	return append(lines, promptLine("Apply changes? (y/n):"))
}

func (s *Session) successScript() []scriptLine {
	switch s.kind {
	case KindSignup:
		return []scriptLine{
			successLine("Account created successfully!"),
			successLine(fmt.Sprintf("Welcome aboard, %s.", s.form[fieldUsername])),
			infoLine("You can now log in with your credentials."),
		}
	case KindLogin:
		return []scriptLine{
			successLine("Authentication successful."),
			successLine(fmt.Sprintf("Access granted. Welcome back, %s.", s.form[fieldUsername])),
			infoLine("Loading security dashboard..."),
		}
	default:
		return []scriptLine{
			successLine("Profile updated successfully."),
			infoLine("Your changes have been saved."),
		}
	}
}

func deleteSuccessScript() []scriptLine {
	return []scriptLine{
		successLine("Account deleted."),
		infoLine("All session data has been cleared. Goodbye."),
	}
}

func logoutScript() []scriptLine {
	return []scriptLine{
		infoLine("Logging out..."),
		successLine("You have been logged out."),
	}
}
