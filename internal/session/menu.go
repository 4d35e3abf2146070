package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avoronov/secdash/internal/client/services"
	"github.com/avoronov/secdash/internal/transcript"
	"github.com/avoronov/secdash/internal/validate"
)

// deleteConfirmLiteral is the exact text required to confirm account
// deletion; anything else returns to the menu without a network call.
const deleteConfirmLiteral = "DELETE"

func (s *Session) handleMenuInput(ctx context.Context, raw string) {
	switch s.step {
	case StepMenu:
		s.handleMenuChoice(ctx, raw)
	case StepEditUsername:
		s.handleEditUsername(raw)
	case StepCurrentPassword, StepNewPassword, StepConfirmPassword:
		s.handlePasswordChain(raw)
	case StepConfirmSave:
		s.handleConfirmSave(raw)
	case StepConfirmDelete:
		s.handleConfirmDelete(raw)
	}
}

func (s *Session) handleMenuChoice(ctx context.Context, raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}

	cmd, ok := ParseMenuCommand(trimmed)
	if !ok {
		s.echo(trimmed)
		s.log.Append(transcript.CategoryError, "Invalid option. Please select 1-7.")
		s.play(menuScript(), nil)
		return
	}

	s.echo(trimmed)
	s.logger.Debug(ctx, "menu command", "command", cmd)

	switch cmd {
	case MenuUpdateUsername:
		s.step = StepEditUsername
		s.play(s.promptScript(StepEditUsername), nil)

	case MenuChangePassword:
		s.step = StepCurrentPassword
		s.play(s.promptScript(StepCurrentPassword), nil)

	case MenuReviewProfile:
		s.play(append(s.reviewScript(), menuScript()...), nil)

	case MenuSaveChanges:
		if !s.changed[fieldUsername] && !s.changed[fieldPassword] {
			s.play(append([]scriptLine{infoLine("No changes to save.")}, menuScript()...), nil)
			return
		}
		s.step = StepConfirmSave
		s.play(s.confirmSaveScript(), nil)

	case MenuDeleteAccount:
		s.step = StepConfirmDelete
		s.play(s.promptScript(StepConfirmDelete), nil)

	case MenuLogout:
		if err := s.account.Logout(ctx); err != nil {
			s.logger.Error(ctx, "logout failed", "error", err)
			s.log.Append(transcript.CategoryError, "[ERROR] "+networkErrorFallback)
			s.play(menuScript(), nil)
			return
		}
		s.play(logoutScript(), func() {
			s.step = StepEnded
			s.emitEvent(s.events.OnExit)
		})

	case MenuExit:
		s.play([]scriptLine{infoLine("Exiting profile management.")}, func() {
			s.step = StepEnded
			s.emitEvent(s.events.OnExit)
		})
	}
}

// handleEditUsername records a pending username change. An empty value
// means "keep the current one" and goes straight back to the menu without
// recording anything.
func (s *Session) handleEditUsername(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		s.log.Append(transcript.CategoryInfo, "Keeping current username.")
		s.returnToMenu()
		return
	}

	if errs := validate.Username(trimmed); len(errs) > 0 {
		for _, e := range errs {
			s.log.Append(transcript.CategoryError, e)
		}
		return
	}

	s.echo(trimmed)
	s.form[fieldUsername] = trimmed
	s.changed[fieldUsername] = true
	s.log.Append(transcript.CategoryInfo,
		fmt.Sprintf("Username will be updated to '%s' on save.", trimmed))
	s.returnToMenu()
}

// handlePasswordChain walks the current → new → confirm sub-chain and
// records the pending change on success. An empty new password cancels the
// sub-flow.
func (s *Session) handlePasswordChain(raw string) {
	switch s.step {
	case StepCurrentPassword:
		if errs := validate.CurrentPassword(raw); len(errs) > 0 {
			for _, e := range errs {
				s.log.Append(transcript.CategoryError, e)
			}
			return
		}
		s.echo(raw)
		s.form[fieldCurrentPassword] = raw
		s.step = StepNewPassword
		s.play(s.promptScript(StepNewPassword), nil)

	case StepNewPassword:
		if raw == "" {
			delete(s.form, fieldCurrentPassword)
			s.log.Append(transcript.CategoryInfo, "Password change cancelled.")
			s.returnToMenu()
			return
		}
		if errs := validate.Password(raw); len(errs) > 0 {
			for _, e := range errs {
				s.log.Append(transcript.CategoryError, e)
			}
			return
		}
		s.echo(raw)
		s.form[fieldNewPassword] = raw
		s.step = StepConfirmPassword
		s.play(s.promptScript(StepConfirmPassword), nil)

	case StepConfirmPassword:
		if errs := validate.ConfirmPassword(raw, s.form[fieldNewPassword]); len(errs) > 0 {
			for _, e := range errs {
				s.log.Append(transcript.CategoryError, e)
			}
			return
		}
		s.echo(raw)
		s.changed[fieldPassword] = true
		s.log.Append(transcript.CategoryInfo,
			"Password change recorded. Select 'Save changes' to apply.")
		s.returnToMenu()
	}
}

func (s *Session) handleConfirmSave(raw string) {
	answer := strings.ToLower(strings.TrimSpace(raw))
	s.echo(answer)
	if answer == "y" || answer == "yes" {
		s.submitProfileSave()
		return
	}
	s.log.Append(transcript.CategoryInfo, "Save cancelled.")
	s.returnToMenu()
}

func (s *Session) handleConfirmDelete(raw string) {
	trimmed := strings.TrimSpace(raw)
	s.echo(trimmed)
	if trimmed != deleteConfirmLiteral {
		s.log.Append(transcript.CategoryWarning, "Account deletion cancelled.")
		s.returnToMenu()
		return
	}
	s.submitDeleteAccount()
}

func (s *Session) reviewScript() []scriptLine {
	lines := []scriptLine{
		infoLine("Username: " + s.username),
		infoLine("Email: " + s.email),
	}
	if s.changed[fieldUsername] {
		lines = append(lines, infoLine(fmt.Sprintf("Pending: username -> %s", s.form[fieldUsername])))
	}
	if s.changed[fieldPassword] {
		lines = append(lines, infoLine("Pending: password change"))
	}
	if info, ok := services.InspectToken(s.token); ok && !info.ExpiresAt.IsZero() {
		lines = append(lines, infoLine("Session expires: "+info.ExpiresAt.Format(time.RFC1123)))
	}
	return lines
}
