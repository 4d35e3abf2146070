package session

import (
	"context"
	"errors"

	"github.com/avoronov/secdash/internal/client/api"
	"github.com/avoronov/secdash/internal/transcript"
)

// failWorkflow turns a network or transport failure into a transcript error
// line, preferring the server-provided message over the generic fallback.
func (s *Session) failWorkflow(err error) {
	msg := api.Message(err)
	if msg == "" {
		msg = networkErrorFallback
	}
	s.log.Append(transcript.CategoryError, "[ERROR] "+msg)
	s.logger.Debug(context.Background(), "submission failed",
		"step", s.step, "unavailable", errors.Is(err, api.ErrUnavailable))
}

// submitProfileSave pushes the pending profile changes: the username update
// first, then the password change. The first failure aborts the sequence
// and rolls back to the menu.
func (s *Session) submitProfileSave() {
	s.step = StepSubmitting
	s.busy = true
	s.armed = false
	s.log.Append(transcript.CategoryInfo, "Saving changes...")

	gen := s.gen
	token := s.token
	email := s.email
	newUsername := s.form[fieldUsername]
	currentPassword := s.form[fieldCurrentPassword]
	newPassword := s.form[fieldNewPassword]
	changeUsername := s.changed[fieldUsername]
	changePassword := s.changed[fieldPassword]

	h := s.sched.After(s.cfg.MessageDelay, func() {
		ctx := context.Background()
		var err error
		if changeUsername {
			err = s.account.SaveUsername(ctx, token, newUsername, email)
		}
		if err == nil && changePassword {
			err = s.account.ChangePassword(ctx, token, currentPassword, newPassword)
		}
		s.applyProfileSaveResult(gen, err, changeUsername, newUsername)
	})
	s.handles = append(s.handles, h)
}

func (s *Session) applyProfileSaveResult(gen uint64, err error, changedUsername bool, newUsername string) {
	s.ifCurrent(gen, func() {
		s.busy = false

		if err != nil {
			s.failWorkflow(err)
			s.returnToMenu()
			return
		}

		if changedUsername {
			s.username = newUsername
		}
		s.form = make(map[string]string)
		s.changed = make(map[string]bool)
		s.play(s.successScript(), func() {
			s.step = StepComplete
			s.emitEvent(s.events.OnComplete)
		})
	})
}

// submitDeleteAccount runs the destructive delete after the typed
// confirmation already matched.
func (s *Session) submitDeleteAccount() {
	s.step = StepSubmitting
	s.busy = true
	s.armed = false
	s.log.Append(transcript.CategoryInfo, "Deleting account...")

	gen := s.gen
	token := s.token

	h := s.sched.After(s.cfg.MessageDelay, func() {
		err := s.account.DeleteAccount(context.Background(), token)
		s.applyDeleteResult(gen, err)
	})
	s.handles = append(s.handles, h)
}

func (s *Session) applyDeleteResult(gen uint64, err error) {
	s.ifCurrent(gen, func() {
		s.busy = false

		if err != nil {
			s.failWorkflow(err)
			s.returnToMenu()
			return
		}

		s.play(deleteSuccessScript(), func() {
			s.step = StepComplete
			s.emitEvent(s.events.OnComplete)
		})
	})
}

// returnToMenu is the profile flow's recovery transition: back to the hub
// with the menu redisplayed and input re-armed.
func (s *Session) returnToMenu() {
	s.step = StepMenu
	s.play(menuScript(), nil)
}
