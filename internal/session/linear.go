package session

import (
	"context"
	"strings"

	"github.com/avoronov/secdash/internal/transcript"
	"github.com/avoronov/secdash/internal/validate"
)

func (s *Session) linearSteps() []Step {
	if s.kind == KindSignup {
		return []Step{StepUsername, StepEmail, StepPassword}
	}
	return []Step{StepUsername, StepPassword}
}

// handleLinearInput advances the signup/login field sequence. Empty-trimmed
// input is dropped without a transcript line or a transition. Validation
// failures emit their messages and keep the step; valid input echoes, is
// recorded, and either moves to the next field or submits.
func (s *Session) handleLinearInput(ctx context.Context, raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}

	value := trimmed
	if s.step.Secret() {
		value = raw
	}

	if errs := s.validateLinearField(value); len(errs) > 0 {
		for _, e := range errs {
			s.log.Append(transcript.CategoryError, e)
		}
		return
	}

	s.echo(value)
	s.form[string(s.step)] = value
	s.logger.Debug(ctx, "field accepted", "step", s.step)

	steps := s.linearSteps()
	for i, st := range steps {
		if st != s.step {
			continue
		}
		if i == len(steps)-1 {
			s.submitLinear()
		} else {
			s.step = steps[i+1]
			s.play(s.promptScript(s.step), nil)
		}
		return
	}
}

func (s *Session) validateLinearField(value string) []string {
	switch s.step {
	case StepUsername:
		return validate.Username(value)
	case StepEmail:
		return validate.Email(value)
	case StepPassword:
		return validate.Password(value)
	}
	return nil
}

// submitLinear moves to the submitting step and defers the network call for
// the workflow's terminal operation. The busy gate stays set until the
// result is applied.
func (s *Session) submitLinear() {
	s.step = StepSubmitting
	s.busy = true
	s.armed = false

	if s.kind == KindSignup {
		s.log.Append(transcript.CategoryInfo, "Creating account...")
	} else {
		s.log.Append(transcript.CategoryInfo, "Authenticating...")
	}

	gen := s.gen
	username := s.form[fieldUsername]
	email := s.form[fieldEmail]
	password := s.form[fieldPassword]
	kind := s.kind

	h := s.sched.After(s.cfg.MessageDelay, func() {
		ctx := context.Background()
		var err error
		if kind == KindSignup {
			err = s.account.Register(ctx, username, email, password)
		} else {
			_, err = s.account.Login(ctx, username, password)
		}
		s.applyLinearResult(gen, err)
	})
	s.handles = append(s.handles, h)
}

// applyLinearResult finishes a linear submission: success plays the success
// script then completes; failure emits the error line and restarts the
// field sequence from the first field. Results for a superseded generation
// are ignored.
func (s *Session) applyLinearResult(gen uint64, err error) {
	s.ifCurrent(gen, func() {
		s.busy = false

		if err != nil {
			s.failWorkflow(err)
			s.form = make(map[string]string)
			s.step = s.linearSteps()[0]
			s.play(s.promptScript(s.step), nil)
			return
		}

		s.play(s.successScript(), func() {
			s.step = StepComplete
			s.emitEvent(s.events.OnComplete)
		})
	})
}
