package terminal

import (
	"context"
	"time"

	"github.com/avoronov/secdash/internal/session"
	"github.com/avoronov/secdash/internal/transcript"
)

// sessionFlow is the slice of the session surface the flow loop drives.
// The real *session.Session satisfies it; tests can provide a stub.
type sessionFlow interface {
	Start(ctx context.Context)
	HandleInput(ctx context.Context, input string)
	Step() session.Step
	Armed() bool
	Teardown()
	Transcript() *transcript.Log
}

// newSessionFn is a test seam for session construction.
var newSessionFn = func(kind session.Kind, deps session.Deps) sessionFlow {
	switch kind {
	case session.KindSignup:
		return session.NewSignup(deps)
	case session.KindLogin:
		return session.NewLogin(deps)
	default:
		return session.NewProfile(deps)
	}
}

// armedPollInterval paces the wait for scripted playback to settle before
// the next read from the terminal.
const armedPollInterval = 25 * time.Millisecond

// runFlow drives one workflow session: it renders transcript lines as they
// arrive, reads user input whenever the prompt is armed, and returns when the
// session signals completion or exit, or when input reaches EOF.
func (a *App) runFlow(ctx context.Context, kind session.Kind) error {
	done := make(chan struct{}, 2)
	deps := session.Deps{
		Account:   a.account,
		Scheduler: a.sched,
		Logger:    a.logger,
		Config:    a.sessionCfg,
		Events: session.Events{
			OnComplete: func() { done <- struct{}{} },
			OnExit:     func() { done <- struct{}{} },
		},
	}

	s := newSessionFn(kind, deps)
	s.Transcript().SetObserver(a.render)
	s.Start(ctx)
	defer s.Teardown()

	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !s.Armed() {
			time.Sleep(armedPollInterval)
			continue
		}

		line, err := a.readLine(s.Step())
		if err != nil {
			return nil
		}
		s.HandleInput(ctx, line)
	}
}

// readLine reads one line of input for the given step; secret steps read
// without terminal echo.
func (a *App) readLine(step session.Step) (string, error) {
	if step.Secret() {
		return GetSecret("> ", a.out)
	}
	return GetSimpleText(a.reader, "", a.out)
}

// render prints a transcript line as it is appended. User input is shown
// with a "> " prefix; everything else is printed verbatim (error lines
// already carry their own marker).
func (a *App) render(l transcript.Line) {
	if l.Category == transcript.CategoryUser {
		printlnFn("> " + l.Text)
		return
	}
	printlnFn(l.Text)
}
