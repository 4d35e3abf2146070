// Package session implements the interactive session controller behind the
// simulated-terminal workflows: signup, login, and profile management.
//
// A Session owns the current step, the accumulated form data, and a single
// busy flag gating network submissions. All timed behavior (scripted
// playback, the settle delay before the prompt arms, the cursor blink) runs
// through an injected Scheduler so a restart can cancel everything still
// pending. Errors never escape the session: every failure becomes transcript
// lines plus a state transition back to an interactive step.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avoronov/secdash/internal/client/services"
	"github.com/avoronov/secdash/internal/logging"
	"github.com/avoronov/secdash/internal/scheduler"
	"github.com/avoronov/secdash/internal/transcript"
)

// Config carries the playback timing knobs.
type Config struct {
	// MessageDelay is the pause before each scripted message.
	MessageDelay time.Duration
	// LongMessageDelay replaces MessageDelay for messages longer than
	// LongMessageThreshold characters.
	LongMessageDelay     time.Duration
	LongMessageThreshold int
	// SettleDelay is the pause after the last scripted message before the
	// prompt arms.
	SettleDelay time.Duration
	// CursorBlink is the cursor toggle interval.
	CursorBlink time.Duration
}

func DefaultConfig() Config {
	return Config{
		MessageDelay:         100 * time.Millisecond,
		LongMessageDelay:     200 * time.Millisecond,
		LongMessageThreshold: 30,
		SettleDelay:          500 * time.Millisecond,
		CursorBlink:          500 * time.Millisecond,
	}
}

// Events are the session's completion signals to its caller.
type Events struct {
	// OnComplete fires when a workflow finishes successfully.
	OnComplete func()
	// OnExit fires when the user leaves the workflow (logout, exit).
	OnExit func()
}

// Deps are the collaborators a Session needs.
type Deps struct {
	Account   services.AccountService
	Scheduler scheduler.Scheduler
	Logger    logging.Logger
	Events    Events
	Config    Config
}

// Session is one live workflow instance.
type Session struct {
	mu   sync.Mutex
	id   string
	kind Kind

	step    Step
	form    map[string]string
	changed map[string]bool

	// persisted identity, read once at Start
	token    string
	username string
	email    string

	busy     bool // a network request is outstanding
	armed    bool // the prompt accepts input
	cursorOn bool

	// gen invalidates pending timer callbacks and in-flight network
	// results after a restart or teardown.
	gen     uint64
	handles []scheduler.Handle
	blink   scheduler.Handle

	log     *transcript.Log
	sched   scheduler.Scheduler
	account services.AccountService
	cfg     Config
	logger  logging.Logger
	events  Events
}

// NewSignup creates a signup session; the first step collects the username.
func NewSignup(deps Deps) *Session { return newSession(KindSignup, deps) }

// NewLogin creates a login session.
func NewLogin(deps Deps) *Session { return newSession(KindLogin, deps) }

// NewProfile creates a profile-management session starting at the menu.
func NewProfile(deps Deps) *Session { return newSession(KindProfile, deps) }

func newSession(kind Kind, deps Deps) *Session {
	cfg := deps.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	s := &Session{
		id:      uuid.NewString(),
		kind:    kind,
		step:    initialStep(kind),
		form:    make(map[string]string),
		changed: make(map[string]bool),
		log:     transcript.NewLog(),
		sched:   deps.Scheduler,
		account: deps.Account,
		cfg:     cfg,
		logger:  deps.Logger.With("session", kind),
		events:  deps.Events,
	}
	return s
}

func initialStep(kind Kind) Step {
	if kind == KindProfile {
		return StepMenu
	}
	return StepUsername
}

// Start reads the persisted identity, starts the cursor blink, and plays
// the workflow banner. Call it once, after registering any transcript
// observer.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.account.LoadIdentity(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to load persisted identity", "error", err)
		id = &services.Identity{}
	}
	s.token, s.username, s.email = id.Token, id.Username, id.Email

	if info, ok := services.InspectToken(s.token); ok {
		if s.username == "" {
			s.username = info.Subject
		}
		if info.Expired(time.Now()) {
			s.log.Append(transcript.CategoryWarning, "Session token has expired. Please log in again.")
		}
	}

	// Profile sessions refresh from the backend when reachable; the
	// persisted identity remains the fallback.
	if s.kind == KindProfile && s.token != "" {
		if p, err := s.account.Profile(ctx, s.token); err == nil && p != nil {
			s.username, s.email = p.Username, p.Email
		}
	}

	s.blink = s.sched.Every(s.cfg.CursorBlink, s.toggleCursor)
	s.logger.Debug(ctx, "session started", "id", s.id, "step", s.step)
	s.play(s.bannerScript(), nil)
}

// Restart aborts whatever is pending (scripted playback, the settle delay,
// even the result of an in-flight network call) and replays the workflow
// from its initial state with a fresh transcript run. The cursor blink
// survives restarts; only Teardown stops it.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.cancelPending()
	s.busy = false
	s.armed = false
	s.form = make(map[string]string)
	s.changed = make(map[string]bool)
	s.step = initialStep(s.kind)
	s.log.Reset()
	s.logger.Debug(context.Background(), "session restarted", "id", s.id)
	s.play(s.bannerScript(), nil)
}

// Teardown cancels all pending work including the cursor blink. The session
// must not be used afterwards.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.cancelPending()
	if s.blink != "" {
		s.sched.Cancel(s.blink)
		s.blink = ""
	}
	s.armed = false
	s.logger.Debug(context.Background(), "session torn down", "id", s.id)
}

func (s *Session) cancelPending() {
	for _, h := range s.handles {
		s.sched.Cancel(h)
	}
	s.handles = s.handles[:0]
}

// HandleInput is the single entry point for user input. Input is dropped
// while a network request is outstanding or a script is still playing, and
// after the session reached a terminal step.
func (s *Session) HandleInput(ctx context.Context, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy || !s.armed || s.step.Terminal() {
		return
	}

	switch s.kind {
	case KindProfile:
		s.handleMenuInput(ctx, raw)
	default:
		s.handleLinearInput(ctx, raw)
	}
}

// play schedules the lines for ordered playback: each line appends after
// its own per-message delay, and after the final line plus the settle delay
// the prompt arms (or then runs instead, when provided). Callers must hold
// s.mu. Stale callbacks from a superseded playback are dropped via the
// generation check.
func (s *Session) play(lines []scriptLine, then func()) {
	gen := s.gen
	s.armed = false

	var cum time.Duration
	for _, line := range lines {
		cum += s.delayFor(line.text)
		line := line
		h := s.sched.After(cum, func() {
			s.ifCurrent(gen, func() {
				s.log.Append(line.cat, line.text)
			})
		})
		s.handles = append(s.handles, h)
	}

	cum += s.cfg.SettleDelay
	h := s.sched.After(cum, func() {
		s.ifCurrent(gen, func() {
			if then != nil {
				then()
				return
			}
			s.armed = true
		})
	})
	s.handles = append(s.handles, h)
}

func (s *Session) delayFor(text string) time.Duration {
	if len(text) > s.cfg.LongMessageThreshold {
		return s.cfg.LongMessageDelay
	}
	return s.cfg.MessageDelay
}

// ifCurrent runs fn under the session lock unless the session moved on to a
// newer generation in the meantime.
func (s *Session) ifCurrent(gen uint64, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	fn()
}

func (s *Session) toggleCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorOn = !s.cursorOn
}

// echo appends the user's input to the transcript, masking secret steps.
func (s *Session) echo(value string) {
	text := value
	if s.step.Secret() {
		text = strings.Repeat("*", len(value))
	}
	s.log.Append(transcript.CategoryUser, text)
}

func (s *Session) currentUsername() string {
	if v, ok := s.form[fieldUsername]; ok && s.changed[fieldUsername] {
		return v
	}
	return s.username
}

func (s *Session) emitEvent(cb func()) {
	if cb != nil {
		go cb()
	}
}

// ---- accessors ----

// ID returns the session's unique instance id.
func (s *Session) ID() string { return s.id }

// Kind returns the workflow this session runs.
func (s *Session) Kind() Kind { return s.kind }

// Step returns the currently active step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Armed reports whether the prompt currently accepts input.
func (s *Session) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Busy reports whether a network request is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// CursorVisible reports the blinking-caret state.
func (s *Session) CursorVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorOn
}

// Transcript exposes the session's transcript log.
func (s *Session) Transcript() *transcript.Log { return s.log }
