package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avoronov/secdash/internal/client/api"
	"github.com/avoronov/secdash/internal/client/services"
	"github.com/avoronov/secdash/internal/logging"
	"github.com/avoronov/secdash/internal/scheduler"
	"github.com/avoronov/secdash/internal/transcript"
)

// ---- manual scheduler ----

// fakeTask records one scheduled task so tests can drive playback
// deterministically, without real timers.
type fakeTask struct {
	handle    scheduler.Handle
	delay     time.Duration
	fn        func()
	repeating bool
	cancelled bool
	ran       bool
}

type fakeScheduler struct {
	mu     sync.Mutex
	nextID int
	tasks  []*fakeTask
}

func newFakeScheduler() *fakeScheduler { return &fakeScheduler{} }

func (f *fakeScheduler) add(d time.Duration, fn func(), repeating bool) scheduler.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	task := &fakeTask{
		handle:    scheduler.Handle(fmt.Sprintf("fake_%d", f.nextID)),
		delay:     d,
		fn:        fn,
		repeating: repeating,
	}
	f.tasks = append(f.tasks, task)
	return task.handle
}

func (f *fakeScheduler) After(d time.Duration, fn func()) scheduler.Handle {
	return f.add(d, fn, false)
}

func (f *fakeScheduler) Every(d time.Duration, fn func()) scheduler.Handle {
	return f.add(d, fn, true)
}

func (f *fakeScheduler) Cancel(h scheduler.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, task := range f.tasks {
		if task.handle == h {
			task.cancelled = true
		}
	}
}

func (f *fakeScheduler) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, task := range f.tasks {
		task.cancelled = true
	}
}

// runPending executes every runnable one-shot task in scheduling order,
// including tasks scheduled by tasks it runs.
func (f *fakeScheduler) runPending() {
	for {
		f.mu.Lock()
		var next *fakeTask
		for _, task := range f.tasks {
			if !task.repeating && !task.cancelled && !task.ran {
				next = task
				break
			}
		}
		f.mu.Unlock()
		if next == nil {
			return
		}
		next.ran = true
		next.fn()
	}
}

// tick fires every live repeating task once (the cursor blink).
func (f *fakeScheduler) tick() {
	f.mu.Lock()
	var fns []func()
	for _, task := range f.tasks {
		if task.repeating && !task.cancelled {
			fns = append(fns, task.fn)
		}
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// pendingOneShots returns the not-yet-run, not-cancelled one-shot tasks.
func (f *fakeScheduler) pendingOneShots() []*fakeTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*fakeTask
	for _, task := range f.tasks {
		if !task.repeating && !task.cancelled && !task.ran {
			out = append(out, task)
		}
	}
	return out
}

// ---- fake account service ----

type fakeAccount struct {
	RegisterErr error

	LoginRet *services.Identity
	LoginErr error

	ProfileRet *api.Profile
	ProfileErr error

	SaveUsernameErr   error
	ChangePasswordErr error
	DeleteAccountErr  error
	LogoutErr         error

	LoadRet *services.Identity
	LoadErr error

	Calls []string

	LastRegisterUsername string
	LastRegisterEmail    string
	LastRegisterPassword string
	LastLoginUsername    string
	LastLoginPassword    string
	LastSaveToken        string
	LastSaveUsername     string
	LastSaveEmail        string
	LastCurrentPassword  string
	LastNewPassword      string
}

func (f *fakeAccount) Register(ctx context.Context, username, email, password string) error {
	f.Calls = append(f.Calls, "register")
	f.LastRegisterUsername = username
	f.LastRegisterEmail = email
	f.LastRegisterPassword = password
	return f.RegisterErr
}

func (f *fakeAccount) Login(ctx context.Context, username, password string) (*services.Identity, error) {
	f.Calls = append(f.Calls, "login")
	f.LastLoginUsername = username
	f.LastLoginPassword = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeAccount) Profile(ctx context.Context, token string) (*api.Profile, error) {
	f.Calls = append(f.Calls, "profile")
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeAccount) SaveUsername(ctx context.Context, token, username, email string) error {
	f.Calls = append(f.Calls, "saveUsername")
	f.LastSaveToken = token
	f.LastSaveUsername = username
	f.LastSaveEmail = email
	return f.SaveUsernameErr
}

func (f *fakeAccount) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	f.Calls = append(f.Calls, "changePassword")
	f.LastCurrentPassword = currentPassword
	f.LastNewPassword = newPassword
	return f.ChangePasswordErr
}

func (f *fakeAccount) DeleteAccount(ctx context.Context, token string) error {
	f.Calls = append(f.Calls, "deleteAccount")
	return f.DeleteAccountErr
}

func (f *fakeAccount) Logout(ctx context.Context) error {
	f.Calls = append(f.Calls, "logout")
	return f.LogoutErr
}

func (f *fakeAccount) LoadIdentity(ctx context.Context) (*services.Identity, error) {
	if f.LoadRet != nil {
		return f.LoadRet, f.LoadErr
	}
	return &services.Identity{}, f.LoadErr
}

func (f *fakeAccount) called(name string) bool {
	for _, c := range f.Calls {
		if c == name {
			return true
		}
	}
	return false
}

// expiredTestToken builds a signed JWT whose exp lies in the past.
func expiredTestToken(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// ---- construction helpers ----

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestSession(t *testing.T, kind Kind, acct *fakeAccount, events Events) (*Session, *fakeScheduler) {
	t.Helper()
	sched := newFakeScheduler()
	deps := Deps{
		Account:   acct,
		Scheduler: sched,
		Logger:    discardLogger(),
		Events:    events,
		Config:    DefaultConfig(),
	}
	var s *Session
	switch kind {
	case KindSignup:
		s = NewSignup(deps)
	case KindLogin:
		s = NewLogin(deps)
	default:
		s = NewProfile(deps)
	}
	return s, sched
}

// startSession runs Start and drains the banner playback so the prompt is
// armed.
func startSession(t *testing.T, s *Session, sched *fakeScheduler) {
	t.Helper()
	s.Start(context.Background())
	sched.runPending()
	if !s.Armed() {
		t.Fatal("session prompt should be armed after banner playback")
	}
}

// submitLine feeds one input and drains all resulting playback.
func submitLine(s *Session, sched *fakeScheduler, line string) {
	s.HandleInput(context.Background(), line)
	sched.runPending()
}

func transcriptTexts(s *Session) []string {
	lines := s.Transcript().Lines()
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Text)
	}
	return out
}

func hasLine(s *Session, text string) bool {
	for _, got := range transcriptTexts(s) {
		if got == text {
			return true
		}
	}
	return false
}

func countLine(s *Session, text string) int {
	n := 0
	for _, got := range transcriptTexts(s) {
		if got == text {
			n++
		}
	}
	return n
}

func categories(s *Session) []transcript.Category {
	lines := s.Transcript().Lines()
	out := make([]transcript.Category, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Category)
	}
	return out
}
