package terminal

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/avoronov/secdash/internal/client/api"
	"github.com/avoronov/secdash/internal/client/config"
	"github.com/avoronov/secdash/internal/client/repositories/identity"
	"github.com/avoronov/secdash/internal/client/services"
	"github.com/avoronov/secdash/internal/logging"
	"github.com/avoronov/secdash/internal/scheduler"
	"github.com/avoronov/secdash/internal/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config     *config.Config
	account    services.AccountService
	sched      scheduler.Scheduler
	logger     logging.Logger
	sessionCfg session.Config
	reader     *bufio.Reader
	out        io.Writer
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := identity.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	account := services.NewAccountService(apiClient, db)

	sessionCfg := session.DefaultConfig()
	sessionCfg.MessageDelay = c.MessageDelay
	sessionCfg.LongMessageDelay = c.LongMessageDelay
	sessionCfg.SettleDelay = c.SettleDelay
	sessionCfg.CursorBlink = c.CursorBlink

	return &App{
		config:     c,
		account:    account,
		sched:      scheduler.NewTimerScheduler(),
		logger:     logger,
		sessionCfg: sessionCfg,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.sched.Stop()
	runREPL(ctx, a, a.reader)
}

// Signup runs the registration workflow until it completes or the user exits.
func (a *App) Signup(ctx context.Context) error {
	return a.runFlow(ctx, session.KindSignup)
}

// Login runs the authentication workflow.
func (a *App) Login(ctx context.Context) error {
	return a.runFlow(ctx, session.KindLogin)
}

// Profile runs the profile-management workflow.
func (a *App) Profile(ctx context.Context) error {
	return a.runFlow(ctx, session.KindProfile)
}
