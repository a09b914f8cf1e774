// Package app assembles the campusconnect terminal app from its parts:
// store, account directory, flows, session gate, screens and navigator.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ifpr-pinhais/campusconnect/internal/app/auth"
	"github.com/ifpr-pinhais/campusconnect/internal/app/config"
	"github.com/ifpr-pinhais/campusconnect/internal/app/feed"
	"github.com/ifpr-pinhais/campusconnect/internal/app/navigator"
	"github.com/ifpr-pinhais/campusconnect/internal/app/remote"
	"github.com/ifpr-pinhais/campusconnect/internal/app/screens"
	"github.com/ifpr-pinhais/campusconnect/internal/app/session"
	"github.com/ifpr-pinhais/campusconnect/internal/app/store"
	"github.com/ifpr-pinhais/campusconnect/internal/logging"
)

// App is the assembled application.
type App struct {
	nav *navigator.Navigator
	log logging.Logger

	closers []func() error
}

// New wires the application according to cfg. Input and output default
// to stdin/stdout when nil.
func New(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	log := logging.NewZerologLogger(logging.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	accounts := store.NewAccounts(store.NewSQLiteRepository(db))

	dir, err := buildDirectory(cfg, accounts, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	feedSvc, err := feed.NewService()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load feed data: %w", err)
	}

	flow := auth.NewFlow(dir, accounts, log)
	sess := session.New()
	gate := session.NewGate(accounts, dir, sess, log)

	deps := screens.Deps{
		Flow:     flow,
		Session:  sess,
		Accounts: accounts,
		Feed:     feedSvc,
		In:       bufio.NewReader(in),
		Out:      out,
		Log:      log,
	}

	nav := navigator.New(gate, log, out)
	nav.Handle(screens.NewLanding(deps), false)
	nav.Handle(screens.NewLogin(deps), false)
	nav.Handle(screens.NewRegister(deps), false)
	nav.Handle(screens.NewMainTabs(deps), true)
	nav.Handle(screens.NewProfile(deps), true)

	log.Info(ctx, "app assembled", "backend", string(cfg.Backend), "db", cfg.DatabasePath)

	return &App{
		nav:     nav,
		log:     log,
		closers: []func() error{db.Close},
	}, nil
}

func buildDirectory(cfg *config.Config, accounts *store.Accounts, log logging.Logger) (auth.Directory, error) {
	switch cfg.Backend {
	case config.BackendRemote:
		client, err := remote.New(remote.Config{
			BaseURL: cfg.Remote.BaseURL,
			Timeout: cfg.Remote.Timeout,
		}, log, nil)
		if err != nil {
			return nil, fmt.Errorf("remote backend: %w", err)
		}
		return client, nil
	default:
		return auth.NewLocalDirectory(accounts), nil
	}
}

// Run drives the navigator until exit.
func (a *App) Run(ctx context.Context) error {
	return a.nav.Run(ctx)
}

// Close releases held resources.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
