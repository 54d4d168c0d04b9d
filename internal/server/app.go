// Package server initializes and runs the passvault server: it wires the
// backing store, the domain services and the HTTP API, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"passvault/internal/logging"
	"passvault/internal/server/config"
	"passvault/internal/server/httpapi"
	"passvault/internal/server/shared/db"
	"passvault/internal/server/transfer"
	"passvault/internal/server/users"
	"passvault/internal/server/vault"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	repos           db.RepositoryManager
	userService     *users.Service
	vaultService    *vault.Service
	transferService *transfer.Service
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var rm db.RepositoryManager
	var err error

	if cfg.UseInMemory {
		rm = db.NewInMemoryRepositoryManager()
	} else {
		rm, err = db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	us := users.NewService(rm.Users(), cfg)
	vs := vault.NewService(rm.Entries(), logger)
	ts := transfer.NewService(rm.Entries(), logger)

	return &App{
		config:          cfg,
		logger:          logger,
		repos:           rm,
		userService:     us,
		vaultService:    vs,
		transferService: ts,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.userService, app.vaultService, app.transferService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "error closing store", "error", err.Error())
	}
}
