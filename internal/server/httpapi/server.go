// Package httpapi exposes the REST surface of the vault: signup/login,
// per-owner entry CRUD, and bulk export/import. All routes except
// /auth/signup and /auth/login require a Bearer token.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"passvault/internal/logging"
	"passvault/internal/server/transfer"
	"passvault/internal/server/users"
	"passvault/internal/server/vault"
)

type Server struct {
	address  string
	users    *users.Service
	vault    *vault.Service
	transfer *transfer.Service
	logger   logging.Logger
}

func NewServer(address string, l logging.Logger, us *users.Service, vs *vault.Service, ts *transfer.Service) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		users:    us,
		vault:    vs,
		transfer: ts,
	}
}

// Routes builds the request multiplexer. Method dispatch for /vault happens
// inside the handler, mirroring the single-resource shape of the API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/signup", s.handleSignup)
	mux.HandleFunc("/auth/login", s.handleLogin)

	mux.HandleFunc("/vault", s.withAuth(s.handleVault))
	mux.HandleFunc("/vault/export", s.withAuth(s.handleExport))
	mux.HandleFunc("/vault/import", s.withAuth(s.handleImport))

	return mux
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down server", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
