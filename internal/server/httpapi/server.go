// Package httpapi exposes the range over HTTP/JSON. Routes are declared in a
// table that records each route's authorization policy and query path, and
// no route enforces its policy.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/wcorp/cyberrange/internal/logging"
	"github.com/wcorp/cyberrange/internal/server/config"
	"github.com/wcorp/cyberrange/internal/server/models"
)

const shutdownTimeout = 10 * time.Second

type Accounts interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	LegacyLogin(ctx context.Context, username, password string) (*models.LoginResult, error)
}

type Records interface {
	Profile(ctx context.Context, id string) (*models.User, error)
	Sensitive(ctx context.Context, userID string) ([]*models.SensitiveRecord, error)
	Notes(ctx context.Context, userID string) ([]*models.InternalNote, error)
	Search(ctx context.Context, q string) ([]models.Row, error)
}

type Admin interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

type Uploads interface {
	Save(ctx context.Context, originalName string, r io.Reader) (*models.File, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*models.FetchResult, error)
}

// Services bundles the business logic the handlers call into.
type Services struct {
	Accounts Accounts
	Records  Records
	Admin    Admin
	Uploads  Uploads
	Fetcher  Fetcher
}

type Server struct {
	address string
	config  *config.Config
	logger  logging.Logger
	svc     Services
}

func NewServer(cfg *config.Config, l logging.Logger, svc Services) *Server {
	return &Server{
		address: cfg.Addr(),
		config:  cfg,
		logger:  l.With("module", "http_server"),
		svc:     svc,
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
