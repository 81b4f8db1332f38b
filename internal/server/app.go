// Package server wires the range together: it connects to the store with a
// bounded retry, applies migrations, builds the services and serves HTTP
// until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wcorp/cyberrange/internal/dbx"
	"github.com/wcorp/cyberrange/internal/logging"
	"github.com/wcorp/cyberrange/internal/server/config"
	"github.com/wcorp/cyberrange/internal/server/httpapi"
	"github.com/wcorp/cyberrange/internal/server/objectstore"
	"github.com/wcorp/cyberrange/internal/server/repositories/repomanager"
	"github.com/wcorp/cyberrange/internal/server/services"
)

const dbDriver = "pgx"

// Seams for tests.
var (
	openDB               = dbx.OpenWithRetry
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	newMirror            = func(ctx context.Context, c *config.Config) (services.Mirror, error) {
		return objectstore.NewS3Mirror(ctx, c)
	}
	newLogger = func() logging.Logger { return logging.NewJSONLogger(os.Stdout, slog.LevelInfo) }
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// NewApp connects to the store and builds every component. Any error here
// is fatal for the process.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := newLogger()
	logger.Info(ctx, "Configuration loaded", "config", c.String())

	db, err := openDB(ctx, dbDriver, c.DatabaseDSN(), c.DBConnectAttempts, c.DBConnectDelay, func(attempt int, err error) {
		logger.Warn(ctx, "Database connection attempt failed",
			"attempt", attempt, "max_attempts", c.DBConnectAttempts, "retry_in", c.DBConnectDelay, "error", err)
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	logger.Info(ctx, "Connected to database", "host", c.DBHost, "name", c.DBName)

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var mirror services.Mirror
	if c.MirrorEnabled() {
		m, err := newMirror(ctx, c)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("object store init error: %w", err)
		}
		mirror = m
		logger.Info(ctx, "Upload mirror enabled", "bucket", c.S3Bucket)
	}

	svc := httpapi.Services{
		Accounts: services.NewUserService(db, rm, c, logger),
		Records:  services.NewRecordService(db, rm),
		Admin:    services.NewAdminService(db, rm),
		Uploads:  services.NewUploadService(db, rm, c, mirror, logger),
		Fetcher:  services.NewFetchService(c),
	}

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: httpapi.NewServer(c, logger, svc),
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

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "W Corp Cyber Range Server starting", "port", app.config.Port, "env", app.config.NodeEnv)

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr)
	}
	return err
}
