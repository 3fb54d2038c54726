// Package server wires the HopeKeeper backend together: Postgres, the gRPC
// record API, the public HTTP content API and background housekeeping.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/hopekeeper/internal/content"
	"github.com/dmitrijs2005/hopekeeper/internal/logging"
	"github.com/dmitrijs2005/hopekeeper/internal/server/config"
	gs "github.com/dmitrijs2005/hopekeeper/internal/server/grpc"
	"github.com/dmitrijs2005/hopekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/hopekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hopekeeper/internal/server/services"
)

const tokenPurgeInterval = time.Hour

type App struct {
	config        *config.Config
	logger        *logging.ZapLogger
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	userService   *services.UserService
	recordService *services.RecordService
	audioService  *services.AudioService
	catalog       *content.Catalog
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.NewServerZapLogger(cfg.LogFile)

	catalog, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	return &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		repomanager:   rm,
		userService:   services.NewUserService(db, rm, cfg),
		recordService: services.NewRecordService(db, rm),
		audioService:  services.NewAudioService(cfg, catalog),
		catalog:       catalog,
	}, nil
}

// Run migrates the database and serves until SIGINT/SIGTERM or until one of
// the servers fails.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		_ = app.db.Close()
		_ = app.logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	grpcServer := gs.NewServer(app.config.EndpointAddrGRPC, app.logger,
		app.userService, app.recordService, app.config.SecretKey, app.config.PublicKey)
	httpServer := httpapi.NewServer(app.config.EndpointAddrHTTP,
		httpapi.NewRouter(app.logger, app.catalog, app.audioService), app.logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcServer.Run(ctx) })
	if app.config.EndpointAddrHTTP != "" {
		g.Go(func() error { return httpServer.Run(ctx) })
	}
	g.Go(func() error {
		app.purgeTokens(ctx)
		return nil
	})

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) purgeTokens(ctx context.Context) {
	t := time.NewTicker(tokenPurgeInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := app.userService.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "purged refresh tokens", "count", n)
			}
		}
	}
}
