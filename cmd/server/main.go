package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/Simplici0/walletcalc/internal/catalog"
	"github.com/Simplici0/walletcalc/internal/config"
	"github.com/Simplici0/walletcalc/internal/db"
	"github.com/Simplici0/walletcalc/internal/migrations"
	"github.com/Simplici0/walletcalc/internal/observability"
	"github.com/Simplici0/walletcalc/internal/seed"
)

const shutdownTimeout = 10 * time.Second

// catalogResources is the catalog selected by CATALOG_SOURCE. Admin and DB are
// only set for the sqlite source.
type catalogResources struct {
	Catalog catalog.Catalog
	Admin   *catalog.SQLite
	DB      *sql.DB
}

func (c *catalogResources) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func main() {
	container := buildContainer()

	err := container.Invoke(func(srv *server, cfg *config.ServerConfig, res *catalogResources, logger *zap.Logger) error {
		defer func() {
			if err := res.Close(); err != nil {
				logger.Error("failed to close database", zap.Error(err))
			}
			_ = logger.Sync()
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, srv.routes(), cfg)
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		logger, err := observability.InitLogger(cfg.IsDev())
		if err != nil {
			return nil, err
		}
		observability.SetLogger(logger)
		return logger, nil
	}); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Catalog
	if err := container.Provide(openCatalog); err != nil {
		log.Fatalf("Failed to provide catalog: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(func(cfg *config.Config, res *catalogResources, cors *config.CORSConfig) (*server, error) {
		return newServer(res.Catalog, res.Admin, cfg.CurrencySymbol, cors)
	}); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

func openCatalog(cfg *config.Config, logger *zap.Logger) (*catalogResources, error) {
	if cfg.UsesDatabase() {
		return openSQLiteCatalog(cfg.DBPath, logger)
	}

	switch cfg.Catalog.Source {
	case config.CatalogStatic:
		logger.Info("using built-in catalog")
		return &catalogResources{Catalog: catalog.Static()}, nil

	case config.CatalogFile:
		table, err := catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded catalog file", zap.String("path", cfg.Catalog.File))
		return &catalogResources{Catalog: table}, nil

	default:
		return nil, fmt.Errorf("unsupported catalog source %q", cfg.Catalog.Source)
	}
}

func openSQLiteCatalog(dbPath string, logger *zap.Logger) (*catalogResources, error) {
	ctx := context.Background()
	database, err := db.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrations.Up(ctx, database, observability.NewGooseLogger(logger)); err != nil {
		database.Close()
		return nil, fmt.Errorf("run database migrations: %w", err)
	}

	stats, err := seed.Run(ctx, database, seed.DefaultConfig())
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	logger.Info("catalog database ready",
		zap.String("path", dbPath),
		zap.Int("inserted", stats.Inserts),
		zap.Int("skipped", stats.Skipped),
	)

	store := catalog.NewSQLite(database)
	return &catalogResources{Catalog: store, Admin: store, DB: database}, nil
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, handler http.Handler, cfg *config.ServerConfig) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	logger := observability.FromContext(ctx)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
