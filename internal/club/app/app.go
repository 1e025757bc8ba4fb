package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/blob"
	"github.com/aussiebroadwan/clubhouse/internal/club/events"
	httpapi "github.com/aussiebroadwan/clubhouse/internal/club/http"
	"github.com/aussiebroadwan/clubhouse/internal/club/metrics"
	"github.com/aussiebroadwan/clubhouse/internal/club/pos"
	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/aussiebroadwan/clubhouse/internal/club/store/drivers/sqlite"
	"github.com/aussiebroadwan/clubhouse/pkg/cryptox"
	"github.com/aussiebroadwan/clubhouse/pkg/jwtx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application is the clubhouse process: the HTTP API and the membership
// worker sharing one store and event bus.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	bus        events.Bus
	blobs      blob.Store
	sessions   *pos.Registry
	registry   *prometheus.Registry
	metrics    *metrics.Metrics

	// Services
	identity  *service.IdentityService
	provision *service.ProvisionService
	inventory *service.InventoryService
	members   *service.MemberService
	dispense  *service.DispenseService
	pos       *service.POSService
	history   *service.HistoryService
	stats     *service.StatsService
	worker    *service.MembershipWorker

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

func newLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "clubhouse",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: newLogger(cfg),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	if err := app.initEvents(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	blobs, err := blob.NewFSStore(app.cfg.BlobDir, app.cfg.BlobBaseURL)
	if err != nil {
		app.closeDeps()
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	app.blobs = blobs

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Migrate applies the database migrations and exits.
func Migrate(cfg Config) error {
	logger := newLogger(cfg)

	db, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	logger.Info("database migrations applied successfully", "database", cfg.DatabaseFile)
	return nil
}

// Run serves HTTP and runs the membership worker until ctx is cancelled or
// either of them fails, then shuts everything down.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("clubhouse starting", "port", app.cfg.Port, "version", BuildVersion)

	ctx = slogx.WithContext(ctx, app.logger)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return app.worker.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested")
		return app.shutdownServer()
	})

	err := g.Wait()
	app.closeDeps()
	app.logger.Info("clubhouse stopped")
	return err
}

// shutdownServer gives outstanding requests the grace period to finish.
func (app *Application) shutdownServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (app *Application) closeDeps() {
	if app.bus != nil {
		if err := app.bus.Close(); err != nil {
			app.logger.Error("error closing event bus", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
	}
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initEvents connects to Redis when REDIS_ADDR is set and falls back to an
// in-process bus otherwise. The in-process bus loses undelivered events on
// restart.
func (app *Application) initEvents() error {
	if app.cfg.RedisAddr == "" {
		app.bus = events.NewMemoryBus(0)
		app.logger.Warn("REDIS_ADDR not set, using in-process event bus")
		return nil
	}

	consumer, err := os.Hostname()
	if err != nil || consumer == "" {
		consumer = "clubhouse"
	}

	bus, err := events.NewRedisBusFromAddr(app.cfg.RedisAddr, events.RedisConfig{
		Stream:   app.cfg.EventStream,
		Consumer: consumer,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize event bus: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bus.Ping(ctx); err != nil {
		_ = bus.Close()
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	app.bus = bus
	app.logger.Info("redis event bus connected", "stream", app.cfg.EventStream, "consumer", consumer)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.sessions = pos.NewRegistry(app.cfg.POSMaxSessions, app.cfg.POSSessionTTL)

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry, app.sessions.Len)
	if rb, ok := app.bus.(*events.RedisBus); ok {
		metrics.RegisterEventBacklog(app.registry, func() (int64, error) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return rb.Pending(ctx)
		})
	}

	app.identity = &service.IdentityService{
		Store:      app.db,
		KeyManager: app.keyManager,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTokenTTL,
	}
	app.provision = &service.ProvisionService{Store: app.db, Metrics: app.metrics}
	app.inventory = &service.InventoryService{Store: app.db}
	app.members = &service.MemberService{
		Store:         app.db,
		Blobs:         app.blobs,
		MaxPhotoBytes: app.cfg.MaxPhotoBytes,
	}
	app.dispense = &service.DispenseService{
		Store:   app.db,
		Events:  app.bus,
		Metrics: app.metrics,
	}
	app.pos = &service.POSService{
		Registry:  app.sessions,
		Inventory: app.inventory,
		Dispense:  app.dispense,
	}
	app.history = &service.HistoryService{Store: app.db}
	app.stats = &service.StatsService{Store: app.db, LowStockThreshold: app.cfg.LowStockThreshold}

	app.worker = &service.MembershipWorker{
		Store:   app.db,
		Events:  app.bus,
		Metrics: app.metrics,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.Events = app.bus
	router.Identity = app.identity
	router.Provision = app.provision
	router.Inventory = app.inventory
	router.Members = app.members
	router.POS = app.pos
	router.History = app.history
	router.Stats = app.stats
	router.MaxPhotoBytes = app.cfg.MaxPhotoBytes
	router.ApplyRoutes()

	router.Mux.Handle("GET /metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
