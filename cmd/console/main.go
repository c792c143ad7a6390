package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_console/internal/cache"
	"github.com/GTDGit/inventory_console/internal/config"
	"github.com/GTDGit/inventory_console/internal/database"
	"github.com/GTDGit/inventory_console/internal/handler"
	"github.com/GTDGit/inventory_console/internal/middleware"
	"github.com/GTDGit/inventory_console/internal/notify"
	"github.com/GTDGit/inventory_console/internal/repository"
	"github.com/GTDGit/inventory_console/internal/session"
	"github.com/GTDGit/inventory_console/internal/sse"
	"github.com/GTDGit/inventory_console/internal/view"
	"github.com/GTDGit/inventory_console/internal/worker"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

// main is the entrypoint for the inventory admin console.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("api", cfg.API.BaseURL).Msg("starting inventory console")

	// 3. Open session storage
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := openStorage(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Session.Backend).Msg("session storage unavailable")
		fmt.Fprintf(os.Stderr, "session storage unavailable: %v\n", err)
		os.Exit(1)
	}
	defer backend.close()
	log.Info().Str("backend", cfg.Session.Backend).Msg("session storage ready")

	// 4. Initialize inventory API client
	api := inventory.NewClient(inventory.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Debug:   !cfg.IsProduction(),
		OnError: notify.APIErrorHook,
	})

	// 5. Initialize session manager
	manager := session.NewManager(backend.storage, api.Auth, session.Options{
		TTL:             cfg.Session.TTL,
		RevalidateAfter: cfg.Session.RevalidateAfter,
		Policy:          session.Policy(cfg.Session.ValidationPolicy),
	})

	// 6. Initialize web session and route guard
	webSession, err := middleware.NewWebSession(cfg.Session.Secret, cfg.Session.CookieSecure, manager)
	if err != nil {
		log.Error().Err(err).Msg("web session setup failed")
		fmt.Fprintf(os.Stderr, "web session setup failed: %v\n", err)
		os.Exit(1)
	}
	guard := middleware.NewRouteGuard(cfg.Session.GuardInitWait, handler.Loading)

	// 7. Load templates
	templates, err := view.New()
	if err != nil {
		log.Error().Err(err).Msg("template parsing failed")
		fmt.Fprintf(os.Stderr, "template parsing failed: %v\n", err)
		os.Exit(1)
	}

	// 8. Initialize handlers
	hub := sse.NewHub()
	handlers := &handler.Handlers{
		Health:    handler.NewHealthHandler(api, backend.ping),
		Auth:      handler.NewAuthHandler(middleware.NewLoginRateLimiter()),
		Dashboard: handler.NewDashboardHandler(api),
		Product:   handler.NewProductHandler(api),
		Category:  handler.NewCategoryHandler(api),
		Supplier:  handler.NewSupplierHandler(api),
		Order:     handler.NewOrderHandler(api, sse.NewHubNotifier(hub)),
		SSE:       handler.NewSSEHandler(hub),
	}

	// 9. Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HTMLRender = templates
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(webSession.Handle())
	router.Use(middleware.CSRFMiddleware())
	handler.SetupRoutes(router, handlers, guard)

	// 10. Start workers
	go worker.NewSessionSweeper(backend.sweeper, manager, cfg.Session.SweepInterval).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers and end open event streams
	cancel()
	hub.Close()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// storageBackend is the session storage chosen by SESSION_BACKEND.
type storageBackend struct {
	storage session.Storage
	sweeper worker.ExpiredSessionStore
	ping    func(ctx context.Context) error
	close   func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storageBackend, error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &storageBackend{
			storage: cache.NewSessionCache(redisClient),
			ping:    redisClient.Ping,
			close:   func() { _ = redisClient.Close() },
		}, nil

	case config.BackendPostgres:
		db, err := database.Connect(ctx, &cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db.DB, database.MigrationsURL); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Msg("migrations completed successfully")
		repo := repository.NewSessionRepository(db)
		return &storageBackend{
			storage: repo,
			sweeper: repo,
			ping:    db.PingContext,
			close:   func() { _ = db.Close() },
		}, nil

	default:
		log.Warn().Msg("Using in-memory session storage; sessions are lost on restart")
		mem := session.NewMemoryStorage()
		return &storageBackend{
			storage: mem,
			sweeper: mem,
			close:   func() {},
		}, nil
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
