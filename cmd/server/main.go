package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starfield-server/internal/auth"
	"starfield-server/internal/galaxy"
	"starfield-server/internal/middleware"
	"starfield-server/internal/selection"
	"starfield-server/internal/server"
	serverHandlers "starfield-server/internal/server/handlers"
	"starfield-server/internal/session"
	"starfield-server/internal/shared/config"
	"starfield-server/internal/shared/database"
	"starfield-server/internal/shared/logger"
	sharedredis "starfield-server/internal/shared/redis"
	"starfield-server/internal/system"
)

const sweepInterval = 10 * time.Minute

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	u := cfg.Universe
	generator, err := system.NewGenerator(u.Palette)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}
	scanner, err := galaxy.NewScanner(generator, galaxy.Grid{Width: u.GridWidth, Height: u.GridHeight})
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	resolver := selection.NewResolver(generator)
	galaxyService := galaxy.NewService(scanner, u.Normalization, u.ScanWorkers, slog.Default())
	systemService := system.NewService(generator, u.Normalization, slog.Default())
	selectionService := selection.NewService(resolver, u.Normalization, slog.Default())

	repo, check, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sessionService := session.NewService(repo, galaxyService, resolver, u.Normalization, u.PanSpeed, cfg.Session.TTL, slog.Default())

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	health := serverHandlers.NewHealthHandler(string(cfg.Session.Store), check)
	routes := server.NewRoutes(galaxyService, systemService, selectionService, sessionService, tokens, health, slog.Default())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	go rateLimiter.Run(ctx)

	cors := middleware.NewCORS(cfg.Frontend)
	handler := cors.Middleware(rateLimiter.Middleware(routes.Setup()))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starfield server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"session_store", cfg.Session.Store,
			"grid_width", u.GridWidth,
			"grid_height", u.GridHeight,
			"normalization", u.Normalization,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// openSessionStore connects the configured session backend. The returned
// check pings it for the health endpoint and is nil for the in-memory store.
func openSessionStore(ctx context.Context, cfg *config.Config) (session.Repository, serverHandlers.StoreCheck, func(), error) {
	log := slog.With("component", "main", "operation", "open_session_store", "store", cfg.Session.Store)

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := sharedredis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		check := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("Failed to close redis client", "error", err)
			}
		}
		return session.NewRedisRepository(client.Client, cfg.Redis.KeyPrefix, slog.Default()), check, closeFn, nil

	case config.SessionStorePostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.RunMigrations(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		repo := session.NewPostgresRepository(db, slog.Default())
		go sweepPostgres(ctx, repo)

		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database", "error", err)
			}
		}
		return repo, db.PingContext, closeFn, nil

	default:
		repo := session.NewMemoryRepository(slog.Default())
		go repo.RunSweeper(ctx, sweepInterval)
		return repo, nil, func() {}, nil
	}
}

func sweepPostgres(ctx context.Context, repo *session.PostgresRepository) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("Failed to sweep expired sessions", "component", "main", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("Swept expired sessions", "component", "main", "removed", n)
			}
		}
	}
}
