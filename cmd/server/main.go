package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/forgo/chapel/internal/config"
	"github.com/forgo/chapel/internal/database"
	"github.com/forgo/chapel/internal/handler"
	"github.com/forgo/chapel/internal/middleware"
	"github.com/forgo/chapel/internal/repository"
	"github.com/forgo/chapel/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	slog.SetDefault(newLogger(cfg))

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize document store. A store that cannot be reached at startup is
	// still served: requests fail with 500 until it comes up, and /test reports
	// the cause.
	ctx := context.Background()
	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	// Initialize services
	contentService := service.NewContentService(service.ContentServiceConfig{
		Store: store,
	})
	diagnosticsService := service.NewDiagnosticsService(service.DiagnosticsServiceConfig{
		Store:     store,
		Backend:   cfg.Database.Driver,
		URLIsSet:  cfg.Database.URLIsSet(),
		NameIsSet: cfg.Database.NameIsSet(),
	})

	mux := handler.NewRouter(contentService, diagnosticsService)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(middleware.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		}),
		middleware.RequestSizeLimit(cfg.Server.MaxBodyBytes),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("store", cfg.Database.Driver),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// openStore builds the configured document store and returns a func that
// releases its connection.
func openStore(ctx context.Context, cfg *config.Config) (repository.DocumentStore, func()) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory store, content is lost on restart")
		return repository.NewMemoryStore(cfg.Database.Name), func() {}

	case config.DriverRedis:
		opts := &redis.Options{Addr: "localhost:6379"}
		if cfg.Database.URLIsSet() {
			parsed, err := redis.ParseURL(cfg.Database.URL)
			if err != nil {
				slog.Error("invalid redis url", slog.String("error", err.Error()))
			} else {
				opts = parsed
			}
		} else {
			slog.Warn("DATABASE_URL not set, using default redis address", slog.String("addr", opts.Addr))
		}
		if cfg.Database.User != "" {
			opts.Username = cfg.Database.User
			opts.Password = cfg.Database.Password
		}

		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Warn("failed to connect to redis", slog.String("error", err.Error()))
		} else {
			slog.Info("connected to redis", slog.String("addr", opts.Addr), slog.String("database", cfg.Database.Name))
		}
		return repository.NewRedisStore(client, cfg.Database.Name), func() { _ = client.Close() }

	default:
		db := database.NewSurrealDB(database.Config{
			URL:       cfg.Database.URL,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Name,
		})

		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := db.Connect(connectCtx); err != nil {
			slog.Warn("failed to connect to database, will retry on first use", slog.String("error", err.Error()))
		} else {
			slog.Info("connected to database",
				slog.String("namespace", cfg.Database.Namespace),
				slog.String("database", cfg.Database.Name),
			)
		}
		return repository.NewSurrealStore(db), func() { _ = db.Close() }
	}
}
