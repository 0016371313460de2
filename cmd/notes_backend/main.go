package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/notes_app/internal/core/ports/repositories"
	"github.com/SscSPs/notes_app/internal/core/services"
	"github.com/SscSPs/notes_app/internal/handlers"
	"github.com/SscSPs/notes_app/internal/middleware"
	"github.com/SscSPs/notes_app/internal/platform/config"
	"github.com/SscSPs/notes_app/internal/repositories/database/mongodb"
	"github.com/SscSPs/notes_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/notes_app/internal/repositories/memory"
	"github.com/SscSPs/notes_app/internal/utils"
	"github.com/SscSPs/notes_app/internal/validation"
	"github.com/SscSPs/notes_app/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title Notes Backend API
// @version 1.0
// @description Notes service with cookie based sessions and Google sign-in.

// @host localhost:3000
// @BasePath /api

// @securityDefinitions.apikey CookieAuth
// @in header
// @name Authorization
// @description The authToken cookie is preferred. "Bearer" followed by a space and the access token also works.
func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := repos.Close(closeCtx); cerr != nil {
			logger.Error("Error closing storage", slog.String("error", cerr.Error()))
		}
	}()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		logger.Info("Connected to Redis; login rate limit is shared")
	}

	loginLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit, "login", redisClient)
	if err != nil {
		return err
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	serviceContainer, err := services.NewServiceContainer(cfg, repos)
	if err != nil {
		return err
	}

	validation.Install()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouterDeps{
		Users:        repos.UserRepo,
		LoginLimiter: loginLimiter,
		Posthog:      posthogClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("Shutting down server", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// openRepositories connects the configured storage driver and returns its repositories.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), nil

	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(), nil

	default:
		client, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		if err := mongodb.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase)); err != nil {
			_ = client.Disconnect(ctx)
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("Connected to MongoDB", slog.String("database", cfg.MongoDatabase))
		return mongodb.NewRepositoryProvider(client, cfg.MongoDatabase), nil
	}
}
