package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/avoronova/sympathy/internal/cache"
	"github.com/avoronova/sympathy/internal/config"
	deliveryhttp "github.com/avoronova/sympathy/internal/delivery/http"
	"github.com/avoronova/sympathy/internal/delivery/http/handler"
	"github.com/avoronova/sympathy/internal/delivery/http/middleware"
	"github.com/avoronova/sympathy/internal/infrastructure/database"
	"github.com/avoronova/sympathy/internal/infrastructure/server"
	"github.com/avoronova/sympathy/internal/notifier"
	"github.com/avoronova/sympathy/internal/repository/postgres"
	"github.com/avoronova/sympathy/internal/usecase/auth"
	"github.com/avoronova/sympathy/internal/usecase/list"
	"github.com/avoronova/sympathy/internal/usecase/match"
	"github.com/avoronova/sympathy/internal/watermark"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	appCache := cache.New(redisClient)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	coincidenceRepo := postgres.NewCoincidenceRepository(db)

	// Infrastructure services
	watermarker := watermark.New(cfg.Storage.WatermarkPath, cfg.Storage.StaticDir)
	emailNotifier := notifier.NewEmailNotifier(&cfg.SMTP)

	// Use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		watermarker,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessExpiryMin)*time.Minute,
	)
	matchUseCase := match.NewMatchUseCase(
		coincidenceRepo,
		userRepo,
		appCache,
		emailNotifier,
		cfg.RateLimit.MatchDailyLimit,
		cfg.RateLimit.Window,
	)
	listUseCase := list.NewListUseCase(userRepo, appCache, cfg.Cache.ListTTL)

	// HTTP layer
	authHandler := handler.NewAuthHandler(authUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	listHandler := handler.NewListHandler(listUseCase)
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	readiness := func(ctx context.Context) error {
		if err := appCache.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		return nil
	}

	router := deliveryhttp.NewRouter(
		authHandler,
		matchHandler,
		listHandler,
		authMiddleware,
		cfg.Storage.StaticDir,
		readiness,
	)

	srv := server.NewServer(&cfg.Server, router.Setup())

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close releases held connections.
func (c *Container) Close() error {
	if err := c.Redis.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
