package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/cmd/api/infrastructure"
	"user-crud-service/internal/adapter/cache"
	"user-crud-service/internal/adapter/db/pgxrepo"
	"user-crud-service/internal/adapter/db/postgres"
	ginhandler "user-crud-service/internal/adapter/gin/handler"
	"user-crud-service/internal/adapter/repository/cached"
	"user-crud-service/internal/config"
	"user-crud-service/internal/usecase/user"
	redisclient "user-crud-service/pkg/redis"
)

// pingableRepository is a user repository that can report database reachability
type pingableRepository interface {
	user.Repository
	Ping(ctx context.Context) error
}

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	Pool        *pgxpool.Pool
	RedisClient *redisclient.Client
	UserUC      user.UserUsecase
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	dbRepo, err := c.newRepository()
	if err != nil {
		return nil, err
	}

	checks := []ginhandler.HealthCheck{{Name: "database", Ping: dbRepo.Ping}}
	var repo user.Repository = dbRepo

	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewCachedUserRepository(dbRepo, userCache, l,
			cached.WithSharedReadTimeout(cfg.DB.QueryTimeout()))
		checks = append(checks, ginhandler.HealthCheck{Name: "redis", Ping: rdb.Ping})
	}

	c.UserUC = user.New(repo, l, user.WithQueryTimeout(cfg.DB.QueryTimeout()))
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l, cfg.Logger.ServiceName, checks...)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	return c, nil
}

// newRepository opens the pool for the configured driver and wraps it in its repository
func (c *Container) newRepository() (pingableRepository, error) {
	switch c.Config.DB.Driver {
	case config.DriverPgx:
		pool, err := infrastructure.NewPgxPool(context.Background(), c.Config, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.Pool = pool
		return pgxrepo.NewUserRepoPgx(pool, c.Logger), nil
	default:
		db, err := infrastructure.NewDatabase(c.Config, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		return postgres.NewUserRepoPG(db, c.Logger), nil
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if c.Pool != nil {
		c.Pool.Close()
	}

	return errors.Join(errs...)
}
