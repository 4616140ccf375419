package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"user-crud-service/internal/config"
	"user-crud-service/pkg/logger"
)

// NewPgxPool opens a pgx connection pool sized from the database settings
func NewPgxPool(ctx context.Context, cfg *config.Config, l *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.DB.MaxOpenConns)
	poolCfg.MaxConnLifetime = time.Duration(cfg.DB.ConnMaxLifetime) * time.Second
	poolCfg.MaxConnIdleTime = time.Duration(cfg.DB.ConnMaxIdleTime) * time.Second
	poolCfg.ConnConfig.Tracer = logger.NewPgxTracer(l, cfg.Logger.Level)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	l.Info("database connected successfully",
		zap.String("driver", config.DriverPgx),
		zap.String("url", cfg.DB.RedactedURL()),
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Duration("max_conn_lifetime", poolCfg.MaxConnLifetime),
		zap.Duration("max_conn_idle_time", poolCfg.MaxConnIdleTime),
	)

	return pool, nil
}
