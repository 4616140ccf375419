package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"user-crud-service/cmd/api/app"
	"user-crud-service/cmd/api/server"
	"user-crud-service/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "user-crud-service",
	Short:        "HTTP service for creating and reading users",
	Long:         `A Gin service that stores users in PostgreSQL, with an optional Redis read-through cache`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration with secrets redacted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), cfg)
		return cfg.Validate()
	},
}

func serve(ctx context.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := server.WithSignal(ctx)
	defer stop()

	return application.Run(ctx)
}

func printConfig(w io.Writer, cfg *config.Config) {
	redisPassword := ""
	if cfg.Redis.Password != "" {
		redisPassword = "xxxxx"
	}

	rows := []struct {
		key   string
		value any
	}{
		{"APP_ENV", cfg.App.Env},
		{"HTTP_HOST", cfg.App.Host},
		{"PORT", cfg.App.Port},
		{"SHUTDOWN_TIMEOUT_SECONDS", cfg.App.ShutdownTimeoutSeconds},
		{"DATABASE_URL", cfg.DB.RedactedURL()},
		{"DB_DRIVER", cfg.DB.Driver},
		{"DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns},
		{"DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns},
		{"DB_CONN_MAX_LIFETIME_SECONDS", cfg.DB.ConnMaxLifetime},
		{"DB_CONN_MAX_IDLE_TIME_SECONDS", cfg.DB.ConnMaxIdleTime},
		{"DB_QUERY_TIMEOUT_SECONDS", cfg.DB.QueryTimeoutSeconds},
		{"REDIS_ENABLED", cfg.Redis.Enabled},
		{"REDIS_HOST", cfg.Redis.Host},
		{"REDIS_PORT", cfg.Redis.Port},
		{"REDIS_PASSWORD", redisPassword},
		{"REDIS_DB", cfg.Redis.DB},
		{"REDIS_CACHE_TTL_SECONDS", cfg.Redis.CacheTTL},
		{"LOG_LEVEL", cfg.Logger.Level},
		{"LOG_FORMAT", cfg.Logger.Format},
		{"LOG_OUTPUT_PATH", cfg.Logger.OutputPath},
		{"SERVICE_NAME", cfg.Logger.ServiceName},
		{"SERVICE_VERSION", cfg.Logger.ServiceVersion},
	}

	for _, r := range rows {
		fmt.Fprintf(w, "%s=%v\n", r.key, r.value)
	}
}
