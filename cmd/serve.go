package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/psds-microservice/blog-platform/internal/application"
	"github.com/psds-microservice/blog-platform/internal/config"
	"github.com/psds-microservice/blog-platform/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, cfgErr := config.LoadConfig(configPath)
	if cfgErr != nil {
		envCfg, envErr := config.LoadConfigFromEnv()
		if envErr == nil {
			envErr = envCfg.Validate()
		}
		if envErr == nil {
			cfg = envCfg
		} else {
			cfg = config.GetDefaultConfig()
			cfg.Runtime = config.ResolveFromOS()
		}
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, debug)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	if cfgErr != nil {
		log.Warn("Failed to load config, falling back to env and defaults", zap.Error(cfgErr))
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := application.NewApplicationWithConfig(cfg, log, Version)
	if err != nil {
		return fmt.Errorf("application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
