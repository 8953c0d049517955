package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/psds-microservice/blog-platform/internal/config"
	"github.com/psds-microservice/blog-platform/internal/handler"
	"github.com/psds-microservice/blog-platform/internal/strapi"
)

// Application основное HTTP приложение
type Application struct {
	config  *config.Config
	logger  *zap.Logger
	router  http.Handler
	server  *http.Server
	limiter *handler.RateLimitState
}

// NewApplicationWithConfig создает приложение с конфигурацией.
// cfg.Runtime должен быть уже собран: дальше он только читается.
func NewApplicationWithConfig(cfg *config.Config, logger *zap.Logger, version string) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("application: nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *handler.RateLimitState
	if cfg.RateLimit.RequestsPerSec > 0 {
		limiter = handler.NewRateLimitState(cfg.RateLimit.RequestsPerSec, cfg.RateLimit.Burst)
	}

	siteHandler := handler.NewSiteHandler(logger, version)
	router, err := NewRouter(cfg, siteHandler, limiter, logger)
	if err != nil {
		return nil, fmt.Errorf("application: %w", err)
	}

	server := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout(),
		WriteTimeout:   cfg.WriteTimeout(),
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	return &Application{
		config:  cfg,
		logger:  logger,
		router:  router,
		server:  server,
		limiter: limiter,
	}, nil
}

// GetRouter возвращает роутер
func (a *Application) GetRouter() http.Handler {
	return a.router
}

// Start запускает HTTP сервер (блокирующе)
func (a *Application) Start() error {
	a.logger.Info("Starting application",
		zap.String("address", a.server.Addr),
		zap.String("strapi_check_mode", a.config.Strapi.CheckMode),
		zap.Object("runtime", a.config.Runtime))
	if a.config.Strapi.CheckMode == config.CheckModeStartup {
		strapi.Check(a.logger, a.config.Runtime)
	}
	return a.server.ListenAndServe()
}

// Stop останавливает приложение, дожидаясь активных запросов
func (a *Application) Stop(ctx context.Context) error {
	a.logger.Info("Stopping application")
	return a.server.Shutdown(ctx)
}

// Run запускает сервер и останавливает его при отмене ctx
func (a *Application) Run(ctx context.Context) error {
	cleanupCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.limiter != nil {
		go a.limiter.RunCleanup(cleanupCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.config.ShutdownTimeout())
	defer cancelShutdown()
	if err := a.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("Server stopped")
	return nil
}
