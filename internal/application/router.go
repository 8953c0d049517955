package application

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/psds-microservice/blog-platform/api"
	"github.com/psds-microservice/blog-platform/internal/config"
	"github.com/psds-microservice/blog-platform/internal/handler"
	"github.com/psds-microservice/blog-platform/pkg/constants"
)

// NewRouter создает роутер: gin + cors. limiter может быть nil (лимит выключен).
func NewRouter(
	cfg *config.Config,
	siteHandler *handler.SiteHandler,
	limiter *handler.RateLimitState,
	logger *zap.Logger,
) (http.Handler, error) {
	router := gin.New()
	// по умолчанию gin доверяет X-Forwarded-For от любого адреса
	if err := router.SetTrustedProxies(cfg.RateLimit.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	router.Use(gin.Recovery())
	router.Use(handler.RequestID())
	router.Use(handler.RequestLogger(logger))
	router.Use(handler.RuntimeConfig(cfg.Runtime))
	if cfg.Strapi.CheckMode == config.CheckModeRequest {
		router.Use(handler.StrapiCheck(logger))
	}

	siteHandler.RegisterHealth(router)

	router.GET(constants.PathOpenAPI, func(c *gin.Context) {
		c.Data(http.StatusOK, constants.ContentTypeJSON, api.OpenAPISpec)
	})
	router.GET(constants.PathSwagger+"/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL(constants.PathOpenAPI),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	)))

	apiV1 := router.Group(constants.BasePathAPI)
	{
		if limiter != nil {
			apiV1.Use(handler.RateLimit(limiter))
		}
		siteHandler.RegisterRoutes(apiV1)
	}

	router.NoRoute(siteHandler.NotFound)

	corsOpts := cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{constants.MethodGet, constants.MethodOptions},
		AllowedHeaders: []string{constants.HeaderContentType, "Accept", "Accept-Encoding", "Cache-Control", "X-Requested-With", constants.HeaderRequestID},
		ExposedHeaders: []string{constants.HeaderRequestID},
	}
	return cors.New(corsOpts).Handler(router), nil
}
