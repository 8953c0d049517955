package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/psds-microservice/blog-platform/internal/config"
	"github.com/psds-microservice/blog-platform/internal/strapi"
	"github.com/psds-microservice/blog-platform/pkg/constants"
)

// Ключи gin.Context
const (
	ctxKeyRequestID = "request_id"
	ctxKeyRuntime   = "runtime_config"
)

// RequestID проставляет X-Request-ID (берёт входящий, если он есть)
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(constants.HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger пишет каждый запрос в zap
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			fields := []zap.Field{
				zap.String("method", param.Method),
				zap.String("path", param.Path),
				zap.Int("status", param.StatusCode),
				zap.Duration("latency", param.Latency),
				zap.String("client_ip", param.ClientIP),
			}
			if id, ok := param.Keys[ctxKeyRequestID].(string); ok {
				fields = append(fields, zap.String("request_id", id))
			}
			logger.Info("HTTP Request", fields...)
			return ""
		},
	})
}

// RuntimeConfig передаёт неизменяемый конфиг в контекст каждого запроса
func RuntimeConfig(rc config.RuntimeConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeyRuntime, rc)
		c.Request = c.Request.WithContext(config.WithRuntime(c.Request.Context(), rc))
		c.Next()
	}
}

// StrapiCheck запускает health check на каждый запрос. Запрос не блокируется
// никогда: проверка только пишет предупреждение.
func StrapiCheck(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rc, ok := config.RuntimeFromContext(c.Request.Context()); ok {
			strapi.Check(logger, rc)
		}
		c.Next()
	}
}

// RuntimeFromGin достаёт конфиг, положенный middleware RuntimeConfig
func RuntimeFromGin(c *gin.Context) (config.RuntimeConfig, bool) {
	v, ok := c.Get(ctxKeyRuntime)
	if !ok {
		return config.RuntimeConfig{}, false
	}
	rc, ok := v.(config.RuntimeConfig)
	return rc, ok
}
