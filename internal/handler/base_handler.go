package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler базовый хендлер
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler создает базовый хендлер
func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{logger: logger}
}

// SuccessResponse успешный ответ
func (h *BaseHandler) SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// ErrorResponse ответ с ошибкой
func (h *BaseHandler) ErrorResponse(c *gin.Context, status int, message string, err error) {
	h.logger.Error(message, zap.Error(err), zap.Int("status", status), zap.String("path", c.Request.URL.Path))
	errorDetails := ""
	if err != nil {
		errorDetails = err.Error()
	}
	c.JSON(status, gin.H{"error": message, "details": errorDetails})
}

// NotFound — JSON 404 с подсказками
func (h *BaseHandler) NotFound(c *gin.Context) {
	h.logger.Debug("Route not found", zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "Not Found",
		"message": "The requested resource was not found",
		"path":    c.Request.URL.Path,
		"suggestions": []string{
			"Check /health for service status",
			"Check /api/v1/config for public configuration",
			"Check /swagger/index.html for available endpoints",
		},
	})
}
