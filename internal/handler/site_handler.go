package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/psds-microservice/blog-platform/internal/site"
	"github.com/psds-microservice/blog-platform/internal/strapi"
	"github.com/psds-microservice/blog-platform/pkg/constants"
)

// SiteHandler отдаёт клиентскую часть конфига, head-метаданные и health
type SiteHandler struct {
	*BaseHandler
	head    site.Head
	version string
}

// NewSiteHandler создает новый хендлер
func NewSiteHandler(logger *zap.Logger, version string) *SiteHandler {
	return &SiteHandler{
		BaseHandler: NewBaseHandler(logger),
		head:        site.DefaultHead(),
		version:     version,
	}
}

// RegisterHealth регистрирует /health и /ready
func (h *SiteHandler) RegisterHealth(router gin.IRoutes) {
	router.GET(constants.PathHealth, h.Health)
	router.GET(constants.PathReady, h.Ready)
}

// RegisterRoutes регистрирует маршруты API
func (h *SiteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET(constants.PathConfig, h.PublicConfig)
	router.GET(constants.PathHead, h.Head)
}

// Health — liveness
func (h *SiteHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": constants.ServiceName,
		"version": h.version,
		"time":    time.Now().Unix(),
	})
}

// Ready всегда отвечает 200: неполный конфиг Strapi отражается только в поле upstream.
func (h *SiteHandler) Ready(c *gin.Context) {
	upstream := strapi.StatusIncomplete
	if rc, ok := RuntimeFromGin(c); ok {
		upstream = strapi.Status(rc)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "upstream": upstream})
}

// PublicConfig отдаёт только публичную часть runtime-конфига
func (h *SiteHandler) PublicConfig(c *gin.Context) {
	rc, ok := RuntimeFromGin(c)
	if !ok {
		h.ErrorResponse(c, http.StatusInternalServerError, "Runtime config unavailable", nil)
		return
	}
	h.SuccessResponse(c, rc.Public())
}

// Head отдаёт статические head-метаданные
func (h *SiteHandler) Head(c *gin.Context) {
	h.SuccessResponse(c, h.head)
}
