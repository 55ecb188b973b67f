package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"zendata/internal/service"
	"zendata/pkg/logger"
)

type StatusHandler struct {
	statusService *service.StatusService
	log           zerolog.Logger
}

func NewStatusHandler(
	statusService *service.StatusService,
	logger *logger.Logger,
) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
		log:           logger.GetLogger("status-handler"),
	}
}

// RegisterRoutes 注册路由
func (h *StatusHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)
	r.GET("/api/status", h.GetSystemStatus)
	r.GET("/api/statuses", h.ListStatuses)
}

func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *StatusHandler) GetSystemStatus(c *gin.Context) {
	status := h.statusService.GetSystemStatus()

	h.log.Debug().
		Int("services", status.Services).
		Int("types", status.Types).
		Msg("System status retrieved")

	c.JSON(http.StatusOK, status)
}

func (h *StatusHandler) ListStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, h.statusService.Statuses())
}
