package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"zendata/internal/models"
	"zendata/internal/service"
	"zendata/pkg/logger"
)

type ServiceHandler struct {
	catalog *service.Catalog
	log     zerolog.Logger
}

func NewServiceHandler(
	catalog *service.Catalog,
	logger *logger.Logger,
) *ServiceHandler {
	return &ServiceHandler{
		catalog: catalog,
		log:     logger.GetLogger("service-handler"),
	}
}

// RegisterRoutes 注册路由
func (h *ServiceHandler) RegisterRoutes(r *gin.Engine) {
	services := r.Group("/api/services")
	{
		services.GET("", h.ListServices)
		services.POST("/:name/run", h.RunService)
	}
}

func (h *ServiceHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}

// RunService 运行指定服务，失败时若实例已创建则一并返回
func (h *ServiceHandler) RunService(c *gin.Context) {
	name := c.Param("name")

	var req models.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc, err := h.catalog.Run(c.Request.Context(), name, req)
	if err != nil {
		status := statusFor(err)
		h.log.Warn().
			Err(err).
			Str("service", name).
			Int("status", status).
			Msg("Service run rejected")
		body := gin.H{"error": err.Error()}
		if svc != nil {
			body["task"] = svc
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, svc)
}
