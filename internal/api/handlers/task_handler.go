package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"zendata/internal/models"
	"zendata/internal/service"
	"zendata/pkg/logger"
	"zendata/pkg/task"
)

type TaskHandler struct {
	taskService *service.TaskService
	log         zerolog.Logger
}

func NewTaskHandler(
	taskService *service.TaskService,
	logger *logger.Logger,
) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         logger.GetLogger("task-handler"),
	}
}

// RegisterRoutes 注册路由
func (h *TaskHandler) RegisterRoutes(r *gin.Engine) {
	tasks := r.Group("/api/tasks")
	{
		tasks.POST("/normalize", h.Normalize)
		tasks.POST("/transition", h.Transition)
	}
}

// Normalize 解码记录、补全默认值后原样返回
func (h *TaskHandler) Normalize(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rec, err := h.taskService.Normalize(body)
	if err != nil {
		h.log.Debug().Err(err).Msg("Failed to normalize task")
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Transition 切换记录状态
func (h *TaskHandler) Transition(c *gin.Context) {
	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rec, err := h.taskService.Transition(req.Record, task.Status(req.Status), req.Error)
	if err != nil {
		h.log.Debug().Err(err).Str("status", req.Status).Msg("Failed to transition task")
		abortWithError(c, err)
		return
	}

	h.log.Info().
		Str("task_id", rec.ID).
		Str("status", rec.Status.String()).
		Msg("Task transitioned")
	c.JSON(http.StatusOK, rec)
}
