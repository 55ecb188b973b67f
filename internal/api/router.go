package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"zendata/internal/api/handlers"
	"zendata/pkg/logger"
)

func NewRouter(
	taskHandler *handlers.TaskHandler,
	serviceHandler *handlers.ServiceHandler,
	statusHandler *handlers.StatusHandler,
	logger *logger.Logger,
) *gin.Engine {
	log := logger.GetLogger("router")

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	taskHandler.RegisterRoutes(r)
	serviceHandler.RegisterRoutes(r)
	statusHandler.RegisterRoutes(r)

	log.Debug().Int("routes", len(r.Routes())).Msg("Router initialized")
	return r
}

// requestLogger 记录每个请求的方法、路径、状态码与耗时
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Debug()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
