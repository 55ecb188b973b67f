package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zendata/pkg/config"
	"zendata/pkg/logger"
)

type App struct {
	server *http.Server
	logger *logger.Logger
}

func NewApp(handler *gin.Engine, cfg *config.ServerConfig, logger *logger.Logger) *App {
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		server: server,
		logger: logger,
	}
}

// Run 启动服务，ctx 取消后优雅关闭
func (a *App) Run(ctx context.Context) error {
	log := a.logger.GetLogger("app")
	log.Info().
		Str("address", a.server.Addr).
		Msg("Starting server")

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}
