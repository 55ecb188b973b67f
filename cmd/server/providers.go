package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"zendata/internal/api"
	"zendata/internal/api/handlers"
	"zendata/internal/service"
	"zendata/pkg/config"
	"zendata/pkg/logger"
)

// version 构建时通过 -ldflags 注入
var version = "dev"

// InitializeApp 按依赖顺序组装应用
func InitializeApp(configPath string) (*App, error) {
	cfg, err := provideConfig(configPath)
	if err != nil {
		return nil, err
	}
	log := provideLogger(cfg)
	gin.SetMode(cfg.Server.Mode)

	// Services
	catalog := service.NewCatalog(cfg, log)
	taskService := service.NewTaskService(log)
	statusService := service.NewStatusService(catalog, version)

	// Handlers
	router := api.NewRouter(
		handlers.NewTaskHandler(taskService, log),
		handlers.NewServiceHandler(catalog, log),
		handlers.NewStatusHandler(statusService, log),
		log,
	)

	return NewApp(router, cfg, log), nil
}

// provideConfig 配置文件不存在时使用默认配置
func provideConfig(path string) (*config.ServerConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.DefaultServerConfig(), nil
	}
	cfg, err := config.LoadServerConfig(path, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg *config.ServerConfig) *logger.Logger {
	return logger.New(cfg.Log.Debug, cfg.Log.File)
}
