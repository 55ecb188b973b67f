package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"zendata/internal/models"
	"zendata/pkg/config"
	"zendata/pkg/logger"
	"zendata/pkg/service"
	"zendata/pkg/task"
)

// ErrServiceNotFound 目录中没有该服务
var ErrServiceNotFound = errors.New("service not found")

// RunError 处理逻辑本身失败
type RunError struct {
	Service string
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("running %s: %v", e.Service, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// Catalog 按名称管理服务声明
type Catalog struct {
	defs map[string]*service.Definition
	mu   sync.RWMutex
	log  zerolog.Logger
}

// NewCatalog 创建目录并注册内置服务
func NewCatalog(cfg *config.ServerConfig, logger *logger.Logger) *Catalog {
	c := &Catalog{
		defs: make(map[string]*service.Definition),
		log:  logger.GetLogger("catalog"),
	}
	for _, def := range Builtins(cfg.Services.DetectionThreshold) {
		c.defs[def.Name] = def
	}
	return c
}

// Register 注册服务声明，名称不可重复
func (c *Catalog) Register(def *service.Definition) error {
	if def == nil || def.Name == "" {
		return errors.New("service name is required")
	}
	if def.Transform == nil {
		return fmt.Errorf("service %s: transform is required", def.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[def.Name]; exists {
		return fmt.Errorf("service %s already registered", def.Name)
	}
	c.defs[def.Name] = def

	c.log.Debug().Str("service", def.Name).Msg("Service registered")
	return nil
}

// Get 按名称查找服务声明
func (c *Catalog) Get(name string) (*service.Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}
	return def, nil
}

// Len 已注册服务数量
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}

// List 按名称排序的服务目录
func (c *Catalog) List() []models.ServiceInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]models.ServiceInfo, 0, len(c.defs))
	for _, def := range c.defs {
		infos = append(infos, models.ServiceInfo{
			Name:   def.Name,
			Input:  def.Input.Name(),
			Output: def.Output.Name(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Run 构造服务实例并执行一次。
// 构造失败时返回的实例为 nil；执行失败时实例状态为 failed 并一同返回。
func (c *Catalog) Run(ctx context.Context, name string, req models.RunRequest) (*service.Service, error) {
	def, err := c.Get(name)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]json.RawMessage)
	if len(req.Task) > 0 && string(req.Task) != "null" {
		if err := json.Unmarshal(req.Task, &fields); err != nil {
			return nil, &task.FieldError{Msg: "malformed task: " + err.Error(), Err: err}
		}
	}
	// 输出只由本次执行产生
	delete(fields, "output_data")
	if len(req.InputData) > 0 {
		fields["input_data"] = req.InputData
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	svc, err := def.Decode(data, service.WithLogger(c.log))
	if err != nil {
		return nil, err
	}
	if err := svc.SetStatus(task.StatusInProgress, ""); err != nil {
		return nil, err
	}

	if _, err := svc.Run(ctx, req.Args...); err != nil {
		// 字面量合法，SetStatus 不会失败
		_ = svc.SetStatus(task.StatusFailed, err.Error())
		c.log.Warn().
			Err(err).
			Str("service", name).
			Str("task_id", svc.ID).
			Msg("Service run failed")
		if errors.Is(err, task.ErrTypeMismatch) {
			return svc, err
		}
		return svc, &RunError{Service: name, Err: err}
	}

	_ = svc.SetStatus(task.StatusCompleted, "")
	c.log.Info().
		Str("service", name).
		Str("task_id", svc.ID).
		Msg("Service run completed")
	return svc, nil
}
