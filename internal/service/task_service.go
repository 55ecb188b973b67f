package service

import (
	"github.com/rs/zerolog"

	"zendata/pkg/logger"
	"zendata/pkg/task"
)

// TaskService 无状态的任务记录处理
type TaskService struct {
	clock task.Clock
	log   zerolog.Logger
}

// NewTaskService 创建任务服务
func NewTaskService(logger *logger.Logger) *TaskService {
	return &TaskService{
		clock: task.SystemClock,
		log:   logger.GetLogger("task-service"),
	}
}

// Normalize 解码记录并补全默认值，updated_at 重新计算
func (s *TaskService) Normalize(data []byte) (*task.Record, error) {
	rec, err := task.Decode(data, task.WithClock(s.clock))
	if err != nil {
		s.log.Debug().Err(err).Msg("Record rejected")
		return nil, err
	}
	return rec, nil
}

// Transition 解码记录后迁移到目标状态
func (s *TaskService) Transition(data []byte, status task.Status, errMsg string) (*task.Record, error) {
	rec, err := s.Normalize(data)
	if err != nil {
		return nil, err
	}

	from := rec.Status
	if err := rec.SetStatus(status, errMsg); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("task_id", rec.ID).
		Str("from", from.String()).
		Str("to", rec.Status.String()).
		Msg("Task status changed")
	return rec, nil
}
