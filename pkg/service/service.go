// Package service 在任务记录之上提供带类型约束的处理服务。
//
// Definition 声明输入输出类型与处理函数；每次调用通过 Definition.New
// 创建独立的 Service 实例，Run 前后分别检查输入与输出类型。
package service

import (
	"context"
	"errors"
	"reflect"

	"github.com/rs/zerolog"

	"zendata/pkg/task"
)

// ErrNoDefinition 服务实例未通过 Definition 创建
var ErrNoDefinition = errors.New("service: no definition, create instances with Definition.New")

// Transform 用户提供的处理逻辑
type Transform interface {
	Apply(ctx context.Context, input any, args ...any) (any, error)
}

// TransformFunc 将函数适配为 Transform
type TransformFunc func(ctx context.Context, input any, args ...any) (any, error)

func (f TransformFunc) Apply(ctx context.Context, input any, args ...any) (any, error) {
	return f(ctx, input, args...)
}

// Definition 服务声明。Input/Output 为 nil 表示不约束。
type Definition struct {
	Name      string
	Input     *task.TypeDescriptor
	Output    *task.TypeDescriptor
	Transform Transform
}

// Define 通过泛型参数固定输入输出类型
func Define[In, Out any](name string, fn func(ctx context.Context, in In, args ...any) (Out, error)) *Definition {
	return &Definition{
		Name:   name,
		Input:  task.TypeFor[In](),
		Output: task.TypeFor[Out](),
		Transform: TransformFunc(func(ctx context.Context, input any, args ...any) (any, error) {
			in, ok := input.(In)
			if !ok {
				p, isPtr := input.(*In)
				if !isPtr || p == nil {
					return nil, &task.TypeMismatchError{Stage: task.StageInput, Value: input, Expected: task.TypeFor[In]()}
				}
				in = *p
			}
			return fn(ctx, in, args...)
		}),
	}
}

// Service 一次调用的服务实例
type Service struct {
	task.Record

	InputData  any
	OutputData any

	def    *Definition
	logger zerolog.Logger
}

// Option 服务构造选项
type Option func(*config)

type config struct {
	taskOpts   []task.Option
	outputData any
	logger     zerolog.Logger
}

// WithTaskOptions 传递任务记录选项
func WithTaskOptions(opts ...task.Option) Option {
	return func(c *config) { c.taskOpts = append(c.taskOpts, opts...) }
}

// WithOutputData 预置输出，构造时按 Output 校验
func WithOutputData(v any) Option {
	return func(c *config) { c.outputData = v }
}

// WithLogger 设置日志记录器
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New 创建服务实例并校验 inputData 与预置输出
func (d *Definition) New(inputData any, opts ...Option) (*Service, error) {
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	// 声明类型以 Definition 为准，放在最后应用
	taskOpts := append(cfg.taskOpts, task.WithInput(d.Input), task.WithOutput(d.Output))
	rec, err := task.New(taskOpts...)
	if err != nil {
		return nil, err
	}

	s := &Service{
		Record:     *rec,
		InputData:  inputData,
		OutputData: cfg.outputData,
		def:        d,
		logger:     cfg.logger.With().Str("service", d.Name).Str("task_id", rec.ID).Logger(),
	}
	if err := s.checkContract(); err != nil {
		return nil, err
	}
	return s, nil
}

// checkContract 输入必须满足 Input；已有输出必须满足 Output
func (s *Service) checkContract() error {
	if err := task.CheckType(task.StageInput, s.Input, s.InputData); err != nil {
		return err
	}
	if s.OutputData != nil {
		if err := task.CheckType(task.StageOutput, s.Output, s.OutputData); err != nil {
			return err
		}
	}
	return nil
}

// Definition 返回服务声明
func (s *Service) Definition() *Definition { return s.def }

// Revalidate 重新校验记录与类型约束
func (s *Service) Revalidate() error {
	if err := s.checkContract(); err != nil {
		return err
	}
	return s.Record.Revalidate()
}

// Run 校验输入、执行处理逻辑、校验输出并保存结果。
// 处理逻辑返回的错误原样返回；类型不符时 OutputData 保持不变。
func (s *Service) Run(ctx context.Context, args ...any) (any, error) {
	if s.def == nil || s.def.Transform == nil {
		return nil, ErrNoDefinition
	}
	if err := task.CheckType(task.StageInput, s.Input, s.InputData); err != nil {
		s.logger.Debug().Err(err).Msg("Input rejected")
		return nil, err
	}

	s.logger.Debug().Int("args", len(args)).Msg("Running transform")
	result, err := s.def.Transform.Apply(ctx, s.InputData, args...)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Transform failed")
		return nil, err
	}

	if err := task.CheckType(task.StageOutput, s.Output, result); err != nil {
		s.logger.Debug().Err(err).Msg("Output rejected")
		return nil, err
	}

	s.OutputData = result
	s.logger.Debug().
		Str("output_type", typeName(result)).
		Msg("Transform completed")
	return result, nil
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return task.NameOf(reflect.TypeOf(v))
}
