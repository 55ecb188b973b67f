// Package task 定义任务记录及其状态机。
//
// Record 只记录状态与元数据，不负责调度：任意状态之间都可以切换，
// 由外部调度方决定何时切换。
package task

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"zendata/internal/validation"
)

// Record 任务记录
type Record struct {
	ID         string          `json:"id" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Status     Status          `json:"status" validate:"oneof=created queued started in_progress completed failed retrying canceled timeout"`
	Percentage float64         `json:"percentage" validate:"gte=0,lte=1"`
	CreatedAt  int64           `json:"created_at" validate:"gte=0"`
	UpdatedAt  int64           `json:"updated_at"`
	Input      *TypeDescriptor `json:"input"`
	Output     *TypeDescriptor `json:"output"`
	Parameters map[string]any  `json:"parameters,omitempty"`
	Error      string          `json:"error"`
	Extras     map[string]any  `json:"extras"`

	clock      Clock
	createdSet bool // created_at 显式给出时为 true，0 也保留
}

// Option 构造选项
type Option func(*Record) error

// WithID 指定任务ID
func WithID(id string) Option {
	return func(r *Record) error {
		r.ID = id
		return nil
	}
}

// WithName 指定任务名称
func WithName(name string) Option {
	return func(r *Record) error {
		r.Name = name
		return nil
	}
}

// WithStatus 指定初始状态
func WithStatus(s Status) Option {
	return func(r *Record) error {
		r.Status = s
		return nil
	}
}

// WithPercentage 指定初始进度
func WithPercentage(p float64) Option {
	return func(r *Record) error {
		r.Percentage = p
		return nil
	}
}

// WithCreatedAt 指定创建时间（Unix 秒）
func WithCreatedAt(ts int64) Option {
	return func(r *Record) error {
		r.CreatedAt = ts
		r.createdSet = true
		return nil
	}
}

// WithInput 声明输入类型，v 必须是 reflect.Type 或 *TypeDescriptor
func WithInput(v any) Option {
	return func(r *Record) error { return r.SetInput(v) }
}

// WithOutput 声明输出类型，v 必须是 reflect.Type 或 *TypeDescriptor
func WithOutput(v any) Option {
	return func(r *Record) error { return r.SetOutput(v) }
}

// WithParameters 附带参数
func WithParameters(p map[string]any) Option {
	return func(r *Record) error {
		r.Parameters = p
		return nil
	}
}

// WithError 初始错误信息
func WithError(msg string) Option {
	return func(r *Record) error {
		r.Error = msg
		return nil
	}
}

// WithExtras 附加扩展字段
func WithExtras(extras map[string]any) Option {
	return func(r *Record) error {
		if r.Extras == nil {
			r.Extras = make(map[string]any, len(extras))
		}
		for k, v := range extras {
			r.Extras[k] = v
		}
		return nil
	}
}

// WithClock 替换时间来源
func WithClock(c Clock) Option {
	return func(r *Record) error {
		r.clock = c
		return nil
	}
}

// New 创建任务记录，未指定的 ID/名称/创建时间自动生成
func New(opts ...Option) (*Record, error) {
	r := &Record{}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

// init 补全默认值、校验，并无条件刷新 UpdatedAt
func (r *Record) init() error {
	now := r.now()
	if r.ID == "" {
		r.ID = newToken()
	}
	if r.Name == "" {
		r.Name = newToken()
	}
	if r.Status == "" {
		r.Status = StatusCreated
	}
	if r.CreatedAt == 0 && !r.createdSet {
		r.CreatedAt = now
	}
	r.createdSet = true
	if r.Extras == nil {
		r.Extras = make(map[string]any)
	}
	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = now
	return nil
}

// Validate 校验字段形状与范围
func (r *Record) Validate() error {
	err := validation.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: verrs[0].Field, Msg: verrs.Error(), Err: verrs}
	}
	return &FieldError{Msg: err.Error(), Err: err}
}

// Revalidate 重新校验并刷新 UpdatedAt
func (r *Record) Revalidate() error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.touch()
	return nil
}

// SetStatus 切换状态。
// 任意状态间均可切换；errMsg 非空时覆盖 Error；进入 completed 时进度置为 1。
func (r *Record) SetStatus(status Status, errMsg string) error {
	if !status.Valid() {
		return invalidf("status", "unknown status %q", string(status))
	}
	r.Status = status
	r.touch()
	if errMsg != "" {
		r.Error = errMsg
	}
	if status == StatusCompleted {
		r.Percentage = 1.0
	}
	return nil
}

// SetProgress 更新进度，取值范围 [0, 1]
func (r *Record) SetProgress(p float64) error {
	if !(p >= 0 && p <= 1) {
		return invalidf("percentage", "percentage must be between 0 and 1 (got %v)", p)
	}
	r.Percentage = p
	r.touch()
	return nil
}

// SetInput 声明输入类型，nil 表示不约束
func (r *Record) SetInput(v any) error {
	d, err := Describe(v)
	if err != nil {
		return &FieldError{Field: "input", Msg: "input: " + err.Error(), Err: err}
	}
	r.Input = d
	return nil
}

// SetOutput 声明输出类型，nil 表示不约束
func (r *Record) SetOutput(v any) error {
	d, err := Describe(v)
	if err != nil {
		return &FieldError{Field: "output", Msg: "output: " + err.Error(), Err: err}
	}
	r.Output = d
	return nil
}

// Clock 返回记录使用的时间来源
func (r *Record) Clock() Clock {
	if r.clock == nil {
		return SystemClock
	}
	return r.clock
}

func (r *Record) now() int64 {
	return r.Clock().Now().Unix()
}

// touch 刷新 UpdatedAt，不回退
func (r *Record) touch() {
	if now := r.now(); now > r.UpdatedAt {
		r.UpdatedAt = now
	}
}

// newToken 生成 32 位十六进制标识
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
