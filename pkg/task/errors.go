package task

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidRecord 字段形状或取值范围错误
	ErrInvalidRecord = errors.New("invalid task record")
	// ErrTypeMismatch 数据与声明的类型不符
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotAType 声明的 input/output 不是类型
	ErrNotAType = errors.New("not a type")
	// ErrUnknownType 类型名未注册
	ErrUnknownType = errors.New("unknown type")
)

// FieldError 记录校验失败的字段，Msg 自带字段名
type FieldError struct {
	Field string
	Msg   string
	Err   error
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", ErrInvalidRecord.Error(), e.Msg)
}

func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidRecord}
	}
	return []error{ErrInvalidRecord, e.Err}
}

func invalidf(field, format string, args ...any) error {
	return &FieldError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Stage 类型检查发生的位置
type Stage string

const (
	StageInput  Stage = "input"
	StageOutput Stage = "output"
)

// TypeMismatchError 数据不满足声明的类型
type TypeMismatchError struct {
	Stage    Stage
	Value    any
	Expected *TypeDescriptor
}

// Actual 返回值的实际类型名
func (e *TypeMismatchError) Actual() string {
	if e.Value == nil {
		return "<nil>"
	}
	return NameOf(reflect.TypeOf(e.Value))
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stage == "" {
		return fmt.Sprintf("%#v (type %s) does not match expected type %s",
			e.Value, e.Actual(), e.Expected.Name())
	}
	return fmt.Sprintf("%#v (type %s) does not match expected %s type %s",
		e.Value, e.Actual(), e.Stage, e.Expected.Name())
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// CheckType 校验 v 满足 d；d 为 nil 表示无约束
func CheckType(stage Stage, d *TypeDescriptor, v any) error {
	if d == nil || d.Accepts(v) {
		return nil
	}
	return &TypeMismatchError{Stage: stage, Value: v, Expected: d}
}
