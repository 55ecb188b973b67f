// Package validation 封装结构体字段校验
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Violation 单个字段的校验失败
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
	Value any    `json:"value,omitempty"`
}

func (v Violation) String() string {
	switch v.Rule {
	case "required":
		return fmt.Sprintf("%s is required", v.Field)
	case "gte", "min":
		return fmt.Sprintf("%s must be >= %s (got %v)", v.Field, v.Param, v.Value)
	case "lte", "max":
		return fmt.Sprintf("%s must be <= %s (got %v)", v.Field, v.Param, v.Value)
	case "gtefield":
		return fmt.Sprintf("%s must be >= %s (got %v)", v.Field, v.Param, v.Value)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %v)", v.Field, v.Param, v.Value)
	default:
		return fmt.Sprintf("%s failed %q validation (got %v)", v.Field, v.Rule, v.Value)
	}
}

// Errors 一次校验的全部失败字段
type Errors []Violation

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "; ")
}

// Validator 返回进程内共享的校验器
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// 错误信息使用 json 字段名
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		if err := v.RegisterValidation("savepath", isSavePath); err != nil {
			panic(fmt.Sprintf("registering savepath validation: %v", err))
		}
		instance = v
	})
	return instance
}

// Struct 校验结构体，失败时返回 Errors
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{
			Field: trimRoot(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return out
}

// trimRoot 去掉命名空间中的顶层类型名
func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// isSavePath 接受文件系统路径或 http(s) URL
func isSavePath(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" || strings.ContainsRune(s, 0) {
		return false
	}
	if u, err := url.Parse(s); err == nil && len(u.Scheme) > 1 && u.Scheme != "file" {
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	}
	return true
}
