package task

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// TypeDescriptor 类型句柄：描述可接受的数据形状，本身不持有数据
type TypeDescriptor struct {
	typ  reflect.Type
	name string
}

// TypeFor 返回 T 的类型描述
func TypeFor[T any]() *TypeDescriptor {
	return newDescriptor(reflect.TypeOf((*T)(nil)).Elem())
}

func newDescriptor(t reflect.Type) *TypeDescriptor {
	return &TypeDescriptor{typ: t, name: NameOf(t)}
}

// Describe 将运行时值转换为类型描述。
// 仅接受 reflect.Type 与 *TypeDescriptor，其余值返回 ErrNotAType。
func Describe(v any) (*TypeDescriptor, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case *TypeDescriptor:
		return d, nil
	case reflect.Type:
		if d == nil {
			return nil, nil
		}
		return newDescriptor(d), nil
	default:
		return nil, fmt.Errorf("%w: got %s", ErrNotAType, NameOf(reflect.TypeOf(v)))
	}
}

// NameOf 返回类型的规范点分名称
func NameOf(t reflect.Type) string {
	if t == nil {
		return "builtins.nil"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return "builtins." + t.String()
}

// Name 规范名称，例如 builtins.string
func (d *TypeDescriptor) Name() string {
	if d == nil {
		return "<none>"
	}
	return d.name
}

// Type 返回底层 reflect.Type
func (d *TypeDescriptor) Type() reflect.Type { return d.typ }

func (d *TypeDescriptor) String() string { return d.Name() }

// Equal 两个描述是否指向同一类型
func (d *TypeDescriptor) Equal(o *TypeDescriptor) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.typ == o.typ
}

// Accepts 判断 v 是否满足该类型。
// nil 永不满足；指向可赋值值的非空指针也视为满足。
func (d *TypeDescriptor) Accepts(v any) bool {
	if v == nil {
		return false
	}
	vt := reflect.TypeOf(v)
	if vt.AssignableTo(d.typ) {
		return true
	}
	if vt.Kind() == reflect.Pointer && d.typ.Kind() != reflect.Pointer && vt.Elem().AssignableTo(d.typ) {
		return !reflect.ValueOf(v).IsNil()
	}
	return false
}

// validatable 由 schema 类型实现
type validatable interface {
	Validate() error
}

// Decode 将线上数据解码为该类型的值，并执行其 Validate
func (d *TypeDescriptor) Decode(raw json.RawMessage) (any, error) {
	ptr := reflect.New(d.typ)
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		// 结构合法但类型不符的 JSON 视为类型不匹配
		var generic any
		if json.Unmarshal(raw, &generic) == nil {
			return nil, &TypeMismatchError{Value: generic, Expected: d}
		}
		return nil, fmt.Errorf("decoding %s: %w", d.name, err)
	}
	if err := validateValue(ptr); err != nil {
		return nil, fmt.Errorf("validating %s: %w", d.name, err)
	}
	return ptr.Elem().Interface(), nil
}

// validateValue 对实现 Validate 的值校验；切片与数组逐个元素校验
func validateValue(ptr reflect.Value) error {
	if vv, ok := ptr.Interface().(validatable); ok {
		return vv.Validate()
	}
	elem := ptr.Elem()
	switch elem.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < elem.Len(); i++ {
			if err := validateValue(elem.Index(i).Addr()); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	}
	return nil
}

// MarshalJSON 序列化为规范名称
func (d *TypeDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.name)
}

// Registry 名称到类型描述的映射，用于反序列化
type Registry struct {
	mu    sync.RWMutex
	types map[string]*TypeDescriptor
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*TypeDescriptor)}
}

// Register 注册类型描述，重复注册同名类型会覆盖
func (r *Registry) Register(ds ...*TypeDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range ds {
		if d != nil {
			r.types[d.name] = d
		}
	}
}

// Lookup 按名称查找
func (r *Registry) Lookup(name string) (*TypeDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return d, nil
}

// Names 返回已注册名称（已排序）
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

func init() {
	defaultRegistry.Register(
		TypeFor[string](),
		TypeFor[bool](),
		TypeFor[int](),
		TypeFor[int64](),
		TypeFor[float64](),
		TypeFor[[]byte](),
		TypeFor[[]string](),
		TypeFor[[]any](),
		TypeFor[map[string]any](),
	)
}

// DefaultRegistry 进程级注册表
func DefaultRegistry() *Registry { return defaultRegistry }

// Register 注册到默认注册表
func Register(ds ...*TypeDescriptor) { defaultRegistry.Register(ds...) }

// Lookup 在默认注册表中查找
func Lookup(name string) (*TypeDescriptor, error) { return defaultRegistry.Lookup(name) }
