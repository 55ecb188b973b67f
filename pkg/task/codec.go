package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// recordJSON 线上格式
type recordJSON struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Status     Status          `json:"status"`
	Percentage float64         `json:"percentage"`
	CreatedAt  int64           `json:"created_at"`
	UpdatedAt  *int64          `json:"updated_at,omitempty"`
	Input      *TypeDescriptor `json:"input"`
	Output     *TypeDescriptor `json:"output"`
	Parameters map[string]any  `json:"parameters,omitempty"`
	Error      *string         `json:"error"`
	Extras     map[string]any  `json:"extras"`
}

// MarshalJSON 按线上格式编码；input/output 编码为规范类型名
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		ID:         r.ID,
		Name:       r.Name,
		Status:     r.Status,
		Percentage: r.Percentage,
		CreatedAt:  r.CreatedAt,
		Input:      r.Input,
		Output:     r.Output,
		Parameters: r.Parameters,
		Extras:     r.Extras,
	}
	if r.UpdatedAt != 0 {
		ts := r.UpdatedAt
		out.UpdatedAt = &ts
	}
	if r.Error != "" {
		msg := r.Error
		out.Error = &msg
	}
	if out.Extras == nil {
		out.Extras = map[string]any{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON 解码并重新构造记录，UpdatedAt 总是刷新为当前时间
func (r *Record) UnmarshalJSON(data []byte) error {
	tmp := Record{clock: r.clock}
	if err := tmp.decode(data); err != nil {
		return err
	}
	if err := tmp.init(); err != nil {
		return err
	}
	*r = tmp
	return nil
}

// Decode 从 JSON 构造记录。opts 在解码之后、校验之前应用。
func Decode(data []byte, opts ...Option) (*Record, error) {
	r := &Record{}
	if err := r.decode(data); err != nil {
		return nil, err
	}
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

// decode 填充已知字段，未知字段并入 Extras
func (r *Record) decode(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return &FieldError{Msg: "malformed record: " + err.Error(), Err: err}
	}

	extras := make(map[string]any)
	unknown := make(map[string]any)
	for key, raw := range fields {
		if isNull(raw) {
			continue
		}
		var err error
		switch key {
		case "id":
			err = json.Unmarshal(raw, &r.ID)
		case "name":
			err = json.Unmarshal(raw, &r.Name)
		case "status":
			err = json.Unmarshal(raw, &r.Status)
		case "percentage":
			err = json.Unmarshal(raw, &r.Percentage)
		case "created_at":
			err = json.Unmarshal(raw, &r.CreatedAt)
			r.createdSet = true
		case "updated_at":
			// 每次加载都重新计算
		case "input":
			r.Input, err = decodeDescriptor(raw)
		case "output":
			r.Output, err = decodeDescriptor(raw)
		case "parameters":
			err = json.Unmarshal(raw, &r.Parameters)
		case "error":
			err = json.Unmarshal(raw, &r.Error)
		case "extras":
			err = json.Unmarshal(raw, &extras)
		default:
			var v any
			err = json.Unmarshal(raw, &v)
			unknown[key] = v
		}
		if err != nil {
			var fe *FieldError
			if errors.As(err, &fe) {
				return fe
			}
			return &FieldError{Field: key, Msg: fmt.Sprintf("%s: %v", key, err), Err: err}
		}
	}

	for k, v := range unknown {
		extras[k] = v
	}
	r.Extras = extras
	return nil
}

func decodeDescriptor(raw json.RawMessage) (*TypeDescriptor, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return nil, fmt.Errorf("%w: got %s", ErrNotAType, bytes.TrimSpace(raw))
	}
	return Lookup(name)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
