package schema

import (
	"encoding/json"
	"fmt"
)

// BaseData 数据记录的公共字段
type BaseData struct {
	ID        string `json:"id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	CreatedAt int64  `json:"created_at" validate:"gte=0"`
}

func (d BaseData) Validate() error { return validate(d) }

// TextInput 原始文本
type TextInput struct {
	BaseData
	Text string `json:"text" validate:"required"`
}

func (t TextInput) Validate() error {
	if err := validate(t); err != nil {
		return err
	}
	if t.Type != "text" {
		return fmt.Errorf("%w: type must be \"text\" (got %q)", ErrInvalid, t.Type)
	}
	return nil
}

// UnmarshalJSON 缺省 type 为 text
func (t *TextInput) UnmarshalJSON(data []byte) error {
	type plain TextInput
	p := plain{BaseData: BaseData{Type: "text"}}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = TextInput(p)
	return nil
}

// NewTextInput 创建文本输入
func NewTextInput(id, text string) (TextInput, error) {
	t := TextInput{
		BaseData: BaseData{ID: id, Type: "text", CreatedAt: now()},
		Text:     text,
	}
	if err := t.Validate(); err != nil {
		return TextInput{}, err
	}
	return t, nil
}

// MLData 模型相关数据，可关联来源
type MLData struct {
	BaseData
	SourceID *string `json:"source_id,omitempty"`
}

func (d MLData) Validate() error { return validate(d) }
