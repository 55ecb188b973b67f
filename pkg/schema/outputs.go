package schema

// BaseOutput 模型输出的公共字段
type BaseOutput struct {
	ID           string  `json:"id" validate:"required"`
	SourceID     string  `json:"source_id" validate:"required"`
	CreatedAt    int64   `json:"created_at" validate:"gte=0"`
	ModelName    *string `json:"model_name,omitempty"`
	ModelVersion *string `json:"model_version,omitempty"`
}

func (o BaseOutput) Validate() error { return validate(o) }

// NewBaseOutput 创建输出记录，CreatedAt 取当前时间
func NewBaseOutput(id, sourceID string) (BaseOutput, error) {
	o := BaseOutput{ID: id, SourceID: sourceID, CreatedAt: now()}
	if err := o.Validate(); err != nil {
		return BaseOutput{}, err
	}
	return o, nil
}
