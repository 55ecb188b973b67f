package schema

// Sequence 文本中的片段 [Start, End)
type Sequence struct {
	Start int `json:"start" validate:"gte=0"`
	End   int `json:"end" validate:"gte=0,gtefield=Start"`
}

func (s Sequence) Validate() error { return validate(s) }

// NewSequence 创建片段
func NewSequence(start, end int) (Sequence, error) {
	s := Sequence{Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Sequence{}, err
	}
	return s, nil
}

// Label 分类标签
type Label struct {
	Label string  `json:"label" validate:"required"`
	Score float64 `json:"score" validate:"gte=0,lte=1"`
}

func (l Label) Validate() error { return validate(l) }

// MultiLabels 多标签
type MultiLabels struct {
	Labels []Label `json:"labels" validate:"min=1,dive"`
}

func (m MultiLabels) Validate() error { return validate(m) }

// SequenceLabel 带单标签的片段
type SequenceLabel struct {
	Sequence
	Label
}

func (s SequenceLabel) Validate() error { return validate(s) }

// SequenceMultiLabel 带多标签的片段
type SequenceMultiLabel struct {
	Sequence
	MultiLabels
}

func (s SequenceMultiLabel) Validate() error { return validate(s) }
