package schema

// GroundTruthBbox 标注框，坐标与尺寸均为相对值 [0, 1]
type GroundTruthBbox struct {
	X      float64 `json:"x" validate:"gte=0,lte=1"`
	Y      float64 `json:"y" validate:"gte=0,lte=1"`
	Height float64 `json:"height" validate:"gte=0,lte=1"`
	Width  float64 `json:"width" validate:"gte=0,lte=1"`
	Label  string  `json:"label" validate:"required"`
}

func (b GroundTruthBbox) Validate() error { return validate(b) }

// NewGroundTruthBbox 创建标注框
func NewGroundTruthBbox(x, y, height, width float64, label string) (GroundTruthBbox, error) {
	b := GroundTruthBbox{X: x, Y: y, Height: height, Width: width, Label: label}
	if err := b.Validate(); err != nil {
		return GroundTruthBbox{}, err
	}
	return b, nil
}

// PredictBbox 预测框，附带置信度 [0, 1]
type PredictBbox struct {
	GroundTruthBbox
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

func (b PredictBbox) Validate() error { return validate(b) }

// NewPredictBbox 创建预测框
func NewPredictBbox(x, y, height, width float64, label string, confidence float64) (PredictBbox, error) {
	b := PredictBbox{
		GroundTruthBbox: GroundTruthBbox{X: x, Y: y, Height: height, Width: width, Label: label},
		Confidence:      confidence,
	}
	if err := b.Validate(); err != nil {
		return PredictBbox{}, err
	}
	return b, nil
}

// GtImageDetection 图片的标注结果
type GtImageDetection struct {
	MLData
	Bboxes []GroundTruthBbox `json:"bboxes" validate:"dive"`
}

func (d GtImageDetection) Validate() error { return validate(d) }

// PredictedImageDetection 图片的预测结果
type PredictedImageDetection struct {
	MLData
	Bboxes []PredictBbox `json:"bboxes" validate:"dive"`
}

func (d PredictedImageDetection) Validate() error { return validate(d) }

// FilterByConfidence 返回置信度不低于 threshold 的副本
func (d PredictedImageDetection) FilterByConfidence(threshold float64) PredictedImageDetection {
	out := d
	out.Bboxes = make([]PredictBbox, 0, len(d.Bboxes))
	for _, b := range d.Bboxes {
		if b.Confidence >= threshold {
			out.Bboxes = append(out.Bboxes, b)
		}
	}
	return out
}
