// Package schema 定义任务输入输出使用的数据结构。
//
// 这些结构只做构造时校验，不含业务行为。所有类型在 init 时注册到
// task 的默认类型注册表，便于通过类型名反序列化。
package schema

import (
	"errors"
	"fmt"
	"time"

	"zendata/internal/validation"
	"zendata/pkg/task"
)

// ErrInvalid 数据不满足字段约束
var ErrInvalid = errors.New("invalid payload")

func validate(v any) error {
	if err := validation.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// now 当前 Unix 秒
func now() int64 { return time.Now().Unix() }

func init() {
	task.Register(
		task.TypeFor[BaseInput](),
		task.TypeFor[TabularFile](),
		task.TypeFor[MediaFile](),
		task.TypeFor[Image](),
		task.TypeFor[BaseData](),
		task.TypeFor[TextInput](),
		task.TypeFor[MLData](),
		task.TypeFor[BaseOutput](),
		task.TypeFor[GroundTruthBbox](),
		task.TypeFor[PredictBbox](),
		task.TypeFor[GtImageDetection](),
		task.TypeFor[PredictedImageDetection](),
		task.TypeFor[Sequence](),
		task.TypeFor[[]Sequence](),
		task.TypeFor[Label](),
		task.TypeFor[MultiLabels](),
		task.TypeFor[SequenceLabel](),
		task.TypeFor[SequenceMultiLabel](),
	)
}
