package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"zendata/pkg/task"
)

// MarshalJSON 记录字段加上 input_data 与 output_data
func (s Service) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(s.Record)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	if fields["input_data"], err = json.Marshal(s.InputData); err != nil {
		return nil, fmt.Errorf("encoding input_data: %w", err)
	}
	if fields["output_data"], err = json.Marshal(s.OutputData); err != nil {
		return nil, fmt.Errorf("encoding output_data: %w", err)
	}
	return json.Marshal(fields)
}

// UnmarshalJSON 仅适用于已绑定 Definition 的实例
func (s *Service) UnmarshalJSON(data []byte) error {
	if s.def == nil {
		return ErrNoDefinition
	}
	decoded, err := s.def.Decode(data, WithLogger(s.logger))
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// Decode 从 JSON 恢复服务实例。
// input_data/output_data 按声明类型解码，其余字段按任务记录解码，
// 声明类型总是以 Definition 为准。
func (d *Definition) Decode(data []byte, opts ...Option) (*Service, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &task.FieldError{Msg: "malformed service: " + err.Error(), Err: err}
	}

	inRaw, hasIn := fields["input_data"]
	outRaw, hasOut := fields["output_data"]
	delete(fields, "input_data")
	delete(fields, "output_data")
	// 声明类型由 Definition 给出，线上的类型名不参与解码
	delete(fields, "input")
	delete(fields, "output")

	inputData, err := decodePayload(task.StageInput, d.Input, inRaw, hasIn)
	if err != nil {
		return nil, err
	}
	outputData, err := decodePayload(task.StageOutput, d.Output, outRaw, hasOut)
	if err != nil {
		return nil, err
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	rest, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	rec, err := task.Decode(rest, cfg.taskOpts...)
	if err != nil {
		return nil, err
	}

	// 记录已经构造完成，这里只复用 New 的类型检查
	all := append([]Option{WithTaskOptions(keepRecord(rec)), WithOutputData(outputData)}, opts...)
	return d.New(inputData, all...)
}

// keepRecord 让 New 沿用解码得到的记录字段
func keepRecord(rec *task.Record) task.Option {
	return func(r *task.Record) error {
		clock := rec.Clock()
		*r = *rec
		return task.WithClock(clock)(r)
	}
}

func decodePayload(stage task.Stage, d *task.TypeDescriptor, raw json.RawMessage, present bool) (any, error) {
	if !present || string(raw) == "null" {
		return nil, nil
	}
	if d == nil {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decoding %s_data: %w", stage, err)
		}
		return v, nil
	}
	v, err := d.Decode(raw)
	if err != nil {
		var mismatch *task.TypeMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Stage = stage
		}
		return nil, err
	}
	return v, nil
}
