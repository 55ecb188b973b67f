package service

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"zendata/pkg/schema"
	"zendata/pkg/service"
)

// Builtins 内置服务声明
func Builtins(detectionThreshold float64) []*service.Definition {
	return []*service.Definition{
		TextLength(),
		TextSequences(),
		DetectionFilter(detectionThreshold),
	}
}

// TextLength 统计文本字符数
func TextLength() *service.Definition {
	return service.Define("text.length", func(_ context.Context, in schema.TextInput, _ ...any) (int, error) {
		return utf8.RuneCountInString(in.Text), nil
	})
}

// TextSequences 以空白切分文本，返回各词的字符区间
func TextSequences() *service.Definition {
	return service.Define("text.sequences", func(_ context.Context, in schema.TextInput, _ ...any) ([]schema.Sequence, error) {
		seqs := []schema.Sequence{}
		start := -1
		pos := 0
		for _, r := range in.Text {
			if unicode.IsSpace(r) {
				if start >= 0 {
					seqs = append(seqs, schema.Sequence{Start: start, End: pos})
					start = -1
				}
			} else if start < 0 {
				start = pos
			}
			pos++
		}
		if start >= 0 {
			seqs = append(seqs, schema.Sequence{Start: start, End: pos})
		}
		return seqs, nil
	})
}

// DetectionFilter 过滤低置信度检测框。第一个参数可覆盖默认阈值。
func DetectionFilter(defaultThreshold float64) *service.Definition {
	return service.Define("detection.filter", func(ctx context.Context, in schema.PredictedImageDetection, args ...any) (schema.PredictedImageDetection, error) {
		if err := ctx.Err(); err != nil {
			return schema.PredictedImageDetection{}, err
		}
		threshold := defaultThreshold
		if len(args) > 0 {
			t, err := toThreshold(args[0])
			if err != nil {
				return schema.PredictedImageDetection{}, err
			}
			threshold = t
		}
		return in.FilterByConfidence(threshold), nil
	})
}

func toThreshold(v any) (float64, error) {
	var t float64
	switch n := v.(type) {
	case float64:
		t = n
	case float32:
		t = float64(n)
	case int:
		t = float64(n)
	default:
		return 0, fmt.Errorf("threshold must be a number, got %T", v)
	}
	if t < 0 || t > 1 {
		return 0, fmt.Errorf("threshold must be between 0 and 1, got %v", t)
	}
	return t, nil
}
