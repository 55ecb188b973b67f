package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"required"`
	Score float64 `json:"score" validate:"gte=0,lte=1"`
	Kind  string  `json:"kind" validate:"oneof=a b"`
	Path  string  `json:"path,omitempty" validate:"omitempty,savepath"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "x", Score: 0.5, Kind: "a"}))
}

func TestStruct_Violations(t *testing.T) {
	err := Struct(sample{Score: 2, Kind: "c"})
	require.Error(t, err)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 3)
	assert.Equal(t, Violation{Field: "name", Rule: "required", Value: ""}, verrs[0])
	assert.Equal(t, "score", verrs[1].Field)
	assert.Equal(t, "lte", verrs[1].Rule)
	assert.Equal(t,
		"name is required; score must be <= 1 (got 2); kind must be one of [a b] (got c)",
		err.Error())
}

func TestSavePath(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"data/file.csv", true},
		{"/abs/file.csv", true},
		{`C:\data\file.csv`, true},
		{"file:///tmp/a.csv", true},
		{"https://bucket.example.com/a.csv", true},
		{"http://host/a.csv", true},
		{"ftp://host/a.csv", false},
		{"https:///no-host", false},
		{"   ", false},
		{"bad\x00path", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := Struct(sample{Name: "x", Kind: "a", Path: tt.path})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
