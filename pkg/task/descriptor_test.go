package task

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Text string `json:"text"`
}

type checked struct {
	N int `json:"n"`
}

func (c checked) Validate() error {
	if c.N < 0 {
		return &FieldError{Field: "n", Msg: "n must be >= 0"}
	}
	return nil
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "builtins.string", TypeFor[string]().Name())
	assert.Equal(t, "builtins.int", TypeFor[int]().Name())
	assert.Equal(t, "builtins.[]string", TypeFor[[]string]().Name())
	assert.Equal(t, "zendata/pkg/task.sample", TypeFor[sample]().Name())
	assert.Equal(t, "builtins.*task.sample", TypeFor[*sample]().Name())
}

func TestDescribe(t *testing.T) {
	d, err := Describe(reflect.TypeOf(0))
	require.NoError(t, err)
	assert.True(t, d.Equal(TypeFor[int]()))

	same := TypeFor[string]()
	d, err = Describe(same)
	require.NoError(t, err)
	assert.Same(t, same, d)

	for _, bad := range []any{"not_a_type", 123, sample{}} {
		_, err := Describe(bad)
		assert.ErrorIs(t, err, ErrNotAType, "%v", bad)
	}
}

func TestAccepts(t *testing.T) {
	str := TypeFor[string]()
	assert.True(t, str.Accepts("hello"))
	assert.False(t, str.Accepts(123))
	assert.False(t, str.Accepts(nil))

	num := TypeFor[int]()
	assert.True(t, num.Accepts(5))
	assert.False(t, num.Accepts(3.14))
	assert.False(t, num.Accepts(int64(5)))

	s := TypeFor[sample]()
	assert.True(t, s.Accepts(sample{}))
	assert.True(t, s.Accepts(&sample{}))
	assert.False(t, s.Accepts((*sample)(nil)))

	anything := TypeFor[any]()
	assert.True(t, anything.Accepts(3.14))
	assert.True(t, anything.Accepts(sample{}))
}

func TestDecodePayload(t *testing.T) {
	v, err := TypeFor[sample]().Decode(json.RawMessage(`{"text":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, sample{Text: "hi"}, v)

	_, err = TypeFor[string]().Decode(json.RawMessage(`123`))
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, float64(123), mismatch.Value)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = TypeFor[checked]().Decode(json.RawMessage(`{"n":-1}`))
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = TypeFor[[]checked]().Decode(json.RawMessage(`[{"n":1},{"n":-1}]`))
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "[1]")

	v, err = TypeFor[[2]checked]().Decode(json.RawMessage(`[{"n":1},{"n":2}]`))
	require.NoError(t, err)
	assert.Equal(t, [2]checked{{N: 1}, {N: 2}}, v)

	_, err = TypeFor[sample]().Decode(json.RawMessage(`{`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTypeMismatch)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup("zendata/pkg/task.sample")
	assert.ErrorIs(t, err, ErrUnknownType)

	reg.Register(TypeFor[sample]())
	d, err := reg.Lookup("zendata/pkg/task.sample")
	require.NoError(t, err)
	assert.True(t, d.Equal(TypeFor[sample]()))
	assert.Equal(t, []string{"zendata/pkg/task.sample"}, reg.Names())

	for _, name := range []string{"builtins.string", "builtins.int", "builtins.map[string]interface {}"} {
		_, err := Lookup(name)
		assert.NoError(t, err, name)
	}
}

func TestTypeMismatchError_Message(t *testing.T) {
	err := CheckType(StageOutput, TypeFor[int](), 3.14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3.14 (type builtins.float64) does not match expected output type builtins.int")

	err = CheckType(StageInput, TypeFor[string](), 123)
	assert.Contains(t, err.Error(), "does not match expected input type builtins.string")

	assert.NoError(t, CheckType(StageInput, nil, 123))
}
