package task

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestNew_Defaults(t *testing.T) {
	clock := newFakeClock()
	r, err := New(WithClock(clock))
	require.NoError(t, err)

	assert.Len(t, r.ID, 32)
	assert.NotContains(t, r.ID, "-")
	assert.Len(t, r.Name, 32)
	assert.NotEqual(t, r.ID, r.Name)
	assert.Equal(t, StatusCreated, r.Status)
	assert.Equal(t, 0.0, r.Percentage)
	assert.Equal(t, clock.now.Unix(), r.CreatedAt)
	assert.Equal(t, clock.now.Unix(), r.UpdatedAt)
	assert.Nil(t, r.Input)
	assert.Nil(t, r.Output)
	assert.Empty(t, r.Error)
	assert.Equal(t, map[string]any{}, r.Extras)
}

func TestNew_WithFields(t *testing.T) {
	r, err := New(
		WithName("Test Task"),
		WithStatus(StatusStarted),
		WithPercentage(0.5),
		WithInput(TypeFor[string]()),
		WithOutput(reflect.TypeOf(map[string]any{})),
		WithError("Something went wrong"),
	)
	require.NoError(t, err)

	assert.Equal(t, "Test Task", r.Name)
	assert.Equal(t, StatusStarted, r.Status)
	assert.Equal(t, 0.5, r.Percentage)
	assert.True(t, r.Input.Equal(TypeFor[string]()))
	assert.True(t, r.Output.Equal(TypeFor[map[string]any]()))
	assert.Equal(t, "Something went wrong", r.Error)
}

func TestNew_PercentageBounds(t *testing.T) {
	tests := []struct {
		p       float64
		wantErr bool
	}{
		{-0.1, true},
		{1.1, true},
		{math.NaN(), true},
		{0.0, false},
		{0.5, false},
		{1.0, false},
	}
	for _, tt := range tests {
		_, err := New(WithPercentage(tt.p))
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidRecord, "percentage %v", tt.p)
		} else {
			assert.NoError(t, err, "percentage %v", tt.p)
		}
	}
}

func TestNew_RejectsUnknownStatus(t *testing.T) {
	_, err := New(WithStatus("paused"))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestNew_InputOutputMustBeTypes(t *testing.T) {
	_, err := New(WithName("test"), WithInput("not_a_type"), WithOutput(TypeFor[string]()))
	assert.ErrorIs(t, err, ErrNotAType)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = New(WithName("test"), WithOutput(123))
	assert.ErrorIs(t, err, ErrNotAType)

	r, err := New(WithInput(nil))
	require.NoError(t, err)
	assert.Nil(t, r.Input)
}

func TestSetStatus(t *testing.T) {
	for _, st := range Statuses() {
		t.Run(string(st), func(t *testing.T) {
			clock := newFakeClock()
			r, err := New(WithClock(clock), WithStatus(StatusStarted), WithPercentage(0.5))
			require.NoError(t, err)
			before := r.UpdatedAt

			clock.Advance(2 * time.Second)
			require.NoError(t, r.SetStatus(st, ""))

			assert.Equal(t, st, r.Status)
			assert.GreaterOrEqual(t, r.UpdatedAt, before)
			assert.Equal(t, clock.now.Unix(), r.UpdatedAt)
			assert.Empty(t, r.Error)
		})
	}
}

func TestSetStatus_StoresErrorMessage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	require.NoError(t, r.SetStatus(StatusFailed, "test"))
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, "test", r.Error)

	// 未提供错误信息时保留原值
	require.NoError(t, r.SetStatus(StatusRetrying, ""))
	assert.Equal(t, "test", r.Error)

	require.NoError(t, r.SetStatus(StatusTimeout, "deadline exceeded"))
	assert.Equal(t, "deadline exceeded", r.Error)
}

func TestSetStatus_CompletedForcesFullProgress(t *testing.T) {
	for _, p := range []float64{0, 0.3, 1} {
		r, err := New(WithPercentage(p))
		require.NoError(t, err)
		require.NoError(t, r.SetStatus(StatusCompleted, ""))
		assert.Equal(t, 1.0, r.Percentage)
	}
}

func TestSetStatus_OnlyTouchesStatusFields(t *testing.T) {
	r, err := New(WithPercentage(0.4), WithParameters(map[string]any{"k": "v"}))
	require.NoError(t, err)
	snapshot := *r

	require.NoError(t, r.SetStatus(StatusCanceled, ""))
	assert.Equal(t, snapshot.ID, r.ID)
	assert.Equal(t, snapshot.Name, r.Name)
	assert.Equal(t, snapshot.Percentage, r.Percentage)
	assert.Equal(t, snapshot.CreatedAt, r.CreatedAt)
	assert.Equal(t, snapshot.Parameters, r.Parameters)
}

func TestSetStatus_AnyTransitionAllowed(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	require.NoError(t, r.SetStatus(StatusCompleted, ""))
	require.NoError(t, r.SetStatus(StatusCreated, ""))
	assert.Equal(t, StatusCreated, r.Status)

	require.NoError(t, r.SetStatus(StatusTimeout, "late"))
	require.NoError(t, r.SetStatus(StatusInProgress, ""))
	assert.Equal(t, StatusInProgress, r.Status)
}

func TestSetStatus_UnknownLiteralLeavesRecordUntouched(t *testing.T) {
	r, err := New(WithStatus(StatusQueued))
	require.NoError(t, err)
	before := *r

	err = r.SetStatus("paused", "boom")
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Equal(t, before.Status, r.Status)
	assert.Equal(t, before.UpdatedAt, r.UpdatedAt)
	assert.Empty(t, r.Error)
}

func TestSetStatus_UpdatedAtNeverDecreases(t *testing.T) {
	clock := newFakeClock()
	r, err := New(WithClock(clock))
	require.NoError(t, err)
	before := r.UpdatedAt

	clock.Advance(-time.Hour)
	require.NoError(t, r.SetStatus(StatusQueued, ""))
	assert.Equal(t, before, r.UpdatedAt)
}

func TestSetProgress(t *testing.T) {
	clock := newFakeClock()
	r, err := New(WithClock(clock))
	require.NoError(t, err)

	clock.Advance(time.Second)
	require.NoError(t, r.SetProgress(0.25))
	assert.Equal(t, 0.25, r.Percentage)
	assert.Equal(t, clock.now.Unix(), r.UpdatedAt)

	assert.ErrorIs(t, r.SetProgress(1.5), ErrInvalidRecord)
	assert.Equal(t, 0.25, r.Percentage)
}

func TestRevalidate(t *testing.T) {
	clock := newFakeClock()
	r, err := New(WithClock(clock))
	require.NoError(t, err)

	clock.Advance(5 * time.Second)
	require.NoError(t, r.Revalidate())
	assert.Equal(t, clock.now.Unix(), r.UpdatedAt)

	r.Percentage = 2
	assert.ErrorIs(t, r.Revalidate(), ErrInvalidRecord)
}

func TestStatusFlags(t *testing.T) {
	terminal := map[Status]bool{
		StatusCompleted: true, StatusFailed: true, StatusCanceled: true, StatusTimeout: true,
	}
	inFlight := map[Status]bool{
		StatusQueued: true, StatusStarted: true, StatusInProgress: true, StatusRetrying: true,
	}
	assert.Len(t, Statuses(), 9)
	for _, st := range Statuses() {
		assert.Equal(t, terminal[st], st.IsTerminal(), st)
		assert.Equal(t, inFlight[st], st.IsInFlight(), st)
	}

	_, err := ParseStatus("in_progress")
	assert.NoError(t, err)
	_, err = ParseStatus("IN_PROGRESS")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}
