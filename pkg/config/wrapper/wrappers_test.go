package wrapper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhagyamudgal/governance-ui/pkg/config/memory"
)

func TestValue_Fallbacks(t *testing.T) {
	ctx := context.Background()
	source := memory.NewConfig(nil)
	wrapper := NewStringConfig(source, "default")

	// Return the default value when no override is set
	val, err := wrapper.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", val)

	source.SetValue("override")
	assert.Equal(t, "override", wrapper.Get(ctx))

	// The last observed value is returned on error
	source.InduceErrors()
	val, err = wrapper.GetSafe(ctx)
	assert.Error(t, err)
	assert.Equal(t, "override", val)

	// The default value is returned when the override no longer has a value
	source.StopInducingErrors()
	source.ClearValue()
	assert.Equal(t, "default", wrapper.Get(ctx))

	// Unsupported source types keep the last value
	source.SetValue(42)
	val, err = wrapper.GetSafe(ctx)
	assert.Equal(t, ErrUnsuportedConversion, err)
	assert.Equal(t, "default", val)
}

func TestValue_Shutdown(t *testing.T) {
	source := memory.NewConfig("value")
	wrapper := NewStringConfig(source, "default")

	wrapper.Shutdown()
	_, err := source.Get(context.Background())
	assert.Error(t, err)
}

func TestConversions(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		raw      interface{}
		expected time.Duration
	}{
		{time.Minute, time.Minute},
		{30, 30 * time.Second},
		{[]byte("1h"), time.Hour},
		{"45", 45 * time.Second},
		{"250ms", 250 * time.Millisecond},
	} {
		assert.Equal(t, tc.expected, NewDurationConfig(memory.NewConfig(tc.raw), 0).Get(ctx))
	}

	for _, tc := range []struct {
		raw      interface{}
		expected uint64
	}{
		{uint64(5), 5},
		{uint(6), 6},
		{7, 7},
		{float64(8), 8},
		{[]byte("9"), 9},
		{"10", 10},
	} {
		assert.Equal(t, tc.expected, NewUint64Config(memory.NewConfig(tc.raw), 0).Get(ctx))
	}
}

func TestConversionErrors(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []interface{}{-1, 1.5, "abc", []byte("-2"), true} {
		val, err := NewUint64Config(memory.NewConfig(raw), 3).GetSafe(ctx)
		assert.Error(t, err, "%v", raw)
		assert.EqualValues(t, 3, val)
	}

	_, err := NewDurationConfig(memory.NewConfig("soon"), 0).GetSafe(ctx)
	assert.Error(t, err)

	_, err = NewStringConfig(memory.NewConfig(3.5), "").GetSafe(ctx)
	assert.Equal(t, ErrUnsuportedConversion, err)
}
