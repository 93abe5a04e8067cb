package wrapper

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/bhagyamudgal/governance-ui/pkg/config"
)

// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

type converter[T any] func(interface{}) (T, error)

// value keeps the last value read from its source, so a failing source
// keeps yielding it.
type value[T any] struct {
	source       config.Config
	defaultValue T
	convert      converter[T]

	stateMu   sync.RWMutex
	lastValue T
}

func newValue[T any](source config.Config, defaultValue T, convert converter[T]) config.Value[T] {
	return &value[T]{
		source:       source,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe implements config.Value.GetSafe
func (c *value[T]) GetSafe(ctx context.Context) (T, error) {
	raw, err := c.source.Get(ctx)

	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	if err == config.ErrNoValue {
		c.lastValue = c.defaultValue
		return c.defaultValue, nil
	} else if err != nil {
		return c.lastValue, err
	}

	converted, err := c.convert(raw)
	if err != nil {
		return c.lastValue, err
	}
	c.lastValue = converted
	return converted, nil
}

// Get implements config.Value.Get
func (c *value[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown implements config.Value.Shutdown
func (c *value[T]) Shutdown() {
	c.source.Shutdown()
}

// NewDurationConfig returns a duration config over source. Text values use
// time.ParseDuration, and plain integers are read as seconds.
func NewDurationConfig(source config.Config, defaultValue time.Duration) config.Duration {
	return newValue(source, defaultValue, func(raw interface{}) (time.Duration, error) {
		switch v := raw.(type) {
		case time.Duration:
			return v, nil
		case int:
			return time.Duration(v) * time.Second, nil
		case []byte:
			return parseDuration(string(v))
		case string:
			return parseDuration(v)
		}
		return 0, ErrUnsuportedConversion
	})
}

func parseDuration(v string) (time.Duration, error) {
	if seconds, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// NewStringConfig returns a string config over source
func NewStringConfig(source config.Config, defaultValue string) config.String {
	return newValue(source, defaultValue, func(raw interface{}) (string, error) {
		switch v := raw.(type) {
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		}
		return "", ErrUnsuportedConversion
	})
}

// NewUint64Config returns a uint64 config over source
func NewUint64Config(source config.Config, defaultValue uint64) config.Uint64 {
	return newValue(source, defaultValue, func(raw interface{}) (uint64, error) {
		switch v := raw.(type) {
		case uint64:
			return v, nil
		case uint:
			return uint64(v), nil
		case int:
			if v < 0 {
				return 0, errors.Errorf("config: negative value %d", v)
			}
			return uint64(v), nil
		case float64:
			if v < 0 || v > math.MaxUint64 || v != math.Trunc(v) {
				return 0, errors.Errorf("config: %v is not a uint64", v)
			}
			return uint64(v), nil
		case []byte:
			return strconv.ParseUint(string(v), 10, 64)
		case string:
			return strconv.ParseUint(v, 10, 64)
		}
		return 0, ErrUnsuportedConversion
	})
}
