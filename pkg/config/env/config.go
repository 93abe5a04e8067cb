// Package env provides configs read from environment variables.
package env

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/bhagyamudgal/governance-ui/pkg/config"
	"github.com/bhagyamudgal/governance-ui/pkg/config/wrapper"
)

type variable string

// NewConfig returns a config over the environment variable named key, upper
// cased. The variable is looked up on every Get and returned as []byte.
func NewConfig(key string) config.Config {
	return variable(strings.ToUpper(key))
}

func (v variable) Get(_ context.Context) (interface{}, error) {
	if val := os.Getenv(string(v)); val != "" {
		return []byte(val), nil
	}
	return nil, config.ErrNoValue
}

func (v variable) Shutdown() {}

func NewDurationConfig(key string, defaultValue time.Duration) config.Duration {
	return wrapper.NewDurationConfig(NewConfig(key), defaultValue)
}

func NewStringConfig(key string, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(key), defaultValue)
}

func NewUint64Config(key string, defaultValue uint64) config.Uint64 {
	return wrapper.NewUint64Config(NewConfig(key), defaultValue)
}
