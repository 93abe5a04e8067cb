// Package file provides configs backed by a viper instance, which merges
// config files, flags and the environment.
package file

import (
	"context"
	"time"

	"github.com/spf13/viper"

	"github.com/bhagyamudgal/governance-ui/pkg/config"
	"github.com/bhagyamudgal/governance-ui/pkg/config/wrapper"
)

type source struct {
	v   *viper.Viper
	key string
}

// NewConfig returns a config reading key from v on every Get.
func NewConfig(v *viper.Viper, key string) config.Config {
	return &source{v: v, key: key}
}

// Get implements config.Config.Get
func (s *source) Get(_ context.Context) (interface{}, error) {
	if !s.v.IsSet(s.key) {
		return nil, config.ErrNoValue
	}

	val := s.v.Get(s.key)
	if val == nil {
		return nil, config.ErrNoValue
	}
	if str, ok := val.(string); ok && len(str) == 0 {
		return nil, config.ErrNoValue
	}
	return val, nil
}

// Shutdown implements config.Config.Shutdown
func (s *source) Shutdown() {
}

func NewDurationConfig(v *viper.Viper, key string, defaultValue time.Duration) config.Duration {
	return wrapper.NewDurationConfig(NewConfig(v, key), defaultValue)
}

func NewStringConfig(v *viper.Viper, key string, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(v, key), defaultValue)
}

func NewUint64Config(v *viper.Viper, key string, defaultValue uint64) config.Uint64 {
	return wrapper.NewUint64Config(NewConfig(v, key), defaultValue)
}
