package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNoValue indicates no value was set for the config
	ErrNoValue = errors.New("config: no value set")

	// ErrShutdown indicates the use of a Config after calling Shutdown
	ErrShutdown = errors.New("config: shutdown")
)

// Config is a source of untyped configuration values.
type Config interface {
	// Get returns the latest config value, or ErrNoValue when unset.
	Get(ctx context.Context) (interface{}, error)

	// Shutdown signals the config to stop all underlying resources
	Shutdown()
}

// Value is a typed view of a Config with a default.
type Value[T any] interface {
	// Get returns the latest value, falling back to the last known or
	// default value on errors.
	Get(ctx context.Context) T

	// GetSafe is Get that also reports the error.
	GetSafe(ctx context.Context) (T, error)

	Shutdown()
}

type (
	Duration = Value[time.Duration]
	String   = Value[string]
	Uint64   = Value[uint64]
)
