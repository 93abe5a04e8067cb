package retry

import (
	"math/rand"
	"time"
)

// Wait returns the pause after a failed attempt, counted from 1.
type Wait func(attempt uint) time.Duration

// Constant pauses for the same interval after every attempt.
func Constant(interval time.Duration) Wait {
	return func(uint) time.Duration {
		return interval
	}
}

// Exponential starts at base and doubles after every attempt, never
// exceeding max.
func Exponential(base, max time.Duration) Wait {
	return func(attempt uint) time.Duration {
		if attempt == 0 {
			attempt = 1
		}
		if attempt > 62 {
			return max
		}

		d := base << (attempt - 1)
		if d <= 0 || d > max || d>>(attempt-1) != base {
			return max
		}
		return d
	}
}

// WithJitter moves every pause of w by a random amount of up to fraction of
// its length in either direction.
func WithJitter(w Wait, fraction float64) Wait {
	return func(attempt uint) time.Duration {
		d := float64(w(attempt))
		return time.Duration(d + d*fraction*(2*rand.Float64()-1))
	}
}
