// Package retry re-runs failing actions.
package retry

import "time"

// Action is one attempt of a retriable operation.
type Action func() error

// Retrier runs an Action until it succeeds or one of its strategies gives up.
type Retrier struct {
	wait       Wait
	strategies []Strategy
}

// NewRetrier returns a Retrier that consults strategies in order after each
// failed attempt, then pauses for wait. A nil wait retries immediately.
func NewRetrier(wait Wait, strategies ...Strategy) *Retrier {
	return &Retrier{
		wait:       wait,
		strategies: strategies,
	}
}

// Retry returns the number of attempts made along with the last error.
func (r *Retrier) Retry(action Action) (uint, error) {
	var attempt uint
	for {
		attempt++

		err := action()
		if err == nil {
			return attempt, nil
		}

		for _, s := range r.strategies {
			if !s(attempt, err) {
				return attempt, err
			}
		}

		if r.wait != nil {
			if d := r.wait(attempt); d > 0 {
				sleep(d)
			}
		}
	}
}

// Retry is shorthand for NewRetrier(wait, strategies...).Retry(action).
func Retry(action Action, wait Wait, strategies ...Strategy) (uint, error) {
	return NewRetrier(wait, strategies...).Retry(action)
}

var sleep = time.Sleep
