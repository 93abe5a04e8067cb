package retry

import "errors"

// Strategy decides whether another attempt follows a failed one. Attempts
// are counted from 1.
type Strategy func(attempt uint, err error) bool

// Limit allows at most maxAttempts attempts in total.
func Limit(maxAttempts uint) Strategy {
	return func(attempt uint, _ error) bool {
		return attempt < maxAttempts
	}
}

// RetriableErrors only retries errors matching one of targets, including
// wrapped ones.
func RetriableErrors(targets ...error) Strategy {
	return func(_ uint, err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}
