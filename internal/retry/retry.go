// Package retry provides a bounded retry combinator with a fixed delay,
// shared by the refresh and mutation paths.
package retry

import (
	"time"
)

const (
	// DefaultAttempts is the total number of attempts (first try included)
	DefaultAttempts = 3

	// DefaultDelay is the fixed pause between attempts
	DefaultDelay = 1 * time.Second
)

// sleep is swappable for tests
var sleep = time.Sleep

// Do runs fn up to attempts times, pausing delay between attempts. It stops
// early when fn succeeds or when retryable reports the error is not worth
// retrying. A nil retryable treats every error as retryable. The error from
// the last attempt is returned.
func Do(attempts int, delay time.Duration, retryable func(error) bool, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			sleep(delay)
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
