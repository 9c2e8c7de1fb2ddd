// Package storage holds sink-side policy shared by storage backends:
// the bounded connection retry state machine and the error taxonomy.
package storage

import (
	"errors"
	"fmt"
	"time"
)

// ErrConnectionExhausted is returned when the bounded retry policy gives
// up. It is fatal to the process; no higher-level retry is attempted.
var ErrConnectionExhausted = errors.New("database connection attempts exhausted")

// Dialer performs a single connection attempt.
type Dialer func() error

// Sleeper pauses between attempts. Injected so tests can drive the
// policy with a fake clock.
type Sleeper func(time.Duration)

// RetryPolicy describes the bounded fixed-delay retry performed at
// startup. The policy itself is pure; the dial and sleep effects are
// supplied by the caller.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

type retryState int

const (
	stateAttempting retryState = iota
	stateSucceeded
	stateExhausted
)

// Run drives the retry state machine until the dialer succeeds or the
// attempt budget is spent. It returns the number of attempts made; on
// exhaustion the error wraps ErrConnectionExhausted along with the last
// dial failure.
func (p RetryPolicy) Run(dial Dialer, sleep Sleeper) (int, error) {
	state := stateAttempting
	attempts := 0
	var lastErr error

	for state == stateAttempting {
		attempts++
		lastErr = dial()
		switch {
		case lastErr == nil:
			state = stateSucceeded
		case attempts >= p.MaxAttempts:
			state = stateExhausted
		default:
			sleep(p.Delay)
		}
	}

	if state == stateExhausted {
		return attempts, fmt.Errorf("%w after %d attempts: %v", ErrConnectionExhausted, attempts, lastErr)
	}
	return attempts, nil
}
