// Retry wrapper for origin and Tempo RPC calls. Only errors that look like
// temporary infrastructure failures are retried; anything else surfaces to
// the caller on the first attempt.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
)

// Defaults tuned for public RPC endpoints that rate-limit or briefly drop
// connections.
const (
	InitialDelay = 100 * time.Millisecond
	MaxDelay     = 30 * time.Second
	MaxRetries   = 10
)

// Policy bounds the retry loop. MaxRetries counts retries after the initial
// attempt, so MaxRetries=10 allows 11 invocations total.
type Policy struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	MaxRetries   int
}

func DefaultPolicy() Policy {
	return Policy{
		InitialDelay: InitialDelay,
		MaxDelay:     MaxDelay,
		MaxRetries:   MaxRetries,
	}
}

// transientMarkers are matched against lower-cased error text. Errors reach
// us from RPC clients as opaque strings, so classification is textual.
var transientMarkers = []string{
	"connection",
	"timeout",
	"rate limit",
	"too many requests",
	"429",
	"503",
	"502",
	"504",
	"temporarily unavailable",
	"network",
	"reset by peer",
	"broken pipe",
	"eof",
}

// IsTransient reports whether err looks like a temporary infrastructure
// failure worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// WithRetry runs fn under the default policy. See WithPolicy.
func WithRetry[T any](ctx context.Context, operation string, fn func() (T, error)) (T, error) {
	return WithPolicy(ctx, DefaultPolicy(), operation, fn)
}

// WithPolicy runs fn until it succeeds, fails with a non-transient error,
// the retry budget is exhausted, or ctx is cancelled while waiting. Waits
// between attempts grow exponentially from p.InitialDelay up to p.MaxDelay,
// with uniform jitter of up to a quarter of the delay on top.
func WithPolicy[T any](ctx context.Context, p Policy, operation string, fn func() (T, error)) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		result, err := fn()
		if err == nil {
			if attempt > 0 {
				logger.WithFields(logger.Fields{
					"operation": operation,
					"attempt":   attempt,
				}).Debug("succeeded after retry")
			}
			return result, nil
		}

		if !IsTransient(err) {
			return zero, err
		}

		if attempt >= p.MaxRetries {
			logger.WithFields(logger.Fields{
				"operation": operation,
				"attempts":  attempt + 1,
			}).Warn("retry budget exhausted")
			return zero, fmt.Errorf("%s failed after %d attempts: %w", operation, attempt+1, err)
		}

		delay := p.backoffDelay(attempt)
		logger.WithFields(logger.Fields{
			"operation":    operation,
			"attempt":      attempt + 1,
			"max_attempts": p.MaxRetries + 1,
			"delay_ms":     delay.Milliseconds(),
			"error":        err.Error(),
		}).Debug("transient failure, backing off")

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// backoffDelay is InitialDelay*2^attempt capped at MaxDelay, plus jitter in
// [0, delay/4]. The shift is clamped so it cannot overflow.
func (p Policy) backoffDelay(attempt int) time.Duration {
	shift := attempt
	if shift > 10 {
		shift = 10
	}
	delay := p.InitialDelay << shift
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay + time.Duration(rand.Int63n(int64(delay/4)+1))
}
