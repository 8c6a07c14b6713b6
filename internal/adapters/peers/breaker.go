package peers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/samirrijal/wayfarer/internal/pkg/metrics"
)

// BreakerSettings tunes the circuit breaker held per capability.
type BreakerSettings struct {
	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32
	// Interval resets the closed-state counts; zero never resets.
	Interval time.Duration
	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration
	// MinRequests is the sample size needed before FailureRatio applies.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings trips after 60% failures over at least 10 calls
// and probes again after 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// capability couples a breaker-guarded primary call with its fallback value.
type capability[T any] struct {
	name     string
	cb       *gobreaker.CircuitBreaker[T]
	fallback func() T
}

func newCapability[T any](name string, s BreakerSettings, fallback func() T) *capability[T] {
	metrics.BreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			metrics.BreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.BreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: countsAsSuccess,
	})

	return &capability[T]{name: name, cb: cb, fallback: fallback}
}

// countsAsSuccess keeps answers that prove the peer is healthy, and
// cancellations by the caller, out of the failure count.
func countsAsSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, errPeerNotFound) ||
		errors.Is(err, errPeerRejected) ||
		errors.Is(err, context.Canceled)
}

// call runs primary through the breaker. When the breaker rejects the call
// or primary fails, the fallback value is returned with fellBack set.
func (c *capability[T]) call(ctx context.Context, primary func() (T, error)) (result T, fellBack bool) {
	v, err := c.cb.Execute(primary)
	if err == nil {
		metrics.BreakerRequests.WithLabelValues(c.name, "success").Inc()
		return v, false
	}

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.BreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		slog.DebugContext(ctx, "peer call rejected by breaker", "capability", c.name)
	case countsAsSuccess(err):
		metrics.BreakerRequests.WithLabelValues(c.name, "success").Inc()
	default:
		metrics.BreakerRequests.WithLabelValues(c.name, "failure").Inc()
		slog.WarnContext(ctx, "peer call failed", "capability", c.name, "error", err)
	}
	return c.fallback(), true
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
