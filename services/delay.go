package services

import (
	"context"
	"time"

	"github.com/anjiri1684/tutoring_api/monitoring"
	"go.uber.org/zap"
)

const DefaultLatency = 300 * time.Millisecond

// Delay blocks for d or until ctx is done, whichever comes first.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Simulator gives every service call the latency of a network round trip.
type Simulator struct {
	Latency time.Duration
	logger  *zap.Logger
}

func NewSimulator(latency time.Duration, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{Latency: latency, logger: logger}
}

// Wait pauses for the configured latency. A nil Simulator does not pause.
func (s *Simulator) Wait(ctx context.Context) error {
	if s == nil {
		return ctx.Err()
	}
	return Delay(ctx, s.Latency)
}

// call waits out the simulated latency and then runs fn. fn never starts
// when ctx ends during the wait, so an abandoned call leaves no trace.
func call[T any](ctx context.Context, s *Simulator, op string, fn func() (T, error)) (T, error) {
	started := time.Now()
	var zero T
	if err := s.Wait(ctx); err != nil {
		monitoring.ObserveOperation(op, started, err)
		return zero, err
	}
	out, err := fn()
	monitoring.ObserveOperation(op, started, err)
	if err != nil {
		if s != nil {
			s.logger.Debug("operation failed", zap.String("op", op), zap.Error(err))
		}
		return zero, err
	}
	return out, nil
}
