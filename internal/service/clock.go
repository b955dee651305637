package service

import (
	"context"
	"time"
)

// Clock abstracts the inter-round delay so tests can simulate elapsed time.
// Production uses wall-clock waiting; the wait is a genuine suspension that
// honors cancellation, never a busy loop.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func NewClock() Clock { return realClock{} }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
