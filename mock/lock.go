package mock

import (
	"context"
	"time"

	"github.com/fwojciec/blogmirror"
)

var _ blogmirror.RunLocker = (*RunLocker)(nil)

// RunLocker is a mock implementation of blogmirror.RunLocker.
type RunLocker struct {
	AcquireLockFn func(ctx context.Context, name, owner string, ttl time.Duration) error
	ReleaseLockFn func(ctx context.Context, name, owner string) error
}

func (l *RunLocker) AcquireLock(ctx context.Context, name, owner string, ttl time.Duration) error {
	return l.AcquireLockFn(ctx, name, owner, ttl)
}

func (l *RunLocker) ReleaseLock(ctx context.Context, name, owner string) error {
	return l.ReleaseLockFn(ctx, name, owner)
}
