package blogmirror

import (
	"context"
	"time"
)

// RunLocker provides a named, expiring lease used to keep sync runs from
// overlapping.
type RunLocker interface {
	// AcquireLock takes the named lease for owner until ttl elapses.
	// Returns ECONFLICT if another owner holds an unexpired lease.
	AcquireLock(ctx context.Context, name, owner string, ttl time.Duration) error

	// ReleaseLock drops the lease if owner still holds it.
	ReleaseLock(ctx context.Context, name, owner string) error
}
