package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/blogmirror"
)

// Compile-time interface verification.
var _ blogmirror.RunLocker = (*LockService)(nil)

// LockService implements blogmirror.RunLocker with leases in the sync_locks
// table. A lease past its expiry may be taken over by any owner, so a
// crashed run cannot block later runs forever.
type LockService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewLockService creates a new LockService.
func NewLockService(db *DB) *LockService {
	return &LockService{db: db, Now: time.Now}
}

// AcquireLock takes the named lease for owner.
func (s *LockService) AcquireLock(ctx context.Context, name, owner string, ttl time.Duration) error {
	now := s.Now()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return storageError(err, "acquire lock %s", name)
	}
	defer tx.Rollback()

	var holder string
	var expiresAt int64
	err = tx.QueryRowContext(ctx, "SELECT owner, expires_at FROM sync_locks WHERE name = ?", name).Scan(&holder, &expiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return storageError(err, "acquire lock %s", name)
	case holder != owner && expiresAt > now.Unix():
		return blogmirror.Errorf(blogmirror.ECONFLICT, "lock %s held by %s until %s",
			name, holder, time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sync_locks (name, owner, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET owner = excluded.owner, expires_at = excluded.expires_at
	`, name, owner, now.Add(ttl).Unix())
	if err != nil {
		return storageError(err, "acquire lock %s", name)
	}

	if err := tx.Commit(); err != nil {
		return storageError(err, "acquire lock %s", name)
	}
	return nil
}

// ReleaseLock drops the lease if owner still holds it.
func (s *LockService) ReleaseLock(ctx context.Context, name, owner string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sync_locks WHERE name = ? AND owner = ?", name, owner); err != nil {
		return storageError(err, "release lock %s", name)
	}
	return nil
}
