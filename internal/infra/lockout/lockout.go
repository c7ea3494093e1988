package lockout

import (
	"context"
	"time"
)

// Policy: after MaxFailures failed logins within Window the key is locked
// for LockFor.
type Policy struct {
	MaxFailures int
	Window      time.Duration
	LockFor     time.Duration
}

var DefaultPolicy = Policy{
	MaxFailures: 5,
	Window:      15 * time.Minute,
	LockFor:     15 * time.Minute,
}

type Store interface {
	// LockedUntil returns the zero time when key is not locked.
	LockedUntil(ctx context.Context, key string) (time.Time, error)
	RecordFailure(ctx context.Context, key string) error
	Clear(ctx context.Context, key string) error
}
