// Package journal persists build lifecycle events so past builds can be
// inspected after the process exits.
package journal

import (
	"context"
	"time"
)

// Store is an append-only log of build events.
type Store interface {
	Append(ctx context.Context, event Event) error
	// ForBuild returns every event of one build in the order it was appended.
	ForBuild(ctx context.Context, buildID string) ([]Event, error)
	Between(ctx context.Context, start, end time.Time) ([]Event, error)
	Close() error
}
