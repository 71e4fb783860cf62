package memory

import (
	"context"
	"time"
)

// Store is the durable side of the memory. Implementations must be safe for
// concurrent use.
type Store interface {
	AppendTurn(ctx context.Context, turn Turn) error
	UpsertPreferences(ctx context.Context, userID string, prefs Preferences) error
	IncrementUnknown(ctx context.Context, message string, seenAt time.Time) error
	// ListUnknown orders by frequency then last_seen, both descending.
	ListUnknown(ctx context.Context, limit int) ([]UnknownQuery, error)
	// LoadTurnsSince orders by user then timestamp ascending.
	LoadTurnsSince(ctx context.Context, since time.Time) ([]Turn, error)
	// LoadUser returns the newest limit turns in chronological order.
	LoadUser(ctx context.Context, userID string, limit int) ([]Turn, Preferences, error)
	LoadPreferences(ctx context.Context, userIDs []string) (map[string]Preferences, error)
	// DeleteUser removes turns and preferences atomically.
	DeleteUser(ctx context.Context, userID string) error
}

// SessionCache shares session snapshots between processes. Get returns nil
// without error on a miss.
type SessionCache interface {
	Get(ctx context.Context, userID string) (*Snapshot, error)
	Set(ctx context.Context, snapshot *Snapshot) error
	Delete(ctx context.Context, userID string) error
}
