package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/punch/internal/domain"
)

// ErrNotFound is returned (wrapped) when a key has no stored value.
var ErrNotFound = errors.New("not found")

const (
	// StateKey holds the current timesheet document.
	StateKey = "state"
	// LegacyStateKey is where the browser version kept its document.
	LegacyStateKey = "tt_v1"
)

// KVEntry is one stored value with its last write time.
type KVEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type KVStore interface {
	Get(ctx context.Context, key string) (*KVEntry, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// StateRepo persists the whole timesheet as one document.
type StateRepo interface {
	// Load never fails on absent or malformed data; it returns an empty
	// timesheet instead. Errors are reserved for storage failures.
	Load(ctx context.Context) (domain.Timesheet, error)
	Save(ctx context.Context, ts domain.Timesheet) error
	Clear(ctx context.Context) error
	// Revision changes whenever Save or Clear commits. Empty when nothing
	// has been stored.
	Revision(ctx context.Context) (string, error)
}
