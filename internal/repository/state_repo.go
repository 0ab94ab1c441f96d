package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/punch/internal/domain"
	"github.com/alexanderramin/punch/internal/snapshot"
)

// KVStateRepo implements StateRepo on top of a KVStore.
type KVStateRepo struct {
	kv     KVStore
	plan   domain.BreakPlan
	logger *slog.Logger
}

// StateRepoOption configures a KVStateRepo.
type StateRepoOption func(*KVStateRepo)

// WithLogger sets the logger that receives normalization notes.
func WithLogger(l *slog.Logger) StateRepoOption {
	return func(r *KVStateRepo) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithBreakPlan sets the plan used to fill in missing break fields on load.
func WithBreakPlan(p domain.BreakPlan) StateRepoOption {
	return func(r *KVStateRepo) {
		if len(p) > 0 {
			r.plan = p
		}
	}
}

// NewKVStateRepo creates a state repository over kv.
func NewKVStateRepo(kv KVStore, opts ...StateRepoOption) *KVStateRepo {
	r := &KVStateRepo{
		kv:     kv,
		plan:   domain.DefaultBreakPlan,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *KVStateRepo) Load(ctx context.Context) (domain.Timesheet, error) {
	entry, key, err := r.current(ctx)
	if err != nil {
		return domain.Timesheet{}, err
	}
	if entry == nil {
		return domain.Timesheet{}, nil
	}

	res := snapshot.Decode([]byte(entry.Value), r.plan)
	for _, p := range res.Problems {
		r.logger.Warn("state document repaired", "key", key, "source", string(res.Source), "problem", p)
	}
	if res.Migrated() {
		r.logger.Info("migrated legacy state document", "key", key,
			"sessions", len(res.Timesheet.Sessions), "breaks", len(res.Timesheet.Breaks))
	}
	return res.Timesheet, nil
}

func (r *KVStateRepo) Save(ctx context.Context, ts domain.Timesheet) error {
	data, err := snapshot.Encode(ts)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, StateKey, string(data)); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	// Once the current document exists the legacy one is never read again.
	if err := r.kv.Delete(ctx, LegacyStateKey); err != nil {
		return fmt.Errorf("dropping legacy state: %w", err)
	}
	return nil
}

func (r *KVStateRepo) Clear(ctx context.Context) error {
	return r.Save(ctx, domain.Timesheet{})
}

func (r *KVStateRepo) Revision(ctx context.Context) (string, error) {
	entry, key, err := r.current(ctx)
	if err != nil || entry == nil {
		return "", err
	}
	return key + "@" + entry.UpdatedAt.Format(revisionLayout), nil
}

// current returns the stored document, preferring StateKey over the legacy
// key. A nil entry means neither exists.
func (r *KVStateRepo) current(ctx context.Context) (*KVEntry, string, error) {
	for _, key := range []string{StateKey, LegacyStateKey} {
		entry, err := r.kv.Get(ctx, key)
		if err == nil {
			return entry, key, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, "", fmt.Errorf("loading state: %w", err)
		}
	}
	return nil, "", nil
}
