// Package store keeps one remote collection cached in memory and orchestrates
// CRUD against it.
//
// The store favours simplicity over optimistic consistency: every successful
// mutation is followed by a full re-list rather than a local patch. On a
// failed mutation the cache is deliberately left untouched — no local change
// was ever applied, so there is nothing to roll back. A failed list keeps the
// previously cached collection visible.
package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskops/admin-console/internal/core/domain"
	"github.com/taskops/admin-console/internal/core/notify"
	"github.com/taskops/admin-console/internal/core/ports"
)

// Labels names the entity in user-facing notifications.
type Labels struct {
	Singular string // "user"
	Plural   string // "users"
}

// Store is the cache plus CRUD orchestration for one entity collection.
type Store[T domain.Entity] struct {
	mu      sync.Mutex
	remote  ports.Collection[T]
	notes   *notify.Center
	log     zerolog.Logger
	labels  Labels
	items   []T
	loading int // reference-counted: two overlapping fetches cannot race on clearing the flag
}

// New returns an empty Store backed by remote.
func New[T domain.Entity](remote ports.Collection[T], notes *notify.Center, labels Labels, log zerolog.Logger) *Store[T] {
	return &Store[T]{
		remote: remote,
		notes:  notes,
		log:    log.With().Str("collection", labels.Plural).Logger(),
		labels: labels,
	}
}

// Snapshot returns a copy of the cached collection.
func (s *Store[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the cached collection size.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Find returns the cached entity with the given ID.
func (s *Store[T]) Find(id uint) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Loading reports whether at least one fetch is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

// Clear empties the cache without touching the remote collection. Used at
// logout.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// List refreshes the cache from the remote collection. On failure the
// previous cache is kept, the error is logged and surfaced as an error
// notification. A cancelled context aborts silently: the session that asked
// for the data is gone, so neither cache nor notification slots are touched.
func (s *Store[T]) List(ctx context.Context) error {
	s.beginLoad()
	defer s.endLoad()

	items, err := s.remote.List(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.log.Debug().Msg("list abandoned, session context done")
			return err
		}
		s.log.Error().Err(err).Msg("failed to load collection")
		s.notes.Error("Failed to load " + s.labels.Plural)
		return err
	}

	// The session may have ended while the call was in flight; a late result
	// must not repopulate a cleared cache.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Create submits a new entity and, on success, re-lists the collection and
// pushes a success notification. On failure the caller's draft stays intact;
// only an error notification is emitted. No retries.
func (s *Store[T]) Create(ctx context.Context, draft T) error {
	if err := s.remote.Create(ctx, draft); err != nil {
		return s.mutationFailed(ctx, err, "create", "Failed to create "+s.labels.Singular)
	}
	s.notes.Success(capitalise(s.labels.Singular) + " created")
	_ = s.List(ctx)
	return nil
}

// Update submits a full-record replacement for id, then re-lists on success.
func (s *Store[T]) Update(ctx context.Context, id uint, item T) error {
	if err := s.remote.Update(ctx, id, item); err != nil {
		return s.mutationFailed(ctx, err, "update", "Failed to update "+s.labels.Singular)
	}
	s.notes.Success(capitalise(s.labels.Singular) + " updated")
	_ = s.List(ctx)
	return nil
}

// Delete removes the entity with the given ID, then re-lists on success. The
// human confirmation gate lives with the caller; by the time Delete runs the
// operator has already confirmed. On failure the cached collection is left
// unchanged, so the deleted item may stay visible until the next successful
// list.
func (s *Store[T]) Delete(ctx context.Context, id uint) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		return s.mutationFailed(ctx, err, "delete", "Failed to delete "+s.labels.Singular)
	}
	s.notes.Success(capitalise(s.labels.Singular) + " deleted")
	_ = s.List(ctx)
	return nil
}

func (s *Store[T]) mutationFailed(ctx context.Context, err error, op, message string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.log.Debug().Str("operation", op).Msg("mutation abandoned, session context done")
		return err
	}
	s.log.Error().Err(err).Str("operation", op).Msg("mutation failed")
	s.notes.Error(message)
	return err
}

func (s *Store[T]) beginLoad() {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
}

func (s *Store[T]) endLoad() {
	s.mu.Lock()
	if s.loading > 0 {
		s.loading--
	}
	s.mu.Unlock()
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
