// Package lists keeps local snapshots of the service's collections.
//
// A List only ever replaces its snapshot wholesale. A failed refresh keeps
// the previous snapshot so a populated view never empties on a bad request.
package lists

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNoSession is returned when a guarded list is refreshed while logged out.
var ErrNoSession = errors.New("not signed in")

// Fetcher loads one full collection from the service.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Gate reports whether a refresh may be attempted.
type Gate interface {
	Authenticated() bool
}

// List is a synchronizer for one named remote collection.
type List[T any] struct {
	name  string
	fetch Fetcher[T]
	gate  Gate
	log   zerolog.Logger

	mu        sync.Mutex
	items     []T
	loaded    bool
	started   uint64 // sequence of the latest refresh started
	applied   uint64 // sequence of the snapshot currently held
	listeners []func([]T)
}

// New creates a List. A nil gate means the collection is public.
func New[T any](name string, fetch Fetcher[T], gate Gate, log zerolog.Logger) *List[T] {
	return &List[T]{
		name:  name,
		fetch: fetch,
		gate:  gate,
		log:   log.With().Str("list", name).Logger(),
		items: []T{},
	}
}

// Name returns the collection name.
func (l *List[T]) Name() string {
	return l.name
}

// Guarded reports whether refreshing needs a session.
func (l *List[T]) Guarded() bool {
	return l.gate != nil
}

// OnChange registers fn to receive every newly applied snapshot.
func (l *List[T]) OnChange(fn func([]T)) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

// Items returns a copy of the current snapshot. Never nil.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Loaded reports whether a refresh has ever succeeded.
func (l *List[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Refresh fetches the collection and replaces the snapshot. On failure the
// previous snapshot is kept and the error returned. If a refresh started
// later has already been applied, this one's result is dropped.
func (l *List[T]) Refresh(ctx context.Context) error {
	if l.gate != nil && !l.gate.Authenticated() {
		return fmt.Errorf("lists.Refresh %s: %w", l.name, ErrNoSession)
	}

	l.mu.Lock()
	l.started++
	seq := l.started
	l.mu.Unlock()

	items, err := l.fetch(ctx)
	if err != nil {
		l.log.Warn().Err(err).Msg("refresh failed, keeping previous snapshot")
		return fmt.Errorf("lists.Refresh %s: %w", l.name, err)
	}
	if items == nil {
		items = []T{}
	}

	l.mu.Lock()
	if applied := l.applied; seq <= applied {
		l.mu.Unlock()
		l.log.Debug().Uint64("seq", seq).Uint64("applied", applied).Msg("dropping superseded refresh")
		return nil
	}
	l.items = items
	l.loaded = true
	l.applied = seq
	listeners := l.listeners
	snapshot := make([]T, len(items))
	copy(snapshot, items)
	l.mu.Unlock()

	l.log.Debug().Int("count", len(items)).Msg("refreshed")
	for _, fn := range listeners {
		fn(snapshot)
	}
	return nil
}

// Reset drops the snapshot, e.g. after logout. Refreshes still in flight
// are discarded when they land.
func (l *List[T]) Reset() {
	l.mu.Lock()
	l.items = []T{}
	l.loaded = false
	l.applied = l.started
	l.mu.Unlock()
}
