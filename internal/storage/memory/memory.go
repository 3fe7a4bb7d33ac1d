// Package memory is an in-process storage backend. It keeps the same
// uniqueness rules as the Postgres schema and hands out copies so callers
// never share state with the store.
package memory

import (
	"slices"
	"sync"
	"time"

	"recruit-api/internal/storage"

	"github.com/google/uuid"
)

type table[T any] struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]T
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]T), clone: clone}
}

func (t *table[T]) get(id uuid.UUID) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, storage.ErrNotFound
	}
	return t.clone(v), nil
}

// insert stores v unless a row with the same id exists or unique reports a
// clash with an existing row.
func (t *table[T]) insert(id uuid.UUID, v T, unique func(existing T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return storage.ErrConflict
	}
	if unique != nil {
		for _, row := range t.rows {
			if unique(row) {
				return storage.ErrConflict
			}
		}
	}
	t.rows[id] = t.clone(v)
	return nil
}

func (t *table[T]) update(id uuid.UUID, v T, unique func(existing T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return storage.ErrNotFound
	}
	if unique != nil {
		for rid, row := range t.rows {
			if rid != id && unique(row) {
				return storage.ErrConflict
			}
		}
	}
	t.rows[id] = t.clone(v)
	return nil
}

// modify runs fn on the stored row under the write lock.
func (t *table[T]) modify(id uuid.UUID, fn func(*T)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return storage.ErrNotFound
	}
	fn(&v)
	t.rows[id] = v
	return nil
}

func (t *table[T]) remove(id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) find(match func(T) bool) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if match(row) {
			return t.clone(row), nil
		}
	}
	var zero T
	return zero, storage.ErrNotFound
}

// filter returns copies of the matching rows, newest first.
func (t *table[T]) filter(match func(T) bool, created func(T) time.Time) []T {
	t.mu.RLock()
	out := make([]T, 0)
	for _, row := range t.rows {
		if match == nil || match(row) {
			out = append(out, t.clone(row))
		}
	}
	t.mu.RUnlock()
	slices.SortFunc(out, func(a, b T) int {
		return created(b).Compare(created(a))
	})
	return out
}

func paginate[T any](items []T, p storage.Page) []T {
	limit, offset := p.Bounds()
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// New builds a Store backed entirely by memory.
func New() *storage.Store {
	return &storage.Store{
		Users:         NewUserRepo(),
		Candidates:    NewCandidateRepo(),
		Companies:     NewCompanyRepo(),
		Recruiters:    NewRecruiterRepo(),
		Admins:        NewAdminRepo(),
		Offers:        NewOfferRepo(),
		Applications:  NewApplicationRepo(),
		Interviews:    NewInterviewRepo(),
		Conversations: NewConversationRepo(),
		Tickets:       NewTicketRepo(),
		Notifications: NewNotificationRepo(),
		AdminLogs:     NewAdminLogRepo(),
	}
}
