// Package runtime holds the in-memory connection registry and the
// matching, queueing, timeout, and lifecycle logic built on top of it.
// It routes connections without knowing anything about the transport.
package runtime

import (
	"sync"

	"deskline/domain"
)

// Table is a mutually-exclusive in-memory record store addressed by
// connection id. It is safe for concurrent use by many goroutines.
//
// Every read-modify-write must go through Update: a get, compute, put
// split across two critical sections loses updates under concurrency.
// The lock is held only for the duration of one call, never across I/O.
type Table[T any] struct {
	mu      sync.RWMutex
	records map[string]T
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{records: make(map[string]T)}
}

func (t *Table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.records[id]
	return rec, ok
}

// All returns a snapshot copy of the table. Mutating the returned map
// does not affect the table.
func (t *Table[T]) All() map[string]T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]T, len(t.records))
	for id, rec := range t.records {
		out[id] = rec
	}
	return out
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

func (t *Table[T]) Put(id string, rec T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[id] = rec
}

func (t *Table[T]) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.records[id]
	delete(t.records, id)
	return ok
}

// Take atomically removes and returns the record. Removal paths use it
// so that two concurrent removals of the same id cannot both observe
// the record (the second caller gets ok=false and becomes a no-op).
func (t *Table[T]) Take(id string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[id]
	delete(t.records, id)
	return rec, ok
}

// Update applies fn to the current record under one critical section.
// fn receives the record (zero value if absent) and whether it exists,
// and returns the new record plus whether to store it; returning false
// leaves the table untouched. Update reports whether the record existed
// when fn ran.
//
// fn must not call back into the table: the lock is already held.
func (t *Table[T]) Update(id string, fn func(rec T, ok bool) (T, bool)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[id]
	next, store := fn(rec, ok)
	if store {
		t.records[id] = next
	}
	return ok
}

// Registry owns all connection state: one table per record family.
// Every other component reads and writes through it; nobody holds
// long-lived references to records.
type Registry struct {
	Staff     *Table[domain.Staff]
	Customers *Table[domain.Customer]
}

func NewRegistry() *Registry {
	return &Registry{
		Staff:     NewTable[domain.Staff](),
		Customers: NewTable[domain.Customer](),
	}
}
