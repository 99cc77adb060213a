// Package registry holds generated deep-link records in memory.
//
// Records are kept most-recent-first: Insert always prepends and nothing
// re-sorts the collection. The registry lives for the lifetime of the
// process and is never persisted.
//
// All methods are safe for concurrent use and atomic from the caller's point
// of view.
package registry

import (
	"slices"
	"sync"

	"github.com/matzehuels/menulink/pkg/link"
)

// Registry is an ordered, in-memory collection of link records.
type Registry struct {
	mu      sync.RWMutex
	records []*link.Record
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Insert prepends rec. A nil record is ignored.
func (r *Registry) Insert(rec *link.Record) {
	if rec == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = slices.Insert(r.records, 0, rec)
}

// DeleteByID removes the record with the given id, if present.
// It reports whether a record was removed; an unknown id is a no-op.
func (r *Registry) DeleteByID(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.records, func(rec *link.Record) bool { return rec.ID == id })
	if i < 0 {
		return false
	}
	r.records = slices.Delete(r.records, i, i+1)
	return true
}

// Clear removes every record.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}

// List returns a snapshot of the records, most recent first.
func (r *Registry) List() []*link.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.records)
}

// Get returns the record with the given id.
func (r *Registry) Get(id string) (*link.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return nil, false
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
