// File: internal/task/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Handle registry: id allocation plus the owning id -> record map.
// Guarded by its own mutex so lookups stay off the hot queue path.

package task

import (
	"sync"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/trace"
)

// Registry owns task storage. Queues and callers hold non-owning
// references; Remove drops ownership and the record is reclaimed once no
// other reference is live.
type Registry struct {
	mu     sync.RWMutex
	lastID api.TaskID
	tasks  map[api.TaskID]*Record
}

// NewRegistry returns an empty registry. Ids start at 1.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[api.TaskID]*Record)}
}

// AllocateID returns the next task id. Strictly monotone for the
// registry's lifetime; a 64-bit wrap is an invariant violation.
func (r *Registry) AllocateID() api.TaskID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	if r.lastID == 0 {
		trace.Error("task id space exhausted")
	}
	return r.lastID
}

// Store inserts the owning reference keyed by rec.ID.
func (r *Registry) Store(rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.tasks[rec.ID]; dup {
		trace.Error("duplicate task id in registry: taskId=%d", rec.ID)
		return api.ErrTaskExists
	}
	r.tasks[rec.ID] = rec
	return nil
}

// Lookup returns the record for id, or nil. Safe under concurrent
// mutation of the registry.
func (r *Registry) Lookup(id api.TaskID) *Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tasks[id]
}

// Remove drops ownership of id. Unknown ids are a no-op.
func (r *Registry) Remove(id api.TaskID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
}

// Len reports how many records the registry owns.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
