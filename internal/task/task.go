// File: internal/task/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package task

import (
	"sync/atomic"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/internal/concurrency"
)

// Record is one submitted task. Immutable after submission except for
// state, which only the dispatchers write while holding the pending
// mutex. The callback contexts are opaque; the engine never inspects
// them.
type Record struct {
	ID          api.TaskID
	SubsystemID api.SubsystemID
	GroupID     api.GroupID

	Execute    api.ExecuteFunc
	ExecuteCtx any

	WriteResults    api.WriteResultsFunc
	WriteResultsCtx any

	Completion    any
	CompletionCtx any

	// Completed is pulsed when the record reaches the completed queue,
	// for synchronous per-task waiters.
	Completed *concurrency.AutoResetEvent

	state atomic.Int32
}

// NewRecord builds a pending record. The id comes from the registry.
func NewRecord(id api.TaskID, subsystem api.SubsystemID, group api.GroupID) *Record {
	r := &Record{
		ID:          id,
		SubsystemID: subsystem,
		GroupID:     group,
		Completed:   concurrency.NewAutoResetEvent(),
	}
	r.state.Store(int32(api.TaskPending))
	return r
}

// State reports the record's lifecycle position.
func (r *Record) State() api.TaskState {
	return api.TaskState(r.state.Load())
}

func (r *Record) setState(s api.TaskState) {
	r.state.Store(int32(s))
}
