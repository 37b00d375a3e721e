// File: internal/task/completed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Completed dispatcher: subsystem -> group -> FIFO plus per-group ready
// signal. Its mutex is independent from the pending mutex so completion
// drains never serialize against workers pulling new work.

package task

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/internal/concurrency"
	"github.com/momentics/hioload-taskq/trace"
)

type groupQueue struct {
	q     *queue.Queue
	ready *concurrency.AutoResetEvent
}

// CompletedDispatcher routes finished records back to the group their
// submitter chose. Queues are created lazily on first reference.
type CompletedDispatcher struct {
	mu     sync.Mutex
	groups map[api.SubsystemID]map[api.GroupID]*groupQueue
}

// NewCompletedDispatcher returns an empty dispatcher.
func NewCompletedDispatcher() *CompletedDispatcher {
	return &CompletedDispatcher{groups: make(map[api.SubsystemID]map[api.GroupID]*groupQueue)}
}

// groupFor returns the (subsystem, group) queue, creating it lazily.
func (d *CompletedDispatcher) groupFor(subsystem api.SubsystemID, group api.GroupID) *groupQueue {
	d.mu.Lock()
	defer d.mu.Unlock()
	byGroup, ok := d.groups[subsystem]
	if !ok {
		byGroup = make(map[api.GroupID]*groupQueue)
		d.groups[subsystem] = byGroup
	}
	gq, ok := byGroup[group]
	if !ok {
		gq = &groupQueue{q: queue.New(), ready: concurrency.NewAutoResetEvent()}
		byGroup[group] = gq
	}
	return gq
}

// push appends rec and pulses both the group ready signal and the
// record's own completion event. Called from PendingDispatcher.Complete
// with the pending mutex held; takes the completed mutex inside it.
func (d *CompletedDispatcher) push(rec *Record) {
	gq := d.groupFor(rec.SubsystemID, rec.GroupID)
	d.mu.Lock()
	gq.q.Add(rec)
	trace.Information("task queue completed: queueSize=%d taskId=%d", gq.q.Length(), rec.ID)
	d.mu.Unlock()

	rec.Completed.Set()
	gq.ready.Set()
}

// Pop removes and returns the head of the (subsystem, group) queue, or
// nil without blocking.
func (d *CompletedDispatcher) Pop(subsystem api.SubsystemID, group api.GroupID) *Record {
	gq := d.groupFor(subsystem, group)
	d.mu.Lock()
	defer d.mu.Unlock()
	if gq.q.Length() == 0 {
		return nil
	}
	return gq.q.Remove().(*Record)
}

// WaitReady blocks on the group's ready signal until a completion is
// pushed or the timeout elapses.
func (d *CompletedDispatcher) WaitReady(subsystem api.SubsystemID, group api.GroupID, timeout time.Duration) bool {
	return d.groupFor(subsystem, group).ready.Wait(timeout)
}

// CompletedLen reports the queue depth for one (subsystem, group).
func (d *CompletedDispatcher) CompletedLen(subsystem api.SubsystemID, group api.GroupID) int {
	gq := d.groupFor(subsystem, group)
	d.mu.Lock()
	defer d.mu.Unlock()
	return gq.q.Length()
}
