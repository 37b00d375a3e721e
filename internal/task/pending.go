// File: internal/task/pending.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pending dispatcher: per-subsystem FIFOs plus the executing list, under
// one mutex so queue membership and state transitions stay atomic.

package task

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/internal/concurrency"
	"github.com/momentics/hioload-taskq/trace"
)

// PendingDispatcher routes runnable records to drain loops. Queues are
// created lazily on first reference to a subsystem id; ordering is
// strictly FIFO within a subsystem, unspecified across subsystems.
type PendingDispatcher struct {
	mu        sync.Mutex
	queues    map[api.SubsystemID]*queue.Queue
	executing []*Record
	ready     *concurrency.AutoResetEvent
}

// NewPendingDispatcher returns an empty dispatcher.
func NewPendingDispatcher() *PendingDispatcher {
	return &PendingDispatcher{
		queues: make(map[api.SubsystemID]*queue.Queue),
		ready:  concurrency.NewAutoResetEvent(),
	}
}

// queueFor returns the subsystem FIFO, creating it lazily. Caller holds mu.
func (d *PendingDispatcher) queueFor(id api.SubsystemID) *queue.Queue {
	q, ok := d.queues[id]
	if !ok {
		q = queue.New()
		d.queues[id] = q
	}
	return q
}

// Push appends rec to its subsystem queue and marks it pending.
// The engine raises the lifecycle event and pulses the ready signal
// after Push returns, so the record is visible in the queue first.
func (d *PendingDispatcher) Push(rec *Record) {
	d.mu.Lock()
	rec.setState(api.TaskPending)
	q := d.queueFor(rec.SubsystemID)
	q.Add(rec)
	trace.Information("task queue pending: queueSize=%d taskId=%d", q.Length(), rec.ID)
	d.mu.Unlock()
}

// SignalReady pulses the engine-wide pending-ready signal.
func (d *PendingDispatcher) SignalReady() {
	d.ready.Set()
}

// WaitReady blocks the caller until new pending work is signaled or the
// timeout elapses. Spurious wakeups are legal; re-check with Pop.
func (d *PendingDispatcher) WaitReady(timeout time.Duration) bool {
	return d.ready.Wait(timeout)
}

// Pop removes and returns the head of the subsystem queue, moving the
// record onto the executing list and marking it executing. Returns nil
// without blocking when the queue is empty.
func (d *PendingDispatcher) Pop(subsystem api.SubsystemID) *Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	q := d.queueFor(subsystem)
	if q.Length() == 0 {
		return nil
	}
	rec := q.Remove().(*Record)
	rec.setState(api.TaskExecuting)
	d.executing = append(d.executing, rec)
	trace.Information("task execute: executingSize=%d taskId=%d", len(d.executing), rec.ID)
	return rec
}

// Complete moves rec from the executing list into its completed queue
// and marks it completed, all while holding the pending mutex so the
// record never exists in two places. The completed dispatcher's mutex
// nests inside. Returns false, leaving all state untouched, when rec is
// not on the executing list.
func (d *PendingDispatcher) Complete(rec *Record, completed *CompletedDispatcher) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, it := range d.executing {
		if it == rec {
			d.executing = append(d.executing[:i], d.executing[i+1:]...)
			rec.setState(api.TaskCompleted)
			completed.push(rec)
			return true
		}
	}
	return false
}

// PendingLen reports the queue depth for one subsystem.
func (d *PendingDispatcher) PendingLen(subsystem api.SubsystemID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if q, ok := d.queues[subsystem]; ok {
		return q.Length()
	}
	return 0
}

// ExecutingLen reports how many records sit between dequeue and
// completion, for leak diagnosis.
func (d *PendingDispatcher) ExecutingLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.executing)
}
