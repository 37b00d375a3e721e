// File: engine/ops.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The public operation surface. Every operation acquires the singleton,
// does its work and releases the reference; before Initialize they
// return api.ErrNotInitialized (or report no work) and touch nothing.

package engine

import (
	"time"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/internal/task"
	"github.com/momentics/hioload-taskq/trace"
)

// Submit allocates a task record and queues it on the subsystem's
// pending FIFO. Once Submit returns, the execute callback will run on
// whichever goroutine drains that subsystem; there is no cancellation.
// The completion pair is forwarded verbatim to writeResults and never
// inspected by the engine.
func Submit(
	subsystem api.SubsystemID,
	group api.GroupID,
	execute api.ExecuteFunc,
	executeCtx any,
	writeResults api.WriteResultsFunc,
	writeResultsCtx any,
	completion any,
	completionCtx any,
) (api.TaskID, error) {
	e := Acquire()
	if e == nil {
		return 0, api.ErrNotInitialized
	}
	defer e.Release()

	rec := task.NewRecord(e.registry.AllocateID(), subsystem, group)
	rec.Execute = execute
	rec.ExecuteCtx = executeCtx
	rec.WriteResults = writeResults
	rec.WriteResultsCtx = writeResultsCtx
	rec.Completion = completion
	rec.CompletionCtx = completionCtx

	if err := e.registry.Store(rec); err != nil {
		return 0, err
	}
	e.pending.Push(rec)
	e.bus.Raise(rec.SubsystemID, rec.ID, api.EventPending)
	e.pending.SignalReady()
	return rec.ID, nil
}

// DrainPending pops one task for the subsystem and runs its execute
// callback on the calling goroutine. Returns the drained id, or false
// when nothing was pending (or the engine is absent). The callback must
// eventually cause MarkCompleted for the id exactly once.
func DrainPending(subsystem api.SubsystemID) (api.TaskID, bool) {
	e := Acquire()
	if e == nil {
		return 0, false
	}
	defer e.Release()

	rec := e.pending.Pop(subsystem)
	if rec == nil {
		return 0, false
	}
	if rec.Execute != nil {
		e.bus.Raise(rec.SubsystemID, rec.ID, api.EventExecuteStarted)
		rec.Execute(rec.ExecuteCtx, rec.ID)
	}
	return rec.ID, true
}

// MarkCompleted moves a task from the executing list to the completed
// queue of its (subsystem, group), pulses the group and per-task ready
// signals and raises EXECUTE_COMPLETED. Safe from any goroutine. A task
// that is not currently executing (unknown id, double completion) is a
// traced diagnostic, not an error; the engine continues degraded.
func MarkCompleted(id api.TaskID) error {
	e := Acquire()
	if e == nil {
		return api.ErrNotInitialized
	}
	defer e.Release()

	rec := e.registry.Lookup(id)
	if rec == nil {
		trace.Error("mark completed: task not found: taskId=%d", id)
		return nil
	}
	if !e.pending.Complete(rec, e.completed) {
		trace.Error("mark completed: task not executing: taskId=%d state=%v", id, rec.State())
		return nil
	}
	e.bus.Raise(rec.SubsystemID, rec.ID, api.EventExecuteCompleted)
	return nil
}

// DrainCompleted pops one finished task for (subsystem, group) and runs
// its writeResults callback on the calling goroutine, handing it the
// completion pair. Returns false when nothing was completed.
func DrainCompleted(subsystem api.SubsystemID, group api.GroupID) (api.TaskID, bool) {
	e := Acquire()
	if e == nil {
		return 0, false
	}
	defer e.Release()

	rec := e.completed.Pop(subsystem, group)
	if rec == nil {
		return 0, false
	}
	if rec.WriteResults != nil {
		rec.WriteResults(rec.WriteResultsCtx, rec.ID, rec.Completion, rec.CompletionCtx)
	}
	return rec.ID, true
}

// Close releases the engine's ownership of a task record. The record is
// reclaimed once no queue or caller still references it.
func Close(id api.TaskID) error {
	e := Acquire()
	if e == nil {
		return api.ErrNotInitialized
	}
	defer e.Release()
	e.registry.Remove(id)
	return nil
}

// Subscribe registers an event callback for one subsystem's task
// lifecycle. The callback runs on raising goroutines with no engine lock
// held and must not re-enter Submit, MarkCompleted or Close for the
// same task.
func Subscribe(subsystem api.SubsystemID, fn api.EventFunc, ctx any) (api.SubscriptionHandle, error) {
	e := Acquire()
	if e == nil {
		return 0, api.ErrNotInitialized
	}
	defer e.Release()
	return e.bus.Subscribe(subsystem, fn, ctx), nil
}

// Unsubscribe removes an event subscription.
func Unsubscribe(h api.SubscriptionHandle) error {
	e := Acquire()
	if e == nil {
		return api.ErrNotInitialized
	}
	defer e.Release()
	e.bus.Unsubscribe(h)
	return nil
}

// WaitForPending blocks until any subsystem gains pending work or the
// timeout elapses (api.ErrWouldBlock). Wakeups may be spurious; drain to
// confirm.
func WaitForPending(timeout time.Duration) error {
	e := Acquire()
	if e == nil {
		return api.ErrNotInitialized
	}
	defer e.Release()
	if e.pending.WaitReady(timeout) {
		return nil
	}
	return api.ErrWouldBlock
}

// WaitForCompleted blocks until (subsystem, group) gains a completed
// task or the timeout elapses (api.ErrWouldBlock).
func WaitForCompleted(subsystem api.SubsystemID, group api.GroupID, timeout time.Duration) error {
	e := Acquire()
	if e == nil {
		return api.ErrNotInitialized
	}
	defer e.Release()
	if e.completed.WaitReady(subsystem, group, timeout) {
		return nil
	}
	return api.ErrWouldBlock
}

// WaitForTask blocks on one task's completion event. Returns nil as soon
// as the task has reached the completed queue, api.ErrWouldBlock on
// timeout or for an id the engine does not know.
func WaitForTask(id api.TaskID, timeout time.Duration) error {
	e := Acquire()
	if e == nil {
		return api.ErrNotInitialized
	}
	defer e.Release()

	rec := e.registry.Lookup(id)
	if rec == nil {
		trace.Error("wait for task: task not found: taskId=%d", id)
		return api.ErrWouldBlock
	}
	if rec.State() == api.TaskCompleted {
		return nil
	}
	if rec.Completed.Wait(timeout) {
		return nil
	}
	return api.ErrWouldBlock
}

// State reports a task's lifecycle position.
func State(id api.TaskID) (api.TaskState, bool) {
	e := Acquire()
	if e == nil {
		return 0, false
	}
	defer e.Release()
	rec := e.registry.Lookup(id)
	if rec == nil {
		return 0, false
	}
	return rec.State(), true
}

// TaskCount reports how many records the engine currently owns.
func TaskCount() int {
	e := Acquire()
	if e == nil {
		return 0
	}
	defer e.Release()
	return e.registry.Len()
}
