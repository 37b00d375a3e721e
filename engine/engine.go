// File: engine/engine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Singleton lifecycle and the settings the singleton carries for its
// collaborators.

package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/config"
	"github.com/momentics/hioload-taskq/internal/eventbus"
	"github.com/momentics/hioload-taskq/internal/task"
	"github.com/momentics/hioload-taskq/trace"
)

// shutdownPollInterval paces the quiescence wait. Shutdown is rare, so a
// coarse poll beats threading a condition variable through every
// reference-release path.
const shutdownPollInterval = 10 * time.Millisecond

// Engine composes the registry, dispatchers and event bus behind the
// process-global slot.
type Engine struct {
	refs atomic.Int64

	registry  *task.Registry
	pending   *task.PendingDispatcher
	completed *task.CompletedDispatcher
	bus       *eventbus.Bus

	settingsMu sync.RWMutex
	settings   config.Settings

	hooksMu sync.Mutex
	hooks   []func()
}

var global atomic.Pointer[Engine]

func newEngine(s *config.Settings) *Engine {
	return &Engine{
		registry:  task.NewRegistry(),
		pending:   task.NewPendingDispatcher(),
		completed: task.NewCompletedDispatcher(),
		bus:       eventbus.NewBus(),
		settings:  *s,
	}
}

// Initialize constructs the singleton. Safe from multiple goroutines:
// exactly one construction wins, the rest are dropped without side
// effects. Calling after a successful Initialize is a no-op.
func Initialize() error {
	if global.Load() != nil {
		return nil
	}
	settings, err := config.Load()
	if err != nil {
		return err
	}
	candidate := newEngine(settings)
	if global.CompareAndSwap(nil, candidate) {
		trace.Information("task engine initialized")
	}
	return nil
}

// Acquire returns a counted reference to the singleton, or nil when the
// engine is absent. Every successful Acquire must be paired with a
// Release; Shutdown waits for the count to reach zero.
func Acquire() *Engine {
	for {
		e := global.Load()
		if e == nil {
			return nil
		}
		e.refs.Add(1)
		if global.Load() == e {
			return e
		}
		// Lost against Shutdown between load and increment.
		e.refs.Add(-1)
	}
}

// AcquireAssert is Acquire for call paths where an absent singleton is a
// programming error. It traces the misuse and still returns nil rather
// than panicking.
func AcquireAssert() *Engine {
	e := Acquire()
	if e == nil {
		trace.Error("engine acquired before Initialize")
	}
	return e
}

// Release returns a reference obtained from Acquire.
func (e *Engine) Release() {
	e.refs.Add(-1)
}

// RegisterShutdownHook records fn to run once at the start of Shutdown,
// after the global slot is cleared and before the quiescence wait.
// Collaborators that cache references drop them here.
func RegisterShutdownHook(fn func()) error {
	e := Acquire()
	if e == nil {
		return api.ErrNotInitialized
	}
	defer e.Release()
	e.hooksMu.Lock()
	e.hooks = append(e.hooks, fn)
	e.hooksMu.Unlock()
	return nil
}

// Shutdown clears the global slot, runs the shutdown hooks, then waits
// until every outstanding reference has been released. After it returns
// Acquire returns nil. The registry is not emptied: records still in it
// (tasks never closed) are counted in the shutdown trace and stay with
// the detached engine.
func Shutdown() {
	e := global.Swap(nil)
	if e == nil {
		return
	}

	e.hooksMu.Lock()
	hooks := e.hooks
	e.hooks = nil
	e.hooksMu.Unlock()
	for _, fn := range hooks {
		fn()
	}

	for e.refs.Load() > 0 {
		time.Sleep(shutdownPollInterval)
	}
	trace.Information("task engine shut down: outstandingTasks=%d", e.registry.Len())
}
