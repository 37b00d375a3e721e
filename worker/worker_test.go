package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/engine"
)

func TestRunnerDrainsEndToEnd(t *testing.T) {
	engine.Shutdown()
	if err := engine.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(engine.Shutdown)

	const sub api.SubsystemID = 21
	const group api.GroupID = 4
	r := Start(context.Background(), Options{
		Subsystem:      sub,
		Groups:         []api.GroupID{group},
		PendingWorkers: 2,
		Poll:           20 * time.Millisecond,
	})
	defer r.Stop()

	const tasks = 50
	var executed, delivered atomic.Int32
	for i := 0; i < tasks; i++ {
		_, err := engine.Submit(sub, group,
			func(ctx any, id api.TaskID) {
				executed.Add(1)
				_ = engine.MarkCompleted(id)
			}, nil,
			func(ctx any, id api.TaskID, completion any, completionCtx any) {
				delivered.Add(1)
				_ = engine.Close(id)
			}, nil,
			nil, nil,
		)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	deadline := time.After(5 * time.Second)
	for delivered.Load() != tasks {
		select {
		case <-deadline:
			t.Fatalf("delivered %d/%d (executed %d)", delivered.Load(), tasks, executed.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}
	if executed.Load() != tasks {
		t.Fatalf("executed %d, want %d", executed.Load(), tasks)
	}
	if engine.TaskCount() != 0 {
		t.Fatalf("registry still owns %d records", engine.TaskCount())
	}
}

func TestRunnerStopsCleanly(t *testing.T) {
	engine.Shutdown()
	if err := engine.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(engine.Shutdown)

	r := Start(context.Background(), Options{Subsystem: 22, Poll: 10 * time.Millisecond})
	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
