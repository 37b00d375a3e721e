package engine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// The singleton is process-global; every test tears it down.
func freshEngine(t *testing.T) {
	t.Helper()
	Shutdown()
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(Shutdown)
}

func TestInitializeIdempotent(t *testing.T) {
	freshEngine(t)
	first := Acquire()
	if first == nil {
		t.Fatal("Acquire after Initialize returned nil")
	}
	first.Release()

	if err := Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	second := Acquire()
	if second != first {
		t.Fatal("second Initialize replaced the singleton")
	}
	second.Release()
}

func TestInitializeConcurrentSingleWinner(t *testing.T) {
	Shutdown()
	t.Cleanup(Shutdown)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := Initialize(); err != nil {
				t.Errorf("Initialize: %v", err)
			}
		}()
	}
	wg.Wait()

	e := Acquire()
	if e == nil {
		t.Fatal("no singleton after concurrent Initialize")
	}
	e.Release()
}

func TestAcquireBeforeInitialize(t *testing.T) {
	Shutdown()
	if Acquire() != nil {
		t.Fatal("Acquire before Initialize must return nil")
	}
	if AcquireAssert() != nil {
		t.Fatal("AcquireAssert must still return nil, not panic")
	}
}

func TestShutdownLeavesUninitialized(t *testing.T) {
	freshEngine(t)
	Shutdown()
	if Acquire() != nil {
		t.Fatal("Acquire after Shutdown must return nil")
	}
	// Init-init-shutdown round from the spec sheet.
	if err := Initialize(); err != nil {
		t.Fatalf("re-Initialize: %v", err)
	}
	if err := Initialize(); err != nil {
		t.Fatalf("re-Initialize twice: %v", err)
	}
	Shutdown()
	if Acquire() != nil {
		t.Fatal("engine must be uninitialized again")
	}
}

func TestShutdownWaitsForReferences(t *testing.T) {
	freshEngine(t)
	e := Acquire()
	if e == nil {
		t.Fatal("Acquire")
	}

	done := make(chan struct{})
	go func() {
		Shutdown()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Shutdown returned while a reference was outstanding")
	case <-time.After(50 * time.Millisecond):
	}
	if Acquire() != nil {
		t.Fatal("slot must already be cleared while Shutdown waits")
	}

	e.Release()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after the last Release")
	}
}

func TestShutdownHookRunsOnceBeforeWait(t *testing.T) {
	freshEngine(t)
	var calls atomic.Int32
	if err := RegisterShutdownHook(func() { calls.Add(1) }); err != nil {
		t.Fatalf("RegisterShutdownHook: %v", err)
	}
	Shutdown()
	Shutdown() // second shutdown finds no engine, hook must not rerun
	if got := calls.Load(); got != 1 {
		t.Fatalf("hook ran %d times, want 1", got)
	}
}

func TestSettingsDefaultsAndMutation(t *testing.T) {
	freshEngine(t)
	e := Acquire()
	defer e.Release()

	if e.TimeoutWindow() != 20*time.Second || e.Timeout() != 30*time.Second || e.RetryDelay() != 2*time.Second {
		t.Errorf("unexpected defaults: %+v", e.Settings())
	}
	if !e.RetryAllowed() || e.MocksEnabled() {
		t.Errorf("unexpected flag defaults: %+v", e.Settings())
	}

	e.SetTimeout(5 * time.Second)
	e.SetRetryAllowed(false)
	e.SetMocksEnabled(true)
	if e.Timeout() != 5*time.Second || e.RetryAllowed() || !e.MocksEnabled() {
		t.Errorf("mutation lost: %+v", e.Settings())
	}
}
