package critical

import (
	"runtime"
	"testing"

	"github.com/momentics/hioload-taskq/api"
)

// Each test runs on a dedicated locked OS thread so markers from one
// test never leak into another.
func onFreshThread(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		// Never unlock: the thread dies with the goroutine, taking its
		// marker entry out of play.
		defer close(done)
		fn()
	}()
	<-done
}

func TestSetIdempotent(t *testing.T) {
	onFreshThread(t, func() {
		if err := SetTimeCritical(true); err != nil {
			t.Errorf("first set: %v", err)
		}
		if err := SetTimeCritical(true); err != nil {
			t.Errorf("repeated set: %v", err)
		}
		if err := VerifyNotTimeCritical(); err != api.ErrTimeCriticalThread {
			t.Errorf("verify = %v, want ErrTimeCriticalThread", err)
		}
	})
}

func TestLockDeniesChange(t *testing.T) {
	onFreshThread(t, func() {
		if err := SetTimeCritical(true); err != nil {
			t.Fatalf("set: %v", err)
		}
		LockTimeCritical()
		LockTimeCritical() // idempotent
		if err := SetTimeCritical(false); err != api.ErrAccessDenied {
			t.Errorf("change after lock = %v, want ErrAccessDenied", err)
		}
		// State is unchanged: still critical.
		if err := VerifyNotTimeCritical(); err != api.ErrTimeCriticalThread {
			t.Errorf("verify after denied change = %v", err)
		}
		// Re-asserting the locked value succeeds.
		if err := SetTimeCritical(true); err != nil {
			t.Errorf("matching set after lock = %v", err)
		}
	})
}

func TestLockWithoutMarkFreezesNormal(t *testing.T) {
	onFreshThread(t, func() {
		LockTimeCritical()
		if err := SetTimeCritical(true); err != api.ErrAccessDenied {
			t.Errorf("set after lock = %v, want ErrAccessDenied", err)
		}
		if err := VerifyNotTimeCritical(); err != nil {
			t.Errorf("verify = %v, want nil", err)
		}
		if err := SetTimeCritical(false); err != nil {
			t.Errorf("matching set = %v", err)
		}
	})
}

func TestMarkerIsThreadLocal(t *testing.T) {
	marked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		if err := SetTimeCritical(true); err != nil {
			t.Errorf("set: %v", err)
		}
		close(marked)
		<-release
	}()
	<-marked
	onFreshThread(t, func() {
		if err := VerifyNotTimeCritical(); err != nil {
			t.Errorf("unmarked thread: verify = %v, want nil", err)
		}
	})
	close(release)
}
