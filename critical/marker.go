// File: critical/marker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package critical

import (
	"runtime"
	"sync"

	"github.com/momentics/hioload-taskq/api"
)

const (
	markCritical uint8 = 0x1
	markLocked   uint8 = 0x2
)

var (
	mu      sync.Mutex
	threads = make(map[uint64]uint8)
)

// SetTimeCritical marks or unmarks the calling thread as time critical.
// Once LockTimeCritical has run on the thread, any change away from the
// current value fails with api.ErrAccessDenied; re-asserting the current
// value stays a no-op. Pins the calling goroutine to its OS thread.
func SetTimeCritical(isCritical bool) error {
	runtime.LockOSThread()
	id := currentThreadID()

	mu.Lock()
	defer mu.Unlock()

	current := threads[id]
	value := uint8(0)
	if isCritical {
		value = markCritical
	}
	if current&markLocked != 0 {
		value |= markLocked
		if value != current {
			return api.ErrAccessDenied
		}
	}
	threads[id] = value
	return nil
}

// VerifyNotTimeCritical returns api.ErrTimeCriticalThread when called
// from a thread marked time critical, nil otherwise.
func VerifyNotTimeCritical() error {
	id := currentThreadID()

	mu.Lock()
	state := threads[id]
	mu.Unlock()

	if state&markCritical == 0 {
		return nil
	}
	return api.ErrTimeCriticalThread
}

// LockTimeCritical freezes the calling thread's marker for the thread's
// lifetime. Idempotent. Pins the calling goroutine to its OS thread.
func LockTimeCritical() {
	runtime.LockOSThread()
	id := currentThreadID()

	mu.Lock()
	threads[id] |= markLocked
	mu.Unlock()
}
