//go:build windows
// +build windows

// File: critical/threadid_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package critical

import "golang.org/x/sys/windows"

// currentThreadID returns the Win32 thread id of the calling thread.
// Callers pin the goroutine first, so the id is stable.
func currentThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
