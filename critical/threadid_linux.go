//go:build linux
// +build linux

// File: critical/threadid_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package critical

import "golang.org/x/sys/unix"

// currentThreadID returns the kernel thread id of the calling thread.
// Callers pin the goroutine first, so the id is stable.
func currentThreadID() uint64 {
	return uint64(unix.Gettid())
}
