// Package critical
// Author: momentics <momentics@gmail.com>
//
// Time-critical thread marking. A host marks the OS threads it reserves
// for latency-sensitive work; APIs that may block call
// VerifyNotTimeCritical and refuse to run there.
//
// Go expresses "the current thread" through an OS-thread-locked
// goroutine: SetTimeCritical and LockTimeCritical pin the calling
// goroutine with runtime.LockOSThread so the marker stays attached to
// one thread, the way a TLS cell would. The marker is strictly
// thread-local; there is no cross-thread query. Hosts mark a handful of
// long-lived threads, so entries are never reclaimed.

package critical
