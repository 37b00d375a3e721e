// Package worker
// Author: momentics <momentics@gmail.com>
//
// Caller-side drain loops. The engine owns no goroutines; every
// consumer ends up writing the same two loops (drain pending work on
// worker goroutines, pump completions back per group), so this package
// provides them once.

package worker
