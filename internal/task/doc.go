// Package task
// Author: momentics <momentics@gmail.com>
//
// Task records and the three structures they move through: the handle
// registry (owns storage), the pending dispatcher (per-subsystem FIFOs
// plus the executing list, one mutex) and the completed dispatcher
// (per-subsystem, per-group FIFOs, independent mutex).
//
// A record is in at most one of {pending queue, executing list, completed
// queue} at any instant. State transitions happen with the pending mutex
// held; the completed mutex nests inside it on the completion path and is
// never taken first.

package task
