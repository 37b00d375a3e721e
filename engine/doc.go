// Package engine
// Author: momentics <momentics@gmail.com>
//
// Process-global task dispatch engine. The engine is a passive data
// structure: producers submit from any goroutine, caller-owned worker
// goroutines drain pending work per subsystem, and caller-owned
// completion goroutines drain finished work per (subsystem, group).
//
// Lifecycle: Initialize constructs the singleton once (first CAS wins,
// losers are discarded), Acquire hands out counted references, Shutdown
// clears the global slot and waits for every outstanding reference to
// drain before returning. A collaborator whose execute callback
// completes asynchronously holds its own acquired reference across the
// in-flight work so Shutdown quiesces behind it.
//
// Lock order, outermost first: registry, pending (queues + executing
// list), completed. The event-bus lock stands alone and is never held
// while callbacks run.

package engine
