// Package trace
// Author: momentics <momentics@gmail.com>
//
// Structured diagnostics for the task dispatch core. Invariant breaches
// and lifecycle milestones are logged here; the engine never panics on a
// breach, it traces and continues degraded.

package trace
