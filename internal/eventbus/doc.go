// Package eventbus
// Author: momentics <momentics@gmail.com>
//
// Subsystem-filtered task lifecycle notifications. Delivery is
// synchronous on the raising goroutine: the subscription map is
// snapshotted under the bus lock, the lock is released, then matching
// callbacks run. Callbacks therefore never hold a bus or engine lock,
// at the cost that a subscription change can miss the event raised
// immediately after it.

package eventbus
