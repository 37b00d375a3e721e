// Package concurrency
// Author: momentics <momentics@gmail.com>
//
// Wakeup primitives for the task dispatch core. The engine is a passive
// data structure; these events are how blocked drainers learn that work
// arrived without the engine owning any goroutine.

package concurrency
