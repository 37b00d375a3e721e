// File: internal/eventbus/bus.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package eventbus

import (
	"sync"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/trace"
)

type subscription struct {
	subsystem api.SubsystemID
	fn        api.EventFunc
	ctx       any
}

// Bus is the task-event subscription list. Its lock is independent of
// every engine lock and is only ever taken alone.
type Bus struct {
	mu   sync.Mutex
	next api.SubscriptionHandle
	subs map[api.SubscriptionHandle]subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[api.SubscriptionHandle]subscription)}
}

// Subscribe registers fn for every lifecycle event of tasks on the given
// subsystem. The returned handle is never reused.
func (b *Bus) Subscribe(subsystem api.SubsystemID, fn api.EventFunc, ctx any) api.SubscriptionHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	h := b.next
	b.subs[h] = subscription{subsystem: subsystem, fn: fn, ctx: ctx}
	return h
}

// Unsubscribe removes a subscription. Unknown handles are a traced no-op.
func (b *Bus) Unsubscribe(h api.SubscriptionHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[h]; !ok {
		trace.Error("unsubscribe of unknown handle: handle=%d", h)
		return
	}
	delete(b.subs, h)
}

// Raise delivers event to every subscriber of the task's subsystem on
// the calling goroutine. The snapshot is consistent; delivery is
// best-effort with respect to concurrent subscription changes.
func (b *Bus) Raise(subsystem api.SubsystemID, id api.TaskID, event api.TaskEvent) {
	b.mu.Lock()
	snapshot := make([]subscription, 0, len(b.subs))
	for _, s := range b.subs {
		snapshot = append(snapshot, s)
	}
	b.mu.Unlock()

	for _, s := range snapshot {
		if s.fn != nil && s.subsystem == subsystem {
			s.fn(s.ctx, event, id)
		}
	}
}

// Len reports the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
