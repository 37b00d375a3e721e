package task

import (
	"sync"
	"testing"

	"github.com/momentics/hioload-taskq/api"
)

func TestAllocateIDMonotone(t *testing.T) {
	r := NewRegistry()
	var prev api.TaskID
	for i := 0; i < 1000; i++ {
		id := r.AllocateID()
		if id <= prev {
			t.Fatalf("id %d not greater than %d", id, prev)
		}
		prev = id
	}
}

func TestAllocateIDConcurrentUnique(t *testing.T) {
	r := NewRegistry()
	const goroutines, per = 8, 500
	var mu sync.Mutex
	seen := make(map[api.TaskID]bool)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				id := r.AllocateID()
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate id %d", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if len(seen) != goroutines*per {
		t.Fatalf("got %d unique ids, want %d", len(seen), goroutines*per)
	}
}

func TestStoreLookupRemove(t *testing.T) {
	r := NewRegistry()
	rec := NewRecord(r.AllocateID(), 7, 3)
	if err := r.Store(rec); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := r.Store(rec); err != api.ErrTaskExists {
		t.Fatalf("duplicate Store err = %v, want ErrTaskExists", err)
	}
	if got := r.Lookup(rec.ID); got != rec {
		t.Fatal("Lookup returned wrong record")
	}
	if got := r.Lookup(rec.ID + 100); got != nil {
		t.Fatal("Lookup of unknown id must be nil")
	}
	r.Remove(rec.ID)
	if r.Lookup(rec.ID) != nil {
		t.Fatal("record still present after Remove")
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d after Remove", r.Len())
	}
	r.Remove(rec.ID) // no-op
}
