// File: worker/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package worker

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/engine"
)

const defaultPoll = 250 * time.Millisecond

// Options configures a Runner for one subsystem.
type Options struct {
	// Subsystem whose pending queue the workers drain.
	Subsystem api.SubsystemID
	// Groups whose completed queues the completion pump drains.
	Groups []api.GroupID
	// PendingWorkers is the number of drain goroutines. Zero means one.
	PendingWorkers int
	// Poll bounds how long a loop sleeps between wakeup checks, so
	// shutdown is observed even without traffic. Zero means 250ms.
	Poll time.Duration
}

// Runner owns the drain goroutines for one subsystem.
type Runner struct {
	cancel context.CancelFunc
	eg     *errgroup.Group
}

// Start launches the drain loops. They run until ctx is canceled or
// Stop is called.
func Start(ctx context.Context, opts Options) *Runner {
	if opts.PendingWorkers <= 0 {
		opts.PendingWorkers = 1
	}
	if opts.Poll <= 0 {
		opts.Poll = defaultPoll
	}

	ctx, cancel := context.WithCancel(ctx)
	eg, ctx := errgroup.WithContext(ctx)

	for i := 0; i < opts.PendingWorkers; i++ {
		eg.Go(func() error {
			for {
				for {
					if _, ok := engine.DrainPending(opts.Subsystem); !ok {
						break
					}
				}
				if ctx.Err() != nil {
					return nil
				}
				if err := engine.WaitForPending(opts.Poll); err == api.ErrNotInitialized {
					// Engine is gone; pace the loop until Stop.
					time.Sleep(opts.Poll)
				}
			}
		})
	}

	for _, group := range opts.Groups {
		group := group
		eg.Go(func() error {
			for {
				for {
					if _, ok := engine.DrainCompleted(opts.Subsystem, group); !ok {
						break
					}
				}
				if ctx.Err() != nil {
					return nil
				}
				if err := engine.WaitForCompleted(opts.Subsystem, group, opts.Poll); err == api.ErrNotInitialized {
					time.Sleep(opts.Poll)
				}
			}
		})
	}

	return &Runner{cancel: cancel, eg: eg}
}

// Stop cancels the loops and waits for them to exit. Loops finish the
// drain they are in; queued work they have not reached stays queued.
func (r *Runner) Stop() {
	r.cancel()
	_ = r.eg.Wait()
}
