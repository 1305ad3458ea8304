package engine

import (
	"context"
	"sync"
)

// dispatcher tracks background work kicked off by the engine (day summaries,
// weekly analysis) so it can be awaited in tests and cancelled on shutdown.
type dispatcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newDispatcher() *dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &dispatcher{ctx: ctx, cancel: cancel}
}

func (d *dispatcher) Go(fn func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn(d.ctx)
	}()
}

// Flush blocks until all dispatched work has completed.
func (d *dispatcher) Flush() {
	d.wg.Wait()
}

// Shutdown cancels in-flight work and waits for it to drain.
func (d *dispatcher) Shutdown() {
	d.cancel()
	d.wg.Wait()
}
