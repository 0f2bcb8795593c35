package season

import (
	"context"
	"sync"

	"github.com/gridsim/gridiron/pkg/metrics"
)

// pool is a bounded worker pool for game simulation tasks. Tasks are
// closures that write their result into a caller-owned slot, so the pool
// itself never orders results; the caller finalizes in schedule order.
//
// Closing the pool drains the queue: every submitted task runs (or
// observes a cancelled context and returns early) before close returns.
type pool struct {
	ctx   context.Context
	tasks chan func(context.Context)
	wg    sync.WaitGroup
}

func newPool(ctx context.Context, workers, queue int) *pool {
	if workers < 1 {
		workers = 1
	}
	p := &pool{
		ctx:   ctx,
		tasks: make(chan func(context.Context), queue),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *pool) worker() {
	defer p.wg.Done()
	metrics.IncWorkerActive()
	defer metrics.DecWorkerActive()
	for task := range p.tasks {
		task(p.ctx)
	}
}

// submit queues one task. The queue is sized for the full schedule, so
// submission does not block.
func (p *pool) submit(task func(context.Context)) {
	p.tasks <- task
}

// close stops intake and waits for every queued task to finish.
func (p *pool) close() {
	close(p.tasks)
	p.wg.Wait()
}
