package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned by Rows after Close.
var ErrPoolClosed = errors.New("parallel: worker pool closed")

// bandsPerWorker controls how finely rows are split. More bands balance
// uneven rows better at the cost of more queue traffic.
const bandsPerWorker = 4

// Rows calls fn for every row in [0, rows), spreading contiguous bands of
// rows across the pool.
//
// The first error returned by fn is returned and stops remaining rows from
// starting; rows already running finish. Cancelling ctx has the same effect
// and returns ctx.Err(). Rows are not visited in any particular order.
func (p *WorkerPool) Rows(ctx context.Context, rows int, fn func(y int) error) error {
	if !p.running.Load() {
		return ErrPoolClosed
	}
	if rows <= 0 {
		return ctx.Err()
	}

	var (
		once     sync.Once
		firstErr error
		stopped  atomic.Bool
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			stopped.Store(true)
		})
	}

	bands := p.workers * bandsPerWorker
	if bands > rows {
		bands = rows
	}
	size := (rows + bands - 1) / bands

	work := make([]func(), 0, bands)
	for start := 0; start < rows; start += size {
		end := min(start+size, rows)
		work = append(work, func() {
			for y := start; y < end; y++ {
				if stopped.Load() {
					return
				}
				if err := ctx.Err(); err != nil {
					fail(err)
					return
				}
				if err := fn(y); err != nil {
					fail(err)
					return
				}
			}
		})
	}

	p.ExecuteAll(work)

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
