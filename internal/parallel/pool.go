// Package parallel provides the worker pool behind the renderer's
// data-parallel stages.
//
// Each pipeline stage is a parallel-for over an index range (nodes, tiles,
// or tiles-of-pixels). ParallelFor returns only when every chunk has run to
// completion, which is what gives the renderer its full barrier between
// stages: no sort task starts before binning is done, no paint task before
// sorting is done.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// task is one scheduled chunk of a parallel-for.
type task struct {
	start, end int
	fn         func(start, end int)
	wg         *sync.WaitGroup
}

// Pool is a fixed set of worker goroutines executing range chunks.
//
// Thread safety: Pool is safe for concurrent use. Distinct ParallelFor calls
// may interleave their chunks; a single call always observes barrier
// semantics for its own work.
type Pool struct {
	workers int
	tasks   chan task
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the given number of workers.
// If workers <= 0, GOMAXPROCS is used. Workers start immediately.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan task, workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Drain queued chunks so no ParallelFor caller blocks forever.
			for {
				select {
				case t := <-p.tasks:
					t.run()
				default:
					return
				}
			}
		case t := <-p.tasks:
			t.run()
		}
	}
}

func (t task) run() {
	defer t.wg.Done()
	t.fn(t.start, t.end)
}

// ParallelFor runs fn over [0, n) split into chunks and blocks until every
// chunk has completed. Chunk size is chosen so each worker sees several
// chunks, which evens out load when some ranges are more expensive than
// others (a tile full of nodes vs. an empty one).
//
// If the pool has been closed, fn runs inline on the caller.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if !p.running.Load() || p.workers == 1 {
		fn(0, n)
		return
	}

	chunk := n / (p.workers * 4)
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		t := task{start: start, end: end, fn: fn, wg: &wg}
		select {
		case p.tasks <- t:
		case <-p.done:
			// Pool closing under us; run the chunk inline.
			t.run()
		}
	}
	wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Close stops the workers after draining queued work.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
	// Pick up anything that slipped into the queue while workers exited.
	for {
		select {
		case t := <-p.tasks:
			t.run()
		default:
			return
		}
	}
}
