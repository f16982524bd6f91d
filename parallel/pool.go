// Package parallel runs independent tasks, such as converting separate
// files, on a fixed number of workers.
package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

type (
	Task       func() error
	SubmitFunc func(Task)
	// WaitFunc closes the pool, waits for every submitted task and returns
	// their errors joined.
	WaitFunc func() error
)

type Pool struct {
	wg     sync.WaitGroup
	mu     sync.Mutex
	errs   []error
	done   atomic.Uint64
	Submit SubmitFunc
	Wait   WaitFunc
}

// Start creates a pool of numWorkers workers, GOMAXPROCS when numWorkers is
// below 1. With a single worker tasks run synchronously inside Submit.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{}
	pool.Submit = pool.run
	pool.Wait = pool.collect

	if numWorkers > 1 {
		workChan := make(chan Task, numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for t := range workChan {
					pool.run(t)
				}
			})
		}

		pool.Submit = func(t Task) {
			workChan <- t
		}
		closeOnce := sync.OnceFunc(func() { close(workChan) })
		pool.Wait = func() error {
			closeOnce()
			pool.wg.Wait()
			return pool.collect()
		}
	}

	return pool
}

// Done is the number of tasks that completed without error.
func (p *Pool) Done() uint64 {
	return p.done.Load()
}

// Failed is the number of tasks that returned an error.
func (p *Pool) Failed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.errs)
}

func (p *Pool) run(t Task) {
	if err := t(); err != nil {
		p.mu.Lock()
		p.errs = append(p.errs, err)
		p.mu.Unlock()
		return
	}
	p.done.Add(1)
}

func (p *Pool) collect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}
