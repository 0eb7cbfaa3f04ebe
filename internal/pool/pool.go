package pool

import (
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClosed is returned by Execute after the pool was closed.
var ErrClosed = errors.New("worker pool is closed")

// Job is a unit of work executed by a worker.
type Job interface {
	Run()
}

// JobFunc is an adapter allowing ordinary functions to be used as jobs.
type JobFunc func()

func (f JobFunc) Run() {
	f()
}

// Pool is a fixed set of workers consuming jobs from a shared FIFO queue. Submission
// never blocks, as the queue is unbounded. Jobs are executed exactly once each, by
// whichever worker takes them first.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	jobs    queue[Job]
	closed  bool
	size    int
	workers sync.WaitGroup
}

// New spawns max(minSize, GOMAXPROCS-1) workers, but never less than one.
func New(minSize int) *Pool {
	size := max(minSize, runtime.GOMAXPROCS(0)-1, 1)
	p := &Pool{
		jobs: newQueue[Job](size),
		size: size,
	}
	p.cond = sync.NewCond(&p.mu)

	p.workers.Add(p.size)
	for i := 0; i < p.size; i++ {
		go p.worker(i)
	}

	return p
}

// Execute enqueues the job. It returns ErrClosed if the pool doesn't accept jobs anymore.
func (p *Pool) Execute(job Job) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}

	p.jobs.Push(job)
	p.mu.Unlock()
	p.cond.Signal()

	return nil
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Close stops accepting new jobs. Jobs already enqueued are still executed, after which
// the workers exit.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Wait blocks until all the workers have exited. It must be called after Close.
func (p *Pool) Wait() {
	p.workers.Wait()
}

func (p *Pool) worker(id int) {
	defer p.workers.Done()

	for {
		job, ok := p.next()
		if !ok {
			return
		}

		p.run(id, job)
	}
}

func (p *Pool) next() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.jobs.Len() == 0 {
		if p.closed {
			return nil, false
		}

		p.cond.Wait()
	}

	return p.jobs.Pop()
}

func (p *Pool) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().
				Int("worker", id).
				Interface("panic", r).
				Msg("job panicked")
		}
	}()

	job.Run()
}
