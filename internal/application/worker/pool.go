package worker

import (
	"errors"
	"sync"

	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/logging"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/metrics"
)

var (
	ErrQueueFull  = errors.New("worker queue full")
	ErrPoolClosed = errors.New("worker pool closed")
)

// Pool is a bounded fire-and-forget executor. Submissions against a full
// queue are rejected, never blocked: the queue size is the backpressure
// policy. A panicking task is logged and the worker keeps running.
type Pool struct {
	name    string
	tasks   chan func()
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	logger  logging.Logger
	metrics *metrics.Counters
}

func NewPool(name string, workers, queueSize int, logger logging.Logger, counters *metrics.Counters) *Pool {
	p := &Pool{
		name:    name,
		tasks:   make(chan func(), queueSize),
		logger:  logger,
		metrics: counters,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		p.metrics.IncTasksRejected()
		return ErrQueueFull
	}
}

// Close stops accepting work and waits for queued tasks to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", map[string]any{
				"pool":  p.name,
				"panic": r,
			})
		}
	}()

	task()
}
