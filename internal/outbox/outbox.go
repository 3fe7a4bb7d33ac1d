// Package outbox runs best-effort side effects (notifications, audit entries,
// emails) after the primary write has been committed. A failed task is
// logged and counted, never reported to the caller.
package outbox

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"recruit-api/internal/metrics"
)

const taskTimeout = 10 * time.Second

// Task is one side effect.
type Task struct {
	Kind string
	Run  func(ctx context.Context) error
}

// Dispatcher executes tasks either on a worker pool or inline.
type Dispatcher struct {
	queue   chan Task
	metrics *metrics.Metrics
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New starts workers goroutines reading from a queue of queueSize. With
// workers <= 0 every task runs inline inside Enqueue.
func New(workers, queueSize int, m *metrics.Metrics) *Dispatcher {
	d := &Dispatcher{metrics: m}
	if workers <= 0 {
		return d
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	d.queue = make(chan Task, queueSize)
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	log.Printf("Side-effect dispatcher started with %d workers", workers)
	return d
}

// NewInline returns a dispatcher that runs tasks synchronously.
func NewInline(m *metrics.Metrics) *Dispatcher {
	return New(0, 0, m)
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for t := range d.queue {
		d.run(t)
	}
}

func (d *Dispatcher) run(t Task) {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return t.Run(ctx)
	}()
	d.metrics.SideEffect(t.Kind, err)
	if err != nil {
		log.Printf("Side effect %s failed: %v", t.Kind, err)
	}
}

// Enqueue schedules t. When the queue is full, or the dispatcher is inline
// or closed, the task runs on the calling goroutine.
func (d *Dispatcher) Enqueue(t Task) {
	d.mu.RLock()
	if d.queue != nil && !d.closed {
		select {
		case d.queue <- t:
			d.mu.RUnlock()
			return
		default:
			log.Printf("Side-effect queue full, running %s inline", t.Kind)
		}
	}
	d.mu.RUnlock()
	d.run(t)
}

// Close stops accepting queued work and waits for pending tasks.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed || d.queue == nil {
		d.closed = true
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
	log.Println("Side-effect dispatcher drained")
}
