package threadpool

import (
	"sync"

	srvErrors "github.com/kubev2v/multithread-server/pkg/errors"
)

// Job is a one-shot unit of work run by exactly one worker.
type Job func()

type fifo[T any] []T

func (f *fifo[T]) Len() int { return len(*f) }

func (f *fifo[T]) Pop() T {
	old := *f
	x := old[0]
	var zero T
	old[0] = zero
	*f = old[1:]
	return x
}

func (f *fifo[T]) Push(t T) {
	*f = append(*f, t)
}

// jobQueue is an unbounded multi-producer, multi-consumer job queue.
// Consumers share the lock: only one of them dequeues at a time.
type jobQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   fifo[Job]
	closed bool
	// sendErr is what send reports once the queue is closed.
	sendErr error
	metrics *Metrics
}

func newJobQueue(m *Metrics) *jobQueue {
	q := &jobQueue{metrics: m}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *jobQueue) send(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return q.sendErr
	}

	q.jobs.Push(job)
	q.metrics.setQueueDepth(q.jobs.Len())
	q.cond.Signal()

	return nil
}

// receive blocks until a job is available. It returns false only once the
// queue is closed and drained.
func (q *jobQueue) receive() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.jobs.Len() == 0 && !q.closed {
		q.cond.Wait()
	}

	if q.jobs.Len() == 0 {
		return nil, false
	}

	job := q.jobs.Pop()
	q.metrics.setQueueDepth(q.jobs.Len())

	return job, true
}

// close stops accepting jobs. Queued jobs are still handed out until drained.
func (q *jobQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sendErr = srvErrors.NewQueueClosedError()
	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// abandon stops accepting jobs with err and discards everything still queued.
// It returns the number of discarded jobs.
func (q *jobQueue) abandon(err error) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	dropped := q.jobs.Len()
	q.jobs = nil
	q.sendErr = err
	q.closed = true
	q.metrics.setQueueDepth(0)
	q.cond.Broadcast()

	return dropped
}

func (q *jobQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.jobs.Len()
}
