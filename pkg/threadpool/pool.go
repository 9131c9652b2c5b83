package threadpool

import (
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/multithread-server/pkg/errors"
)

// PoolState is the disposal state of a pool.
type PoolState string

const (
	PoolStateRunning   PoolState = "running"
	PoolStateDisposing PoolState = "disposing"
	PoolStateDisposed  PoolState = "disposed"
)

type Pool struct {
	size  int
	cfg   Config
	queue *jobQueue

	mu      sync.Mutex
	state   PoolState
	workers []*worker
	retired []*worker
	// live counts workers that can still take a job, including dead ones
	// waiting for a replacement.
	live    int
	backoff *backoff.ExponentialBackOff
	// closing is closed when disposal begins, disposed when it ends.
	closing  chan struct{}
	disposed chan struct{}
}

// New creates a pool and spawns exactly size workers sharing one job queue.
// A non-positive size fails with a PoolCreationError and spawns nothing.
func New(size int, opts ...ConfigOption) (*Pool, error) {
	if size <= 0 {
		return nil, srvErrors.NewPoolCreationError("pool size must be greater than 0")
	}

	cfg := NewConfigWithOptionsAndDefaults(opts...)

	if _, err := ParseFaultPolicy(string(cfg.FaultPolicy)); err != nil {
		return nil, srvErrors.NewPoolCreationError(err.Error())
	}
	if cfg.ReplenishInitial <= 0 || cfg.ReplenishMax < cfg.ReplenishInitial {
		return nil, srvErrors.NewPoolCreationError(
			fmt.Sprintf("invalid replenish backoff: initial %s, max %s", cfg.ReplenishInitial, cfg.ReplenishMax))
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.ReplenishInitial
	b.MaxInterval = cfg.ReplenishMax
	b.Reset()

	p := &Pool{
		size:     size,
		cfg:      *cfg,
		queue:    newJobQueue(cfg.Metrics),
		state:    PoolStateRunning,
		workers:  make([]*worker, 0, size),
		live:     size,
		backoff:  b,
		closing:  make(chan struct{}),
		disposed: make(chan struct{}),
	}

	for id := range size {
		w := newWorker(id, p)
		p.workers = append(p.workers, w)
		w.start()
	}

	p.logger().Infow("worker pool started", "size", size, "config", cfg.DebugMap())

	return p, nil
}

// Execute enqueues job for asynchronous execution and returns immediately.
// It fails with a QueueClosedError once Close has been called, and with a
// NoWorkersError once every worker has terminated without a replacement.
func (p *Pool) Execute(job Job) error {
	if job == nil {
		return srvErrors.NewInvalidJobError()
	}

	if err := p.queue.send(job); err != nil {
		return err
	}
	p.cfg.Metrics.jobSubmitted()

	return nil
}

// Close closes the queue and joins every worker. Jobs already queued still
// run before their worker exits, unless every worker terminates on a fault
// first; those jobs are logged and counted as dropped. Close is safe to call
// more than once; later calls block until the first one has finished.
//
// Close must not be called from inside a job: the calling worker would wait for itself.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.state != PoolStateRunning {
		p.mu.Unlock()
		<-p.disposed
		return
	}
	p.state = PoolStateDisposing
	close(p.closing)
	toJoin := make([]*worker, 0, len(p.workers)+len(p.retired))
	toJoin = append(toJoin, p.workers...)
	toJoin = append(toJoin, p.retired...)
	p.mu.Unlock()

	log := p.logger()
	log.Infow("shutting down worker pool", "workers", len(toJoin), "pending", p.queue.len())

	p.queue.close()

	for _, w := range toJoin {
		log.Debugw("shutting down worker", "worker", w.id)
		w.join()
	}

	// only possible when every worker terminated on a fault while draining
	if dropped := p.queue.abandon(srvErrors.NewQueueClosedError()); dropped > 0 {
		p.cfg.Metrics.jobsDropped(dropped)
		log.Errorw("jobs left unexecuted after every worker terminated", "dropped", dropped)
	}

	p.mu.Lock()
	p.state = PoolStateDisposed
	p.mu.Unlock()
	close(p.disposed)

	log.Info("worker pool stopped")
}

// workerExited runs on the exiting worker's goroutine before that worker
// reports done, so Close either joins a replacement or sees none at all.
// When the last worker goes away while the pool is running, the queue is
// abandoned: queued jobs are dropped and Execute fails from then on.
func (p *Pool) workerExited(w *worker, faulted bool) {
	if faulted && p.replenish(w) {
		return
	}

	p.mu.Lock()
	p.live--
	orphaned := p.live == 0 && p.state == PoolStateRunning
	p.mu.Unlock()

	if !orphaned {
		return
	}

	dropped := p.queue.abandon(srvErrors.NewNoWorkersError())
	p.cfg.Metrics.jobsDropped(dropped)
	p.logger().Errorw("every worker has terminated, pool no longer accepts jobs", "dropped", dropped)
}

// replenish replaces a worker terminated by a job fault and reports whether
// a replacement was started.
func (p *Pool) replenish(dead *worker) bool {
	if !p.cfg.Replenish {
		return false
	}

	p.mu.Lock()
	wait := p.backoff.NextBackOff()
	p.mu.Unlock()
	if wait == backoff.Stop {
		wait = p.cfg.ReplenishMax
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-p.closing:
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != PoolStateRunning {
		return false
	}

	replacement := newWorker(dead.id, p)
	replacement.replacement = true
	p.workers[dead.id] = replacement
	p.retired = append(p.retired, dead)
	replacement.start()

	p.cfg.Metrics.workerRespawned()
	p.logger().Infow("replacement worker spawned", "worker", dead.id, "after", wait)

	return true
}

// replacementHealthy restarts the replacement delay from its initial value
// once a replacement worker has completed a job.
func (p *Pool) replacementHealthy(w *worker) {
	p.mu.Lock()
	p.backoff.Reset()
	p.mu.Unlock()

	p.logger().Debugw("replacement worker completed a job, backoff reset", "worker", w.id)
}

func (p *Pool) Size() int {
	return p.size
}

// Alive returns the number of workers that have not terminated.
func (p *Pool) Alive() int {
	return p.count(func(s WorkerState) bool { return s != WorkerStateTerminated })
}

// Busy returns the number of workers currently running a job.
func (p *Pool) Busy() int {
	return p.count(func(s WorkerState) bool { return s == WorkerStateRunning })
}

// Pending returns the number of queued jobs not yet picked up by a worker.
func (p *Pool) Pending() int {
	return p.queue.len()
}

func (p *Pool) State() PoolState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// WorkerStates returns the state of each worker slot, indexed by worker id.
func (p *Pool) WorkerStates() []WorkerState {
	p.mu.Lock()
	defer p.mu.Unlock()

	states := make([]WorkerState, 0, len(p.workers))
	for _, w := range p.workers {
		states = append(states, w.State())
	}
	return states
}

func (p *Pool) count(match func(WorkerState) bool) int {
	n := 0
	for _, s := range p.WorkerStates() {
		if match(s) {
			n++
		}
	}
	return n
}

func (p *Pool) logger() *zap.SugaredLogger {
	return zap.S().Named(p.cfg.Name)
}
