package threadpool

import (
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	srvErrors "github.com/kubev2v/multithread-server/pkg/errors"
)

// WorkerState is the lifecycle state of a single worker.
type WorkerState string

const (
	// WorkerStateIdle - waiting on the queue for the next job
	WorkerStateIdle WorkerState = "idle"
	// WorkerStateRunning - executing a job
	WorkerStateRunning WorkerState = "running"
	// WorkerStateTerminated - goroutine returned, absorbing
	WorkerStateTerminated WorkerState = "terminated"
)

type worker struct {
	id    int
	pool  *Pool
	state atomic.Value
	done  chan struct{}
	// replacement is set for workers spawned after a fault. healthy is
	// flipped after the first job such a worker completes.
	replacement bool
	healthy     bool
}

func newWorker(id int, p *Pool) *worker {
	w := &worker{
		id:   id,
		pool: p,
		done: make(chan struct{}),
	}
	w.state.Store(WorkerStateIdle)
	return w
}

func (w *worker) State() WorkerState {
	return w.state.Load().(WorkerState)
}

func (w *worker) start() {
	w.pool.cfg.Metrics.workerStarted()
	go w.run()
}

// join blocks until the worker goroutine has returned.
func (w *worker) join() {
	<-w.done
}

func (w *worker) run() {
	if w.pool.cfg.LockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	log := w.pool.logger()
	faulted := false

	defer func() {
		w.state.Store(WorkerStateTerminated)
		w.pool.cfg.Metrics.workerStopped()
		log.Debugw("worker terminated", "worker", w.id, "faulted", faulted)

		w.pool.workerExited(w, faulted)
		close(w.done)
	}()

	log.Debugw("worker started", "worker", w.id)

	for {
		job, ok := w.pool.queue.receive()
		if !ok {
			log.Debugw("queue closed, worker exiting", "worker", w.id)
			return
		}

		w.state.Store(WorkerStateRunning)
		log.Debugw("worker got a job; executing", "worker", w.id)

		fault := w.execute(job)
		if fault != nil && w.pool.cfg.FaultPolicy == FaultPolicyTerminate {
			faulted = true
			return
		}
		if fault == nil && w.replacement && !w.healthy {
			w.healthy = true
			w.pool.replacementHealthy(w)
		}

		w.state.Store(WorkerStateIdle)
	}
}

// execute runs job to completion and reports a recovered panic, if any.
func (w *worker) execute(job Job) (fault *srvErrors.JobPanicError) {
	m := w.pool.cfg.Metrics
	start := time.Now()
	m.jobStarted()

	defer func() {
		if rec := recover(); rec != nil {
			fault = srvErrors.NewJobPanicError(w.id, rec)
			w.pool.logger().Errorw("job panicked",
				"worker", w.id,
				"error", fault,
				"policy", w.pool.cfg.FaultPolicy,
				"stack", string(debug.Stack()),
			)
		}
		m.jobFinished(time.Since(start), fault != nil)
	}()

	job()

	return nil
}
