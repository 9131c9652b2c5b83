// Package threadpool implements a fixed-size worker pool for fire-and-forget jobs.
//
// The pool owns N persistent workers that pull jobs from a single shared,
// unbounded queue. Work is submitted via Execute, which never waits for the
// job to run. Close disposes the pool: it closes the queue and joins every
// worker after the queue has drained.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                              Pool                                   │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   Worker 0   │      │   Worker 1   │      │  Worker N-1  │       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲                     ▲                     ▲               │
//	│         │   receive() (one worker at a time holds the lock)         │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                               │                                     │
//	│  ┌────────────────────────────┴────────────────────────────┐        │
//	│  │                 Job Queue (unbounded FIFO)              │        │
//	│  │  [job1] [job2] [job3] ...                               │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                               │                                     │
//	│                         Execute(job)                                │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Core Components
//
// Pool:
//   - Spawns exactly size workers at construction (size must be > 0)
//   - Holds the send side of the queue until Close
//   - Joins every worker exactly once on Close
//
// Job Queue:
//   - Unbounded: Execute never blocks on capacity
//   - Every job is delivered to exactly one worker
//   - Closing is one-time; receive reports end-of-stream only when closed AND empty
//
// Worker:
//   - Dequeues one job, runs it outside the queue lock, loops
//   - Runs at most one job at a time
//   - Recovers job panics and applies the pool's FaultPolicy
//
// # Worker Lifecycle
//
//	┌───────────┐   job dequeued     ┌───────────┐
//	│   Idle    │ ─────────────────► │  Running  │
//	│           │ ◄───────────────── │           │
//	└─────┬─────┘   job returned     └─────┬─────┘
//	      │                                │
//	      │ end-of-stream                  │ panic + FaultPolicyTerminate
//	      ▼                                ▼
//	┌──────────────────────────────────────────────┐
//	│                 Terminated                   │
//	└──────────────────────────────────────────────┘
//
// # Fault Policy
//
// A panic escaping a goroutine would crash the whole process, so every job
// runs behind a recover. What happens after the panic is configurable:
//
//   - FaultPolicyRecover (default): the panic is logged and counted, the
//     worker keeps serving jobs.
//   - FaultPolicyTerminate: the panic is logged and counted, the worker exits.
//     The pool keeps running with one worker less.
//
// With WithReplenish(true), a worker terminated by a fault is replaced by a new
// worker with the same id after an exponential backoff delay. The delay starts
// over once a replacement completes a job. No replacement is spawned once Close
// has been called.
//
// When the last worker terminates and no replacement is coming, the pool stops
// accepting work: Execute fails with a NoWorkersError, and jobs still queued at
// that moment are logged and counted as dropped.
//
// # Disposal
//
// Close performs the shutdown sequence:
//
//  1. Running → Disposing (only the first call proceeds, later calls wait)
//  2. The queue is closed; Execute now fails with a QueueClosedError
//  3. Workers drain the remaining jobs, then observe end-of-stream
//  4. Every worker is joined in creation order
//  5. Disposing → Disposed
//
// No job accepted by Execute before Close is dropped while a worker is left to
// run it. Close must not be called from inside a job.
//
// # Usage Example
//
//	pool, err := threadpool.New(4,
//	    threadpool.WithFaultPolicy(threadpool.FaultPolicyRecover),
//	)
//	if err != nil {
//	    // srvErrors.IsPoolCreationError(err) == true
//	    return err
//	}
//	defer pool.Close()
//
//	results := make(chan int, 1)
//	if err := pool.Execute(func() {
//	    results <- compute()
//	}); err != nil {
//	    return err
//	}
//	fmt.Println(<-results)
package threadpool
