package threadpool_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	srvErrors "github.com/kubev2v/multithread-server/pkg/errors"
	"github.com/kubev2v/multithread-server/pkg/threadpool"
)

var _ = Describe("Pool", func() {
	var p *threadpool.Pool

	AfterEach(func() {
		if p != nil {
			p.Close()
			p = nil
		}
	})

	Describe("New", func() {
		DescribeTable("should reject a non-positive size without spawning workers",
			func(size int) {
				base := runtime.NumGoroutine()

				pool, err := threadpool.New(size)

				Expect(err).To(HaveOccurred())
				Expect(pool).To(BeNil())
				Expect(srvErrors.IsPoolCreationError(err)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("pool size must be greater than 0"))
				Expect(runtime.NumGoroutine()).To(BeNumerically("<=", base))
			},
			Entry("zero", 0),
			Entry("negative", -1),
			Entry("very negative", -1000),
		)

		DescribeTable("should spawn exactly size live workers",
			func(size int) {
				var err error
				p, err = threadpool.New(size)
				Expect(err).NotTo(HaveOccurred())

				Expect(p.Size()).To(Equal(size))
				Expect(p.Alive()).To(Equal(size))
				Expect(p.WorkerStates()).To(HaveLen(size))
				Expect(p.State()).To(Equal(threadpool.PoolStateRunning))
			},
			Entry("one worker", 1),
			Entry("four workers", 4),
			Entry("sixteen workers", 16),
		)

		It("should reject an unknown fault policy", func() {
			pool, err := threadpool.New(2, threadpool.WithFaultPolicy("explode"))

			Expect(pool).To(BeNil())
			Expect(srvErrors.IsPoolCreationError(err)).To(BeTrue())
		})

		It("should start from the default config and leave metrics out of the debug map", func() {
			cfg := threadpool.NewConfigWithOptionsAndDefaults(
				threadpool.WithReplenish(true),
				threadpool.WithMetrics(threadpool.NewMetrics("test", "config")),
			)

			Expect(cfg.Name).To(Equal("worker_pool"))
			Expect(cfg.FaultPolicy).To(Equal(threadpool.FaultPolicyRecover))
			Expect(cfg.ReplenishInitial).To(Equal(50 * time.Millisecond))
			Expect(cfg.ReplenishMax).To(Equal(5 * time.Second))
			Expect(cfg.Replenish).To(BeTrue())
			Expect(cfg.Metrics).NotTo(BeNil())

			debugMap := cfg.DebugMap()
			Expect(debugMap).To(HaveKey("FaultPolicy"))
			Expect(debugMap).To(HaveKey("ReplenishMax"))
			Expect(debugMap).NotTo(HaveKey("Metrics"))
		})

		It("should reject an inverted replenish backoff", func() {
			pool, err := threadpool.New(2, threadpool.WithReplenishBackoff(time.Second, time.Millisecond))

			Expect(pool).To(BeNil())
			Expect(srvErrors.IsPoolCreationError(err)).To(BeTrue())
		})
	})

	Describe("Execute", func() {
		It("should run every job exactly once", func() {
			var err error
			p, err = threadpool.New(4)
			Expect(err).NotTo(HaveOccurred())

			const n = 1000
			var counter atomic.Int64
			for range n {
				Expect(p.Execute(func() { counter.Add(1) })).To(Succeed())
			}

			p.Close()
			p = nil

			Expect(counter.Load()).To(BeEquivalentTo(n))
		})

		It("should collect every id when each job appends to a shared list", func() {
			var err error
			p, err = threadpool.New(4)
			Expect(err).NotTo(HaveOccurred())

			var (
				mu  sync.Mutex
				ids []int
			)
			for i := range 4 {
				id := i
				Expect(p.Execute(func() {
					mu.Lock()
					defer mu.Unlock()
					ids = append(ids, id)
				})).To(Succeed())
			}

			p.Close()
			p = nil

			Expect(ids).To(ConsistOf(0, 1, 2, 3))
		})

		It("should preserve submission order for a single producer and a single worker", func() {
			var err error
			p, err = threadpool.New(1)
			Expect(err).NotTo(HaveOccurred())

			var order []int
			expected := make([]int, 0, 100)
			for i := range 100 {
				id := i
				expected = append(expected, id)
				Expect(p.Execute(func() { order = append(order, id) })).To(Succeed())
			}

			p.Close()
			p = nil

			Expect(order).To(Equal(expected))
		})

		It("should not block when more jobs than workers are submitted", func() {
			var err error
			p, err = threadpool.New(1)
			Expect(err).NotTo(HaveOccurred())

			gate := make(chan struct{})
			submitted := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				for range 500 {
					Expect(p.Execute(func() { <-gate })).To(Succeed())
				}
				close(submitted)
			}()

			Eventually(submitted, time.Second).Should(BeClosed())
			Eventually(p.Pending, time.Second).Should(BeNumerically(">=", 499))
			close(gate)
		})

		It("should report busy workers while jobs run", func() {
			var err error
			p, err = threadpool.New(3)
			Expect(err).NotTo(HaveOccurred())

			gate := make(chan struct{})
			for range 2 {
				Expect(p.Execute(func() { <-gate })).To(Succeed())
			}

			Eventually(p.Busy, time.Second).Should(Equal(2))
			Expect(p.WorkerStates()).To(ContainElement(threadpool.WorkerStateIdle))

			close(gate)
			Eventually(p.Busy, time.Second).Should(Equal(0))
		})

		It("should run sleep-bound jobs in parallel across workers", func() {
			var err error
			p, err = threadpool.New(2)
			Expect(err).NotTo(HaveOccurred())

			start := time.Now()
			for range 4 {
				Expect(p.Execute(func() { time.Sleep(100 * time.Millisecond) })).To(Succeed())
			}
			p.Close()
			p = nil
			elapsed := time.Since(start)

			Expect(elapsed).To(BeNumerically(">=", 200*time.Millisecond))
			Expect(elapsed).To(BeNumerically("<", 380*time.Millisecond))
		})

		It("should reject a nil job", func() {
			var err error
			p, err = threadpool.New(1)
			Expect(err).NotTo(HaveOccurred())

			err = p.Execute(nil)
			Expect(srvErrors.IsInvalidJobError(err)).To(BeTrue())
		})

		It("should return a queue closed error after Close", func() {
			var err error
			p, err = threadpool.New(1)
			Expect(err).NotTo(HaveOccurred())
			p.Close()

			err = p.Execute(func() {})
			Expect(srvErrors.IsQueueClosedError(err)).To(BeTrue())
		})
	})

	Describe("Close", func() {
		It("should wait for in-flight work to finish", func() {
			var err error
			p, err = threadpool.New(1)
			Expect(err).NotTo(HaveOccurred())

			started := make(chan struct{})
			unblock := make(chan struct{})
			Expect(p.Execute(func() {
				close(started)
				<-unblock
			})).To(Succeed())
			Eventually(started, time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				p.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, time.Second).Should(BeClosed())
			Expect(p.State()).To(Equal(threadpool.PoolStateDisposed))
		})

		It("should run a job submitted right before Close", func() {
			var err error
			p, err = threadpool.New(1)
			Expect(err).NotTo(HaveOccurred())

			gate := make(chan struct{})
			Expect(p.Execute(func() { <-gate })).To(Succeed())

			var ran atomic.Bool
			Expect(p.Execute(func() { ran.Store(true) })).To(Succeed())

			closeDone := make(chan struct{})
			go func() {
				p.Close()
				close(closeDone)
			}()

			Eventually(p.State).Should(Equal(threadpool.PoolStateDisposing))
			close(gate)
			Eventually(closeDone, time.Second).Should(BeClosed())
			Expect(ran.Load()).To(BeTrue())
		})

		It("should be safe to call more than once and concurrently", func() {
			var err error
			p, err = threadpool.New(3)
			Expect(err).NotTo(HaveOccurred())

			for range 10 {
				Expect(p.Execute(func() { time.Sleep(5 * time.Millisecond) })).To(Succeed())
			}

			var wg sync.WaitGroup
			for range 5 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					p.Close()
				}()
			}

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			Eventually(done, 2*time.Second).Should(BeClosed())

			p.Close()
			Expect(p.State()).To(Equal(threadpool.PoolStateDisposed))
			Expect(p.Alive()).To(Equal(0))
		})

		It("should not leak goroutines", func() {
			base := runtime.NumGoroutine()

			pool, err := threadpool.New(8)
			Expect(err).NotTo(HaveOccurred())
			for range 200 {
				Expect(pool.Execute(func() { time.Sleep(time.Millisecond) })).To(Succeed())
			}
			pool.Close()

			Expect(pool.WorkerStates()).To(HaveEach(threadpool.WorkerStateTerminated))
			Eventually(runtime.NumGoroutine, 2*time.Second, 50*time.Millisecond).Should(BeNumerically("<=", base+2))
		})
	})

	Describe("Job faults", func() {
		It("should keep the worker alive with the recover policy", func() {
			var err error
			p, err = threadpool.New(1, threadpool.WithFaultPolicy(threadpool.FaultPolicyRecover))
			Expect(err).NotTo(HaveOccurred())

			Expect(p.Execute(func() { panic("boom") })).To(Succeed())

			var ran atomic.Bool
			Expect(p.Execute(func() { ran.Store(true) })).To(Succeed())

			Eventually(ran.Load, time.Second).Should(BeTrue())
			Expect(p.Alive()).To(Equal(1))
		})

		It("should lose only the faulting worker with the terminate policy", func() {
			var err error
			p, err = threadpool.New(2, threadpool.WithFaultPolicy(threadpool.FaultPolicyTerminate))
			Expect(err).NotTo(HaveOccurred())

			Expect(p.Execute(func() { panic("boom") })).To(Succeed())
			Eventually(p.Alive, time.Second).Should(Equal(1))
			Expect(p.WorkerStates()).To(ContainElement(threadpool.WorkerStateTerminated))

			var counter atomic.Int32
			for range 5 {
				Expect(p.Execute(func() { counter.Add(1) })).To(Succeed())
			}

			p.Close()
			p = nil

			Expect(counter.Load()).To(BeEquivalentTo(5))
		})

		It("should replace a terminated worker when replenish is enabled", func() {
			m := threadpool.NewMetrics("test", "replenish")

			var err error
			p, err = threadpool.New(2,
				threadpool.WithFaultPolicy(threadpool.FaultPolicyTerminate),
				threadpool.WithReplenish(true),
				threadpool.WithReplenishBackoff(5*time.Millisecond, 20*time.Millisecond),
				threadpool.WithMetrics(m),
			)
			Expect(err).NotTo(HaveOccurred())

			for range 3 {
				Expect(p.Execute(func() { panic("boom") })).To(Succeed())
			}

			Eventually(func() float64 {
				return testutil.ToFloat64(m.WorkersRespawned)
			}, 2*time.Second, 10*time.Millisecond).Should(Equal(3.0))
			Expect(p.Alive()).To(Equal(2))

			var ran atomic.Bool
			Expect(p.Execute(func() { ran.Store(true) })).To(Succeed())
			Eventually(ran.Load, time.Second).Should(BeTrue())
		})

		It("should not spawn replacements once Close has started", func() {
			m := threadpool.NewMetrics("test", "closing")

			var err error
			p, err = threadpool.New(1,
				threadpool.WithFaultPolicy(threadpool.FaultPolicyTerminate),
				threadpool.WithReplenish(true),
				threadpool.WithReplenishBackoff(time.Second, 2*time.Second),
				threadpool.WithMetrics(m),
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(p.Execute(func() { panic("boom") })).To(Succeed())
			Eventually(p.Alive, time.Second).Should(Equal(0))

			// a replacement is still pending, so the pool keeps accepting work
			var ran atomic.Bool
			Expect(p.Execute(func() { ran.Store(true) })).To(Succeed())

			closeDone := make(chan struct{})
			go func() {
				p.Close()
				close(closeDone)
			}()

			Eventually(closeDone, 500*time.Millisecond).Should(BeClosed())
			Expect(p.Alive()).To(Equal(0))
			Expect(ran.Load()).To(BeFalse())
			Expect(testutil.ToFloat64(m.JobsDropped)).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.WorkersRespawned)).To(Equal(0.0))
		})

		It("should refuse jobs once every worker has terminated", func() {
			m := threadpool.NewMetrics("test", "orphaned")

			var err error
			p, err = threadpool.New(1,
				threadpool.WithFaultPolicy(threadpool.FaultPolicyTerminate),
				threadpool.WithMetrics(m),
			)
			Expect(err).NotTo(HaveOccurred())

			// Arrange: the only worker holds a faulting job while another one queues up
			gate := make(chan struct{})
			Expect(p.Execute(func() {
				<-gate
				panic("boom")
			})).To(Succeed())
			Eventually(p.Busy, time.Second).Should(Equal(1))

			var counter atomic.Int32
			Expect(p.Execute(func() { counter.Add(1) })).To(Succeed())

			// Act
			close(gate)

			// Assert
			Eventually(func() error {
				return p.Execute(func() {})
			}, time.Second).Should(Satisfy(srvErrors.IsNoWorkersError))
			Expect(p.Alive()).To(Equal(0))
			Expect(p.Pending()).To(Equal(0))
			Eventually(func() float64 {
				return testutil.ToFloat64(m.JobsDropped)
			}, time.Second).Should(BeNumerically(">=", 1))

			p.Close()
			Expect(p.State()).To(Equal(threadpool.PoolStateDisposed))
			Expect(counter.Load()).To(BeEquivalentTo(0))
			Expect(srvErrors.IsQueueClosedError(p.Execute(func() {}))).To(BeTrue())
		})

		It("should keep accepting jobs while another worker is alive", func() {
			var err error
			p, err = threadpool.New(2, threadpool.WithFaultPolicy(threadpool.FaultPolicyTerminate))
			Expect(err).NotTo(HaveOccurred())

			Expect(p.Execute(func() { panic("boom") })).To(Succeed())
			Eventually(p.Alive, time.Second).Should(Equal(1))

			var ran atomic.Bool
			Expect(p.Execute(func() { ran.Store(true) })).To(Succeed())
			Eventually(ran.Load, time.Second).Should(BeTrue())
		})
	})

	Describe("OS thread pinning", func() {
		It("should run jobs on pinned workers", func() {
			var err error
			p, err = threadpool.New(2, threadpool.WithLockOSThread(true))
			Expect(err).NotTo(HaveOccurred())

			var counter atomic.Int32
			for range 20 {
				Expect(p.Execute(func() { counter.Add(1) })).To(Succeed())
			}

			p.Close()
			p = nil

			Expect(counter.Load()).To(BeEquivalentTo(20))
		})
	})
})
