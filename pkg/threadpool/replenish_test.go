package threadpool

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("replenish backoff", func() {
	const initial = 10 * time.Millisecond

	var p *Pool

	BeforeEach(func() {
		var err error
		p, err = New(1,
			WithFaultPolicy(FaultPolicyTerminate),
			WithReplenish(true),
			WithReplenishBackoff(initial, time.Second),
		)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		p.Close()
	})

	retiredCount := func() int {
		p.mu.Lock()
		defer p.mu.Unlock()
		return len(p.retired)
	}

	nextDelay := func() time.Duration {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.backoff.NextBackOff()
	}

	// Given a pool whose workers faulted several times in a row
	// When a replacement worker completes a job
	// Then the next replacement waits the initial delay again
	It("should start over from the initial delay once a replacement completes a job", func() {
		// Arrange
		for i := range 3 {
			Expect(p.Execute(func() { panic("boom") })).To(Succeed())
			Eventually(retiredCount, 2*time.Second).Should(Equal(i + 1))
		}
		// randomization keeps every delay within half of the current interval
		Expect(nextDelay()).To(BeNumerically(">", initial*3/2))

		// Act
		done := make(chan struct{})
		Expect(p.Execute(func() { close(done) })).To(Succeed())
		Eventually(done, time.Second).Should(BeClosed())

		// Assert
		Eventually(nextDelay, time.Second).Should(BeNumerically("<=", initial*3/2))
	})

	It("should not reset the delay for workers that never faulted", func() {
		p.Close()

		var err error
		p, err = New(1,
			WithFaultPolicy(FaultPolicyTerminate),
			WithReplenish(true),
			WithReplenishBackoff(initial, time.Second),
		)
		Expect(err).NotTo(HaveOccurred())

		p.mu.Lock()
		p.backoff.NextBackOff()
		p.backoff.NextBackOff()
		p.backoff.NextBackOff()
		p.mu.Unlock()

		done := make(chan struct{})
		Expect(p.Execute(func() { close(done) })).To(Succeed())
		Eventually(done, time.Second).Should(BeClosed())

		// the worker is back to idle only after its post-job bookkeeping
		Eventually(p.Busy, time.Second).Should(Equal(0))
		Expect(nextDelay()).To(BeNumerically(">", initial*3/2))
	})
})
