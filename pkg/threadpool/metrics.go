package threadpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by a pool.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	JobsSubmitted    prometheus.Counter
	JobsCompleted    prometheus.Counter
	JobsPanicked     prometheus.Counter
	JobsDropped      prometheus.Counter
	WorkersRespawned prometheus.Counter
	WorkersAlive     prometheus.Gauge
	WorkersBusy      prometheus.Gauge
	QueueDepth       prometheus.Gauge
	JobDuration      prometheus.Histogram
}

func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		JobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_submitted_total",
			Help:      "Total number of jobs accepted by the pool",
		}),
		JobsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_completed_total",
			Help:      "Total number of jobs that returned normally",
		}),
		JobsPanicked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_panicked_total",
			Help:      "Total number of jobs that panicked",
		}),
		JobsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_dropped_total",
			Help:      "Total number of accepted jobs discarded because no worker was left to run them",
		}),
		WorkersRespawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workers_respawned_total",
			Help:      "Total number of replacement workers spawned after a fault",
		}),
		WorkersAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workers_alive",
			Help:      "Current number of worker goroutines that have not terminated",
		}),
		WorkersBusy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workers_busy",
			Help:      "Current number of workers running a job",
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "queue_depth",
			Help:      "Current number of jobs waiting for a worker",
		}),
		JobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "job_duration_seconds",
			Help:      "Histogram of job execution time",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Register registers every collector with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.JobsSubmitted,
		m.JobsCompleted,
		m.JobsPanicked,
		m.JobsDropped,
		m.WorkersRespawned,
		m.WorkersAlive,
		m.WorkersBusy,
		m.QueueDepth,
		m.JobDuration,
	}
}

func (m *Metrics) jobSubmitted() {
	if m == nil {
		return
	}
	m.JobsSubmitted.Inc()
}

func (m *Metrics) jobStarted() {
	if m == nil {
		return
	}
	m.WorkersBusy.Inc()
}

func (m *Metrics) jobFinished(elapsed time.Duration, panicked bool) {
	if m == nil {
		return
	}
	m.WorkersBusy.Dec()
	m.JobDuration.Observe(elapsed.Seconds())
	if panicked {
		m.JobsPanicked.Inc()
		return
	}
	m.JobsCompleted.Inc()
}

func (m *Metrics) jobsDropped(n int) {
	if m == nil || n == 0 {
		return
	}
	m.JobsDropped.Add(float64(n))
}

func (m *Metrics) workerStarted() {
	if m == nil {
		return
	}
	m.WorkersAlive.Inc()
}

func (m *Metrics) workerStopped() {
	if m == nil {
		return
	}
	m.WorkersAlive.Dec()
}

func (m *Metrics) workerRespawned() {
	if m == nil {
		return
	}
	m.WorkersRespawned.Inc()
}

func (m *Metrics) setQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}
