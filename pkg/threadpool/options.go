package threadpool

import (
	"fmt"
	"time"
)

// FaultPolicy decides what a worker does after a job panicked.
type FaultPolicy string

const (
	// FaultPolicyRecover logs the panic and keeps the worker running.
	FaultPolicyRecover FaultPolicy = "recover"
	// FaultPolicyTerminate logs the panic and stops the worker. Without
	// replenishment the pool runs with one worker less from then on.
	FaultPolicyTerminate FaultPolicy = "terminate"
)

func ParseFaultPolicy(s string) (FaultPolicy, error) {
	switch s {
	case string(FaultPolicyRecover):
		return FaultPolicyRecover, nil
	case string(FaultPolicyTerminate):
		return FaultPolicyTerminate, nil
	default:
		return "", fmt.Errorf("invalid fault policy: %s", s)
	}
}

//go:generate go run github.com/ecordell/optgen -output zz_generated.options.go . Config

// Config holds the pool settings. New starts from the defaults and applies
// the generated With... options on top.
type Config struct {
	// Name is the logger name used by the pool and its workers.
	Name        string      `debugmap:"visible" default:"worker_pool"`
	FaultPolicy FaultPolicy `debugmap:"visible" default:"recover"`
	// Replenish makes the pool spawn a replacement for every worker terminated
	// by a job panic. It only has an effect with FaultPolicyTerminate.
	Replenish        bool          `debugmap:"visible"`
	ReplenishInitial time.Duration `debugmap:"visible" default:"50ms"`
	ReplenishMax     time.Duration `debugmap:"visible" default:"5s"`
	// LockOSThread pins every worker goroutine to its own OS thread for the
	// worker's lifetime.
	LockOSThread bool     `debugmap:"visible"`
	Metrics      *Metrics `debugmap:"hidden"`
}

// WithReplenishBackoff bounds the exponential delay before a replacement worker is spawned.
func WithReplenishBackoff(initial, max time.Duration) ConfigOption {
	return func(c *Config) {
		c.ReplenishInitial = initial
		c.ReplenishMax = max
	}
}
