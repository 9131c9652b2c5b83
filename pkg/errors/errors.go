package errors

import (
	"errors"
	"fmt"
)

// PoolCreationError is returned when a worker pool cannot be built from the requested configuration.
type PoolCreationError struct {
	Details string
}

func NewPoolCreationError(details string) *PoolCreationError {
	return &PoolCreationError{Details: details}
}

func (e *PoolCreationError) Error() string {
	return fmt.Sprintf("failed to create pool: %s", e.Details)
}

func IsPoolCreationError(err error) bool {
	var e *PoolCreationError
	return errors.As(err, &e)
}

// QueueClosedError is returned when work is submitted after the pool started disposing.
type QueueClosedError struct{}

func NewQueueClosedError() *QueueClosedError {
	return &QueueClosedError{}
}

func (e *QueueClosedError) Error() string {
	return "job queue is closed"
}

func IsQueueClosedError(err error) bool {
	var e *QueueClosedError
	return errors.As(err, &e)
}

type InvalidJobError struct{}

func NewInvalidJobError() *InvalidJobError {
	return &InvalidJobError{}
}

func (e *InvalidJobError) Error() string {
	return "job cannot be nil"
}

func IsInvalidJobError(err error) bool {
	var e *InvalidJobError
	return errors.As(err, &e)
}

// NoWorkersError is returned when every worker has terminated and none is being replaced,
// so a submitted job could never run.
type NoWorkersError struct{}

func NewNoWorkersError() *NoWorkersError {
	return &NoWorkersError{}
}

func (e *NoWorkersError) Error() string {
	return "no workers left to run jobs"
}

func IsNoWorkersError(err error) bool {
	var e *NoWorkersError
	return errors.As(err, &e)
}

// JobPanicError describes a panic recovered while a worker was running a job.
type JobPanicError struct {
	WorkerID int
	Value    any
}

func NewJobPanicError(workerID int, value any) *JobPanicError {
	return &JobPanicError{WorkerID: workerID, Value: value}
}

func (e *JobPanicError) Error() string {
	return fmt.Sprintf("worker %d panicked: %v", e.WorkerID, e.Value)
}

func IsJobPanicError(err error) bool {
	var e *JobPanicError
	return errors.As(err, &e)
}
