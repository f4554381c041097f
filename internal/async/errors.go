package async

import "errors"

var (
	ErrEnqueueTask       = errors.New("failed to enqueue task")
	ErrClientClose       = errors.New("failed to shut down task client")
	ErrWorkerStart       = errors.New("failed to start task worker")
	ErrSchedulerInit     = errors.New("failed to create task scheduler")
	ErrSchedulerRun      = errors.New("failed to run task scheduler")
	ErrInvalidTaskConfig = errors.New("scheduled task type is not defined")
)
