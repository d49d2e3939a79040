// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Priority is the scheduling tier of a processing task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities for dequeueing: urgent first, low last.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	}
	return 2
}

// PerformanceOptions tunes how a task is executed.
type PerformanceOptions struct {
	// MaxProcessingTime bounds the formatting work itself; zero means no bound.
	MaxProcessingTime time.Duration `json:"max_processing_time" yaml:"max_processing_time"`

	// EnableCaching allows the recovery layer to serve and store fingerprint
	// cache entries for this task.
	EnableCaching bool `json:"enable_caching" yaml:"enable_caching"`

	// UseStreaming requests incremental progress callbacks.
	UseStreaming bool `json:"use_streaming" yaml:"use_streaming"`
}

// TaskOptions configures one ProcessingTask.
type TaskOptions struct {
	// TargetFormat selects which format engine runs.
	TargetFormat FormatType `json:"target_format" yaml:"target_format"`

	// Features lists optional feature flags by name.
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`

	// Performance tunes caching and time bounds.
	Performance PerformanceOptions `json:"performance" yaml:"performance"`

	// OnProgress, when set, receives checkpoint percentages (0..100) as the
	// task advances. Called from the worker goroutine.
	OnProgress func(taskID string, percent int) `json:"-" yaml:"-"`
}

// ProcessingTask is a unit of formatting work submitted to the pool. The
// pool owns the task from submission until completion, cancellation, or
// timeout; it is not persisted.
type ProcessingTask struct {
	// TaskID uniquely identifies the task. Assigned at submission when empty.
	TaskID string `json:"task_id" yaml:"task_id"`

	// Input is the raw text envelope to format.
	Input TextInput `json:"input" yaml:"input"`

	// Options selects the target format and execution tuning.
	Options TaskOptions `json:"options" yaml:"options"`

	// Priority is the scheduling tier.
	Priority Priority `json:"priority" yaml:"priority"`

	// CreatedAt is when the caller built the task.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Timeout, when positive, cancels the task on the caller's behalf if it
	// has not completed within this duration of submission.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// TaskStatus is the terminal state of a processed task.
type TaskStatus string

const (
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
	StatusCancelled TaskStatus = "cancelled"
)

// TaskMetrics records per-task execution measurements.
type TaskMetrics struct {
	// Duration is the wall time the task spent executing.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Stats are the formatting counters, zero-valued for tasks that never ran.
	Stats ProcessingStats `json:"stats" yaml:"stats"`

	// WorkerID identifies the worker that executed the task; -1 if none did.
	WorkerID int `json:"worker_id" yaml:"worker_id"`

	// RetryCount is how many retry attempts the recovery layer made.
	RetryCount int `json:"retry_count" yaml:"retry_count"`

	// FromCache reports whether the result was served from the fingerprint cache.
	FromCache bool `json:"from_cache,omitempty" yaml:"from_cache,omitempty"`
}

// TaskResult is the terminal outcome of a ProcessingTask.
type TaskResult struct {
	TaskID      string           `json:"task_id" yaml:"task_id"`
	Status      TaskStatus       `json:"status" yaml:"status"`
	Output      *FormattedOutput `json:"output,omitempty" yaml:"output,omitempty"`
	Err         *TaskError       `json:"error,omitempty" yaml:"error,omitempty"`
	Metrics     TaskMetrics      `json:"metrics" yaml:"metrics"`
	CompletedAt time.Time        `json:"completed_at" yaml:"completed_at"`
}

// WorkerState is the lifecycle state of one pool worker.
type WorkerState string

const (
	WorkerInitializing WorkerState = "initializing"
	WorkerIdle         WorkerState = "idle"
	WorkerBusy         WorkerState = "busy"
	WorkerError        WorkerState = "error"
	WorkerTerminated   WorkerState = "terminated"
)

// WorkerStatus is a point-in-time snapshot of one worker.
type WorkerStatus struct {
	ID          int         `json:"id" yaml:"id"`
	State       WorkerState `json:"state" yaml:"state"`
	TasksDone   int         `json:"tasks_done" yaml:"tasks_done"`
	CurrentTask string      `json:"current_task,omitempty" yaml:"current_task,omitempty"`
}

// PoolStats is a point-in-time snapshot of pool-level counters.
type PoolStats struct {
	TotalWorkers   int `json:"total_workers" yaml:"total_workers"`
	BusyWorkers    int `json:"busy_workers" yaml:"busy_workers"`
	IdleWorkers    int `json:"idle_workers" yaml:"idle_workers"`
	QueueSize      int `json:"queue_size" yaml:"queue_size"`
	TasksCompleted int `json:"tasks_completed" yaml:"tasks_completed"`
	TasksFailed    int `json:"tasks_failed" yaml:"tasks_failed"`
	TasksCancelled int `json:"tasks_cancelled" yaml:"tasks_cancelled"`
}

// RecoveryStats counts retry, fallback, and cache activity.
type RecoveryStats struct {
	Retries     int64 `json:"retries" yaml:"retries"`
	Fallbacks   int64 `json:"fallbacks" yaml:"fallbacks"`
	CacheHits   int64 `json:"cache_hits" yaml:"cache_hits"`
	CacheMisses int64 `json:"cache_misses" yaml:"cache_misses"`
}

// SystemStatus aggregates pool, worker, and recovery state for operators.
type SystemStatus struct {
	Uptime   time.Duration  `json:"uptime" yaml:"uptime"`
	Pool     PoolStats      `json:"pool" yaml:"pool"`
	Workers  []WorkerStatus `json:"workers" yaml:"workers"`
	Recovery RecoveryStats  `json:"recovery" yaml:"recovery"`
}
