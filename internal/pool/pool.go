// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pool runs formatting tasks on a bounded worker pool. Tasks queue
// by priority, dispatch to the least-busy idle worker, and report progress
// at pipeline checkpoints. Cancellation is cooperative: a task observes its
// CancelContext between pipeline stages, so a cancelled task stops at the
// next checkpoint and never renders.
package pool

import (
	"container/heap"
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/noteforge/internal/engine"
	"github.com/pdiddy/noteforge/pkg/types"
)

// Pool schedules formatting tasks across a dynamic set of workers between
// MinWorkers and MaxWorkers.
type Pool struct {
	cfg types.PoolConfig
	eng *engine.Engine
	log *slog.Logger

	mu       sync.Mutex
	queue    taskQueue
	pending  map[string]*queued
	running  map[string]*queued
	workers  map[int]*worker
	nextID   int
	seq      uint64
	stopping bool
	started  time.Time

	completed int
	failed    int
	cancelled int

	stopJanitor chan struct{}
	wg          sync.WaitGroup
}

// New builds a Pool; call Start before submitting.
func New(cfg types.PoolConfig, eng *engine.Engine, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}
	return &Pool{
		cfg:         cfg.Normalized(),
		eng:         eng,
		log:         log,
		pending:     map[string]*queued{},
		running:     map[string]*queued{},
		workers:     map[int]*worker{},
		stopJanitor: make(chan struct{}),
	}
}

// Start spawns the minimum worker set and the idle-cull janitor.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = time.Now()
	for i := 0; i < p.cfg.MinWorkers; i++ {
		p.spawnLocked()
	}
	p.wg.Add(1)
	go p.janitor()
	p.log.Info("worker pool started",
		"min_workers", p.cfg.MinWorkers, "max_workers", p.cfg.MaxWorkers,
		"max_queue", p.cfg.MaxQueueSize)
}

// Submit enqueues a task and returns a channel that delivers its single
// terminal result. Submission fails with QUEUE_FULL when the pending queue
// is at capacity or the pool is shutting down.
func (p *Pool) Submit(task types.ProcessingTask) (<-chan types.TaskResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopping {
		return nil, types.NewTaskError(types.CodeQueueFull, "pool is shutting down")
	}
	if len(p.queue) >= p.cfg.MaxQueueSize {
		return nil, types.NewTaskError(types.CodeQueueFull,
			"queue is full (%d pending)", len(p.queue)).WithContext("task_id", task.TaskID)
	}

	if task.TaskID == "" {
		task.TaskID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	item := &queued{
		task:   task,
		cancel: NewCancelContext(),
		result: make(chan types.TaskResult, 1),
		seq:    p.seq,
	}
	p.seq++

	if timeout := taskTimeout(task); timeout > 0 {
		id := task.TaskID
		item.timer = time.AfterFunc(timeout, func() { p.expire(id) })
	}

	heap.Push(&p.queue, item)
	p.pending[task.TaskID] = item
	p.log.Debug("task submitted",
		"task_id", task.TaskID, "format", task.Options.TargetFormat,
		"priority", task.Priority, "queue_size", len(p.queue))

	p.dispatchLocked()
	return item.result, nil
}

// taskTimeout picks the effective bound: the task's own timeout, or the
// per-run processing bound when no task timeout is set.
func taskTimeout(task types.ProcessingTask) time.Duration {
	if task.Timeout > 0 {
		return task.Timeout
	}
	return task.Options.Performance.MaxProcessingTime
}

// Cancel cancels a task on the user's behalf. Queued tasks resolve
// immediately without running; running tasks stop at their next checkpoint.
// Returns false when the task is unknown or already finished.
func (p *Pool) Cancel(taskID string) bool {
	return p.cancelWith(taskID, types.NewTaskError(types.CodeUserCancelled, "cancelled by user"))
}

func (p *Pool) cancelWith(taskID string, reason *types.TaskError) bool {
	p.mu.Lock()
	if item, ok := p.pending[taskID]; ok {
		heap.Remove(&p.queue, item.index)
		delete(p.pending, taskID)
		item.cancel.Cancel(reason)
		p.resolveUnranLocked(item, reason)
		p.mu.Unlock()
		return true
	}
	item, ok := p.running[taskID]
	p.mu.Unlock()
	if !ok {
		return false
	}
	return item.cancel.Cancel(reason)
}

// expire is the timeout path; it mirrors cancelWith with a timeout reason.
func (p *Pool) expire(taskID string) {
	reason := types.NewTaskError(types.CodeTimeout, "task timed out").WithContext("task_id", taskID)
	if p.cancelWith(taskID, reason) {
		p.log.Warn("task timed out", "task_id", taskID)
	}
}

// resolveUnranLocked delivers the terminal result for a task that never
// reached a worker. The result channel is buffered, so the send cannot block.
func (p *Pool) resolveUnranLocked(item *queued, reason *types.TaskError) {
	if item.timer != nil {
		item.timer.Stop()
	}
	status := types.StatusCancelled
	if reason.Code == types.CodeTimeout {
		status = types.StatusFailed
		p.failed++
	} else {
		p.cancelled++
	}
	item.result <- types.TaskResult{
		TaskID:      item.task.TaskID,
		Status:      status,
		Err:         reason,
		Metrics:     types.TaskMetrics{WorkerID: -1},
		CompletedAt: time.Now().UTC(),
	}
}

// dispatchLocked assigns queued tasks to workers: the least-busy idle worker
// wins, lowest id on ties; new workers spawn on demand up to MaxWorkers.
func (p *Pool) dispatchLocked() {
	for len(p.queue) > 0 {
		w := p.idleWorkerLocked()
		if w == nil {
			if len(p.workers) >= p.cfg.MaxWorkers {
				return
			}
			w = p.spawnLocked()
		}

		item := heap.Pop(&p.queue).(*queued)
		delete(p.pending, item.task.TaskID)

		if reason := item.cancel.Reason(); reason != nil {
			p.resolveUnranLocked(item, reason)
			continue
		}

		p.running[item.task.TaskID] = item
		w.state = types.WorkerBusy
		w.current = item.task.TaskID
		w.tasks <- item
	}
}

// idleWorkerLocked picks the least-busy worker. Idle workers all carry zero
// in-flight tasks, so ties resolve to the lowest worker id.
func (p *Pool) idleWorkerLocked() *worker {
	var best *worker
	for _, w := range p.workers {
		if w.state != types.WorkerIdle {
			continue
		}
		if best == nil || w.id < best.id {
			best = w
		}
	}
	return best
}

func (p *Pool) spawnLocked() *worker {
	w := &worker{
		id:       p.nextID,
		pool:     p,
		tasks:    make(chan *queued, 1),
		quit:     make(chan struct{}),
		state:    types.WorkerIdle,
		lastIdle: time.Now(),
	}
	p.nextID++
	p.workers[w.id] = w
	p.wg.Add(1)
	go w.run()
	p.log.Debug("worker spawned", "worker_id", w.id, "total", len(p.workers))
	return w
}

// finish records a terminal result, returns the worker to the idle set (or
// replaces it after a crash), and dispatches any queued work.
func (p *Pool) finish(w *worker, item *queued, res types.TaskResult, crashed bool) {
	p.mu.Lock()
	delete(p.running, item.task.TaskID)
	if item.timer != nil {
		item.timer.Stop()
	}

	switch res.Status {
	case types.StatusCompleted:
		p.completed++
	case types.StatusCancelled:
		p.cancelled++
	default:
		p.failed++
	}

	w.done++
	w.current = ""
	if crashed {
		w.state = types.WorkerError
		delete(p.workers, w.id)
		if !p.stopping && (len(p.workers) < p.cfg.MinWorkers || len(p.queue) > 0) {
			replacement := p.spawnLocked()
			p.log.Info("worker replaced after crash",
				"crashed_id", w.id, "replacement_id", replacement.id)
		}
	} else {
		w.state = types.WorkerIdle
		w.lastIdle = time.Now()
	}

	p.dispatchLocked()
	p.mu.Unlock()

	item.result <- res
}

// janitor culls surplus idle workers back toward MinWorkers.
func (p *Pool) janitor() {
	defer p.wg.Done()
	interval := p.cfg.IdleTimeout / 4
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopJanitor:
			return
		case <-ticker.C:
			p.cullIdle()
		}
	}
}

func (p *Pool) cullIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	cutoff := time.Now().Add(-p.cfg.IdleTimeout)
	for id, w := range p.workers {
		if len(p.workers) <= p.cfg.MinWorkers {
			return
		}
		if w.state == types.WorkerIdle && w.lastIdle.Before(cutoff) {
			w.state = types.WorkerTerminated
			delete(p.workers, id)
			close(w.quit)
			p.log.Debug("idle worker culled", "worker_id", id, "total", len(p.workers))
		}
	}
}

// Stats returns a point-in-time snapshot of the pool counters.
func (p *Pool) Stats() types.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statsLocked()
}

func (p *Pool) statsLocked() types.PoolStats {
	stats := types.PoolStats{
		TotalWorkers:   len(p.workers),
		QueueSize:      len(p.queue),
		TasksCompleted: p.completed,
		TasksFailed:    p.failed,
		TasksCancelled: p.cancelled,
	}
	for _, w := range p.workers {
		if w.state == types.WorkerBusy {
			stats.BusyWorkers++
		} else if w.state == types.WorkerIdle {
			stats.IdleWorkers++
		}
	}
	return stats
}

// Status returns the pool portion of the system status: uptime, counters,
// and per-worker snapshots ordered by id. Recovery counters are filled in by
// the recovery layer.
func (p *Pool) Status() types.SystemStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := types.SystemStatus{
		Uptime: time.Since(p.started),
		Pool:   p.statsLocked(),
	}
	for _, w := range p.workers {
		status.Workers = append(status.Workers, types.WorkerStatus{
			ID:          w.id,
			State:       w.state,
			TasksDone:   w.done,
			CurrentTask: w.current,
		})
	}
	sort.Slice(status.Workers, func(i, j int) bool {
		return status.Workers[i].ID < status.Workers[j].ID
	})
	return status
}

// Shutdown stops the pool: new submissions are rejected, queued tasks
// resolve as cancelled, and running tasks finish. It returns once all
// workers have exited or the context expires.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.stopping {
		p.mu.Unlock()
		return nil
	}
	p.stopping = true
	close(p.stopJanitor)

	reason := types.NewTaskError(types.CodeUserCancelled, "pool shutting down")
	for len(p.queue) > 0 {
		item := heap.Pop(&p.queue).(*queued)
		delete(p.pending, item.task.TaskID)
		item.cancel.Cancel(reason)
		p.resolveUnranLocked(item, reason)
	}
	for _, w := range p.workers {
		close(w.quit)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		p.log.Info("worker pool stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
