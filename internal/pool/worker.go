// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pool

import (
	"errors"
	"time"

	"github.com/pdiddy/noteforge/pkg/types"
)

// worker is one pool worker. State fields are guarded by the pool mutex; the
// goroutine itself only reads its channels.
type worker struct {
	id   int
	pool *Pool

	// tasks is buffered so dispatch never blocks: only an idle worker is
	// handed a task, and an idle worker's channel is empty.
	tasks chan *queued
	quit  chan struct{}

	state    types.WorkerState
	done     int
	current  string
	lastIdle time.Time
}

func (w *worker) run() {
	defer w.pool.wg.Done()
	for {
		select {
		case <-w.quit:
			return
		case item := <-w.tasks:
			res, crashed := w.runTask(item)
			w.pool.finish(w, item, res, crashed)
			if crashed {
				return
			}
		}
	}
}

// runTask executes one task under the worker's recover boundary. A panic
// anywhere in the pipeline (including the caller's progress callback) is
// converted into a failed result and reported as a crash so the pool can
// replace the worker.
func (w *worker) runTask(item *queued) (res types.TaskResult, crashed bool) {
	task := item.task
	started := time.Now()
	res = types.TaskResult{
		TaskID:  task.TaskID,
		Metrics: types.TaskMetrics{WorkerID: w.id},
	}

	defer func() {
		if r := recover(); r != nil {
			crashed = true
			w.pool.log.Error("worker panic",
				"worker_id", w.id, "task_id", task.TaskID, "panic", r)
			res.Status = types.StatusFailed
			res.Err = types.NewTaskError(types.CodeProcessing, "worker panic: %v", r).
				WithContext("task_id", task.TaskID)
			res.Metrics.Duration = time.Since(started)
			res.CompletedAt = time.Now().UTC()
		}
	}()

	var onProgress func(int)
	if cb := task.Options.OnProgress; cb != nil {
		onProgress = func(pct int) { cb(task.TaskID, pct) }
	}

	out, err := w.pool.eng.FormatWithProgress(item.cancel, task.Options.TargetFormat, task.Input, onProgress)
	res.Metrics.Duration = time.Since(started)
	res.CompletedAt = time.Now().UTC()

	if err != nil {
		taskErr := asTaskError(err)
		res.Err = taskErr
		if taskErr.Code == types.CodeUserCancelled {
			res.Status = types.StatusCancelled
		} else {
			res.Status = types.StatusFailed
		}
		return res, false
	}

	res.Status = types.StatusCompleted
	res.Output = out
	res.Metrics.Stats = out.Metadata.Stats
	return res, false
}

// asTaskError coerces any error into a *types.TaskError, wrapping unknown
// errors as processing failures.
func asTaskError(err error) *types.TaskError {
	var taskErr *types.TaskError
	if errors.As(err, &taskErr) {
		return taskErr
	}
	return types.NewTaskError(types.CodeProcessing, "%v", err)
}
