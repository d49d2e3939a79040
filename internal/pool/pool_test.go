// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pool

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/noteforge/internal/engine"
	"github.com/pdiddy/noteforge/pkg/types"
)

func newTestPool(t *testing.T, cfg types.PoolConfig) *Pool {
	t.Helper()
	p := New(cfg, engine.New(types.EngineConfig{}), slog.Default())
	p.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = p.Shutdown(ctx)
	})
	return p
}

func newTask(id string, priority types.Priority, onProgress func(string, int)) types.ProcessingTask {
	return types.ProcessingTask{
		TaskID:   id,
		Input:    types.NewTextInput("milk\neggs\nbread", types.SourceType),
		Priority: priority,
		Options: types.TaskOptions{
			TargetFormat: types.FormatShoppingLists,
			OnProgress:   onProgress,
		},
	}
}

func waitResult(t *testing.T, ch <-chan types.TaskResult) types.TaskResult {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for task result")
		return types.TaskResult{}
	}
}

// blockingProgress blocks the task at its first checkpoint until release is
// closed, signalling entry on entered.
func blockingProgress(entered chan<- string, release <-chan struct{}) func(string, int) {
	return func(taskID string, pct int) {
		if pct == 0 {
			entered <- taskID
			<-release
		}
	}
}

func TestPool_CompletesTask(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 2})

	ch, err := p.Submit(newTask("t1", types.PriorityNormal, nil))
	require.NoError(t, err)

	res := waitResult(t, ch)
	assert.Equal(t, types.StatusCompleted, res.Status)
	require.NotNil(t, res.Output)
	assert.Contains(t, res.Output.Content, "SHOPPING LIST")
	assert.GreaterOrEqual(t, res.Metrics.WorkerID, 0)

	stats := p.Stats()
	assert.Equal(t, 1, stats.TasksCompleted)
}

func TestPool_AssignsTaskID(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 1})

	ch, err := p.Submit(newTask("", types.PriorityNormal, nil))
	require.NoError(t, err)
	res := waitResult(t, ch)
	assert.NotEmpty(t, res.TaskID)
}

func TestPool_QueueBackpressure(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 2, MaxQueueSize: 8})

	entered := make(chan string, 3)
	release := make(chan struct{})
	cb := blockingProgress(entered, release)

	var channels []<-chan types.TaskResult
	for _, id := range []string{"a", "b", "c"} {
		ch, err := p.Submit(newTask(id, types.PriorityNormal, cb))
		require.NoError(t, err)
		channels = append(channels, ch)
	}

	// Two tasks occupy the two workers; the third waits in the queue.
	<-entered
	<-entered
	stats := p.Stats()
	assert.Equal(t, 2, stats.BusyWorkers)
	assert.Equal(t, 1, stats.QueueSize)
	assert.Equal(t, 2, stats.TotalWorkers)

	close(release)
	for _, ch := range channels {
		res := waitResult(t, ch)
		assert.Equal(t, types.StatusCompleted, res.Status)
	}
}

func TestPool_QueueFull(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 1, MaxQueueSize: 1})

	entered := make(chan string, 1)
	release := make(chan struct{})
	defer close(release)

	_, err := p.Submit(newTask("running", types.PriorityNormal, blockingProgress(entered, release)))
	require.NoError(t, err)
	<-entered

	_, err = p.Submit(newTask("queued", types.PriorityNormal, nil))
	require.NoError(t, err)

	_, err = p.Submit(newTask("rejected", types.PriorityNormal, nil))
	require.Error(t, err)
	var taskErr *types.TaskError
	require.True(t, errors.As(err, &taskErr))
	assert.Equal(t, types.CodeQueueFull, taskErr.Code)
}

func TestPool_CancelQueuedTask(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 1})

	entered := make(chan string, 1)
	release := make(chan struct{})

	chA, err := p.Submit(newTask("a", types.PriorityNormal, blockingProgress(entered, release)))
	require.NoError(t, err)
	<-entered

	chB, err := p.Submit(newTask("b", types.PriorityNormal, nil))
	require.NoError(t, err)

	require.True(t, p.Cancel("b"))

	res := waitResult(t, chB)
	assert.Equal(t, types.StatusCancelled, res.Status)
	assert.Nil(t, res.Output, "cancelled task must not produce output")
	assert.Equal(t, -1, res.Metrics.WorkerID)
	require.NotNil(t, res.Err)
	assert.Equal(t, types.CodeUserCancelled, res.Err.Code)

	close(release)
	assert.Equal(t, types.StatusCompleted, waitResult(t, chA).Status)
	assert.Equal(t, 1, p.Stats().TasksCancelled)
}

func TestPool_CancelRunningTask(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 1})

	entered := make(chan string, 1)
	release := make(chan struct{})
	cb := func(taskID string, pct int) {
		if pct == 20 {
			entered <- taskID
			<-release
		}
	}

	ch, err := p.Submit(newTask("running", types.PriorityNormal, cb))
	require.NoError(t, err)
	<-entered

	require.True(t, p.Cancel("running"))
	close(release)

	res := waitResult(t, ch)
	assert.Equal(t, types.StatusCancelled, res.Status)
	assert.Nil(t, res.Output)
	require.NotNil(t, res.Err)
	assert.Equal(t, types.CodeUserCancelled, res.Err.Code)
}

func TestPool_CancelUnknownTask(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 1})
	assert.False(t, p.Cancel("nope"))
}

func TestPool_Timeout(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 1})

	task := newTask("slow", types.PriorityNormal, func(taskID string, pct int) {
		if pct == 20 {
			time.Sleep(80 * time.Millisecond)
		}
	})
	task.Timeout = 15 * time.Millisecond

	ch, err := p.Submit(task)
	require.NoError(t, err)

	res := waitResult(t, ch)
	assert.Equal(t, types.StatusFailed, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, types.CodeTimeout, res.Err.Code,
		"timeout must be distinguishable from a user cancellation")
}

func TestPool_PriorityOrder(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 1})

	entered := make(chan string, 1)
	release := make(chan struct{})
	chBlock, err := p.Submit(newTask("block", types.PriorityNormal, blockingProgress(entered, release)))
	require.NoError(t, err)
	<-entered

	var mu sync.Mutex
	var order []string
	record := func(taskID string, pct int) {
		if pct == 0 {
			mu.Lock()
			order = append(order, taskID)
			mu.Unlock()
		}
	}

	chLow, err := p.Submit(newTask("low", types.PriorityLow, record))
	require.NoError(t, err)
	chUrgent, err := p.Submit(newTask("urgent", types.PriorityUrgent, record))
	require.NoError(t, err)

	close(release)
	waitResult(t, chBlock)
	waitResult(t, chLow)
	waitResult(t, chUrgent)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"urgent", "low"}, order)
}

func TestPool_IdleAssignmentPrefersLowestID(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 3, MaxWorkers: 3})

	// Sequential tasks always land on the lowest-id idle worker, no matter
	// how many tasks it has already completed.
	for i := 0; i < 3; i++ {
		ch, err := p.Submit(newTask("", types.PriorityNormal, nil))
		require.NoError(t, err)
		res := waitResult(t, ch)
		require.Equal(t, types.StatusCompleted, res.Status)
		assert.Equal(t, 0, res.Metrics.WorkerID)
	}
}

func TestPool_WorkerCrashRecovery(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 1, MaxWorkers: 1})

	ch, err := p.Submit(newTask("boom", types.PriorityNormal, func(string, int) {
		panic("progress callback exploded")
	}))
	require.NoError(t, err)

	res := waitResult(t, ch)
	assert.Equal(t, types.StatusFailed, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, types.CodeProcessing, res.Err.Code)
	assert.Contains(t, res.Err.Message, "panic")

	// The pool must replace the crashed worker and keep serving.
	ch, err = p.Submit(newTask("after", types.PriorityNormal, nil))
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, waitResult(t, ch).Status)
	assert.GreaterOrEqual(t, p.Stats().TotalWorkers, 1)
}

func TestPool_IdleCull(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{
		MinWorkers:  1,
		MaxWorkers:  3,
		IdleTimeout: 20 * time.Millisecond,
	})

	entered := make(chan string, 3)
	release := make(chan struct{})
	cb := blockingProgress(entered, release)

	var channels []<-chan types.TaskResult
	for _, id := range []string{"a", "b", "c"} {
		ch, err := p.Submit(newTask(id, types.PriorityNormal, cb))
		require.NoError(t, err)
		channels = append(channels, ch)
	}
	for i := 0; i < 3; i++ {
		<-entered
	}
	assert.Equal(t, 3, p.Stats().TotalWorkers)

	close(release)
	for _, ch := range channels {
		waitResult(t, ch)
	}

	require.Eventually(t, func() bool {
		return p.Stats().TotalWorkers == 1
	}, 2*time.Second, 10*time.Millisecond, "surplus workers should be culled")
}

func TestPool_Status(t *testing.T) {
	p := newTestPool(t, types.PoolConfig{MinWorkers: 2, MaxWorkers: 2})

	ch, err := p.Submit(newTask("t", types.PriorityNormal, nil))
	require.NoError(t, err)
	waitResult(t, ch)

	status := p.Status()
	assert.Greater(t, status.Uptime, time.Duration(0))
	assert.Len(t, status.Workers, 2)
	assert.Equal(t, 0, status.Workers[0].ID)
	assert.Equal(t, 1, status.Workers[1].ID)
	assert.Equal(t, 1, status.Pool.TasksCompleted)
}

func TestPool_ShutdownRejectsSubmissions(t *testing.T) {
	p := New(types.PoolConfig{MinWorkers: 1, MaxWorkers: 1}, engine.New(types.EngineConfig{}), slog.Default())
	p.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))

	_, err := p.Submit(newTask("late", types.PriorityNormal, nil))
	require.Error(t, err)
	var taskErr *types.TaskError
	require.True(t, errors.As(err, &taskErr))
	assert.Equal(t, types.CodeQueueFull, taskErr.Code)
}

func TestCancelContext_FirstReasonWins(t *testing.T) {
	ctx := NewCancelContext()
	assert.NoError(t, ctx.Err())

	userCancel := types.NewTaskError(types.CodeUserCancelled, "cancelled by user")
	timeout := types.NewTaskError(types.CodeTimeout, "task timed out")

	assert.True(t, ctx.Cancel(userCancel))
	assert.False(t, ctx.Cancel(timeout), "second cancel must not take effect")

	select {
	case <-ctx.Done():
	default:
		t.Fatal("Done channel not closed after cancel")
	}

	var taskErr *types.TaskError
	require.True(t, errors.As(ctx.Err(), &taskErr))
	assert.Equal(t, types.CodeUserCancelled, taskErr.Code)
}
