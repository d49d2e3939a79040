// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recovery

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/noteforge/internal/engine"
	"github.com/pdiddy/noteforge/pkg/types"
)

// fakePool scripts pool behavior: each Submit consumes the next scripted
// result, repeating the last one when the script runs out.
type fakePool struct {
	mu        sync.Mutex
	calls     int
	script    []types.TaskResult
	submitErr *types.TaskError
}

func (f *fakePool) Submit(task types.ProcessingTask) (<-chan types.TaskResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	i := f.calls - 1
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	res := f.script[i]
	res.TaskID = task.TaskID
	ch := make(chan types.TaskResult, 1)
	ch <- res
	return ch, nil
}

func (f *fakePool) Cancel(string) bool { return false }

func (f *fakePool) submitCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func success() types.TaskResult {
	return types.TaskResult{
		Status: types.StatusCompleted,
		Output: &types.FormattedOutput{Format: types.FormatTaskLists, Content: "TASK LIST\n"},
	}
}

func failure(code types.ErrorCode) types.TaskResult {
	status := types.StatusFailed
	if code == types.CodeUserCancelled {
		status = types.StatusCancelled
	}
	return types.TaskResult{Status: status, Err: types.NewTaskError(code, "scripted failure")}
}

func cachingTask(id, content string) types.ProcessingTask {
	return types.ProcessingTask{
		TaskID: id,
		Input:  types.NewTextInput(content, types.SourceType),
		Options: types.TaskOptions{
			TargetFormat: types.FormatTaskLists,
			Performance:  types.PerformanceOptions{EnableCaching: true},
		},
	}
}

func fastConfig() types.RecoveryConfig {
	return types.RecoveryConfig{MaxRetries: 3, RetryDelay: time.Millisecond}
}

func TestProcess_RetriesTransientFailures(t *testing.T) {
	pool := &fakePool{script: []types.TaskResult{
		failure(types.CodeProcessing),
		failure(types.CodeProcessing),
		success(),
	}}
	m := New(fastConfig(), pool, nil, slog.Default())

	res := m.Process(context.Background(), cachingTask("t", "- one"))

	assert.Equal(t, types.StatusCompleted, res.Status)
	assert.Equal(t, 3, pool.submitCalls())
	assert.Equal(t, 2, res.Metrics.RetryCount)
	assert.Equal(t, int64(2), m.Stats().Retries)
}

func TestProcess_TerminalFailuresNotRetried(t *testing.T) {
	tests := []struct {
		code types.ErrorCode
		want types.TaskStatus
	}{
		{types.CodeUserCancelled, types.StatusCancelled},
		{types.CodeTimeout, types.StatusFailed},
	}
	for _, tt := range tests {
		pool := &fakePool{script: []types.TaskResult{failure(tt.code)}}
		m := New(fastConfig(), pool, nil, slog.Default())

		res := m.Process(context.Background(), cachingTask("t", "- one"))

		assert.Equal(t, tt.want, res.Status, "code %s", tt.code)
		assert.Equal(t, 1, pool.submitCalls(), "code %s must not retry", tt.code)
		assert.Equal(t, int64(0), m.Stats().Retries)
	}
}

func TestProcess_ExhaustedRetries(t *testing.T) {
	pool := &fakePool{script: []types.TaskResult{failure(types.CodeProcessing)}}
	cfg := fastConfig()
	cfg.MaxRetries = 2
	m := New(cfg, pool, nil, slog.Default())

	res := m.Process(context.Background(), cachingTask("t", "- one"))

	assert.Equal(t, types.StatusFailed, res.Status)
	assert.Equal(t, 3, pool.submitCalls(), "initial attempt plus two retries")
}

func TestProcess_FallbackAfterExhaustion(t *testing.T) {
	pool := &fakePool{script: []types.TaskResult{failure(types.CodeProcessing)}}
	cfg := fastConfig()
	cfg.MaxRetries = 1
	cfg.EnableFallback = true
	m := New(cfg, pool, engine.New(types.EngineConfig{}), slog.Default())

	res := m.Process(context.Background(), cachingTask("t", "- buy milk"))

	assert.Equal(t, types.StatusCompleted, res.Status)
	require.NotNil(t, res.Output)
	assert.Contains(t, res.Output.Content, "TASK LIST")
	assert.Equal(t, int64(1), m.Stats().Fallbacks)
}

func TestProcess_QueueFullFallsBack(t *testing.T) {
	pool := &fakePool{submitErr: types.NewTaskError(types.CodeQueueFull, "queue is full")}
	cfg := fastConfig()
	cfg.EnableFallback = true
	m := New(cfg, pool, engine.New(types.EngineConfig{}), slog.Default())

	res := m.Process(context.Background(), cachingTask("t", "- buy milk"))

	assert.Equal(t, types.StatusCompleted, res.Status)
	assert.Equal(t, 1, pool.submitCalls(), "queue rejection must not be retried against the pool")
	assert.Equal(t, int64(1), m.Stats().Fallbacks)
}

func TestProcess_CacheHit(t *testing.T) {
	pool := &fakePool{script: []types.TaskResult{success()}}
	cfg := fastConfig()
	cfg.EnableCaching = true
	m := New(cfg, pool, nil, slog.Default())

	first := m.Process(context.Background(), cachingTask("a", "- same input"))
	require.Equal(t, types.StatusCompleted, first.Status)
	assert.False(t, first.Metrics.FromCache)

	second := m.Process(context.Background(), cachingTask("b", "- same input"))
	assert.Equal(t, types.StatusCompleted, second.Status)
	assert.True(t, second.Metrics.FromCache)
	assert.Equal(t, 1, pool.submitCalls(), "second call must be served from cache")

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
}

func TestProcess_CacheExpiry(t *testing.T) {
	pool := &fakePool{script: []types.TaskResult{success()}}
	cfg := fastConfig()
	cfg.EnableCaching = true
	cfg.CacheExpiration = 20 * time.Millisecond
	m := New(cfg, pool, nil, slog.Default())

	m.Process(context.Background(), cachingTask("a", "- same input"))
	time.Sleep(40 * time.Millisecond)
	res := m.Process(context.Background(), cachingTask("b", "- same input"))

	assert.False(t, res.Metrics.FromCache)
	assert.Equal(t, 2, pool.submitCalls(), "expired entry must not be served")
}

func TestProcess_CacheRequiresTaskOptIn(t *testing.T) {
	pool := &fakePool{script: []types.TaskResult{success()}}
	cfg := fastConfig()
	cfg.EnableCaching = true
	m := New(cfg, pool, nil, slog.Default())

	task := cachingTask("a", "- same input")
	task.Options.Performance.EnableCaching = false

	m.Process(context.Background(), task)
	m.Process(context.Background(), task)

	assert.Equal(t, 2, pool.submitCalls())
	assert.Equal(t, int64(0), m.Stats().CacheHits+m.Stats().CacheMisses)
}

func TestClearCache(t *testing.T) {
	pool := &fakePool{script: []types.TaskResult{success()}}
	cfg := fastConfig()
	cfg.EnableCaching = true
	m := New(cfg, pool, nil, slog.Default())

	m.Process(context.Background(), cachingTask("a", "- same input"))
	assert.Equal(t, 1, m.CacheSize())

	m.ClearCache()
	assert.Equal(t, 0, m.CacheSize())

	m.Process(context.Background(), cachingTask("b", "- same input"))
	assert.Equal(t, 2, pool.submitCalls())
}

func TestBackoff_Doubles(t *testing.T) {
	m := New(types.RecoveryConfig{RetryDelay: 100 * time.Millisecond}, &fakePool{}, nil, slog.Default())

	assert.Equal(t, 100*time.Millisecond, m.backoff(0))
	assert.Equal(t, 200*time.Millisecond, m.backoff(1))
	assert.Equal(t, 400*time.Millisecond, m.backoff(2))
}

func TestFingerprint_FormatAware(t *testing.T) {
	same := fingerprint(types.FormatTaskLists, "- one")
	assert.Equal(t, same, fingerprint(types.FormatTaskLists, "- one"))
	assert.NotEqual(t, same, fingerprint(types.FormatShoppingLists, "- one"))
	assert.NotEqual(t, same, fingerprint(types.FormatTaskLists, "- two"))
}
