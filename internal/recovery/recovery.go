// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recovery wraps pooled task execution with retry, fallback, and a
// fingerprint result cache. Transient failures retry with exponential
// backoff; terminal outcomes (user cancellation, timeout) pass through
// untouched. When retries exhaust and fallback is enabled, the task runs on
// the synchronous in-process engine instead of the pool.
package recovery

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pdiddy/noteforge/internal/engine"
	"github.com/pdiddy/noteforge/pkg/types"
)

// Submitter is the slice of the worker pool the recovery layer depends on.
type Submitter interface {
	Submit(task types.ProcessingTask) (<-chan types.TaskResult, error)
	Cancel(taskID string) bool
}

// Manager coordinates retries, fallback execution, and result caching for
// one pool.
type Manager struct {
	cfg  types.RecoveryConfig
	pool Submitter
	eng  *engine.Engine
	log  *slog.Logger

	cache *gocache.Cache

	retries   atomic.Int64
	fallbacks atomic.Int64
	hits      atomic.Int64
	misses    atomic.Int64
}

// New builds a Manager. eng may be nil when fallback is disabled.
func New(cfg types.RecoveryConfig, pool Submitter, eng *engine.Engine, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	cfg = cfg.Normalized()
	return &Manager{
		cfg:   cfg,
		pool:  pool,
		eng:   eng,
		log:   log,
		cache: gocache.New(cfg.CacheExpiration, 2*cfg.CacheExpiration),
	}
}

// Process runs one task to a terminal result. It never returns an error:
// every failure mode is encoded in the TaskResult.
func (m *Manager) Process(ctx context.Context, task types.ProcessingTask) types.TaskResult {
	useCache := m.cfg.EnableCaching && task.Options.Performance.EnableCaching
	key := fingerprint(task.Options.TargetFormat, task.Input.Content)

	if useCache {
		if v, ok := m.cache.Get(key); ok {
			m.hits.Add(1)
			m.log.Debug("cache hit", "task_id", task.TaskID, "fingerprint", key)
			return types.TaskResult{
				TaskID:      task.TaskID,
				Status:      types.StatusCompleted,
				Output:      v.(*types.FormattedOutput),
				Metrics:     types.TaskMetrics{WorkerID: -1, FromCache: true},
				CompletedAt: time.Now().UTC(),
			}
		}
		m.misses.Add(1)
	}

	var res types.TaskResult
	retries := 0
	for attempt := 0; ; attempt++ {
		res = m.runPooled(ctx, task)
		res.Metrics.RetryCount = retries

		if res.Status == types.StatusCompleted {
			if useCache {
				m.cache.Set(key, res.Output, gocache.DefaultExpiration)
			}
			return res
		}
		if res.Err != nil && !res.Err.Transient() {
			break
		}
		if attempt >= m.cfg.MaxRetries {
			break
		}

		retries++
		m.retries.Add(1)
		wait := m.backoff(attempt)
		m.log.Warn("task failed, retrying",
			"task_id", task.TaskID, "attempt", attempt+1,
			"max_retries", m.cfg.MaxRetries, "backoff", wait, "error", res.Err)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return res
		}
	}

	// Timeouts and cancellations are terminal; only genuine processing
	// failures fall back.
	if res.Err != nil && !res.Err.Transient() && res.Err.Code != types.CodeQueueFull {
		return res
	}
	if m.cfg.EnableFallback && m.eng != nil {
		if out := m.fallback(ctx, task); out != nil {
			res = types.TaskResult{
				TaskID:      task.TaskID,
				Status:      types.StatusCompleted,
				Output:      out,
				Metrics:     types.TaskMetrics{WorkerID: -1, RetryCount: retries},
				CompletedAt: time.Now().UTC(),
			}
			if useCache {
				m.cache.Set(key, out, gocache.DefaultExpiration)
			}
		}
	}
	return res
}

// runPooled submits the task and waits for its single result, cancelling the
// task if the caller's context ends first.
func (m *Manager) runPooled(ctx context.Context, task types.ProcessingTask) types.TaskResult {
	ch, err := m.pool.Submit(task)
	if err != nil {
		return types.TaskResult{
			TaskID:      task.TaskID,
			Status:      types.StatusFailed,
			Err:         asTaskError(err),
			Metrics:     types.TaskMetrics{WorkerID: -1},
			CompletedAt: time.Now().UTC(),
		}
	}
	select {
	case res := <-ch:
		return res
	case <-ctx.Done():
		m.pool.Cancel(task.TaskID)
		return <-ch
	}
}

// fallback runs the engine synchronously; nil means the fallback itself
// failed and the pooled result stands.
func (m *Manager) fallback(ctx context.Context, task types.ProcessingTask) *types.FormattedOutput {
	m.fallbacks.Add(1)
	m.log.Info("falling back to synchronous engine", "task_id", task.TaskID)
	out, err := m.eng.Format(ctx, task.Options.TargetFormat, task.Input)
	if err != nil {
		m.log.Error("fallback failed", "task_id", task.TaskID, "error", err)
		return nil
	}
	return out
}

// backoff computes the wait before retry attempt+1: RetryDelay * 2^attempt,
// plus up to 25% random spread when jitter is on.
func (m *Manager) backoff(attempt int) time.Duration {
	wait := m.cfg.RetryDelay << uint(attempt)
	if m.cfg.Jitter {
		wait += time.Duration(rand.Int63n(int64(wait)/4 + 1))
	}
	return wait
}

// ClearCache drops all cached results.
func (m *Manager) ClearCache() {
	m.cache.Flush()
}

// CacheSize returns the number of live cache entries.
func (m *Manager) CacheSize() int {
	return m.cache.ItemCount()
}

// Stats returns the recovery counters.
func (m *Manager) Stats() types.RecoveryStats {
	return types.RecoveryStats{
		Retries:     m.retries.Load(),
		Fallbacks:   m.fallbacks.Load(),
		CacheHits:   m.hits.Load(),
		CacheMisses: m.misses.Load(),
	}
}

// fingerprint keys the result cache by format and exact content.
func fingerprint(format types.FormatType, content string) string {
	h := sha256.New()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return fmt.Sprintf("%x", h.Sum(nil))
}

func asTaskError(err error) *types.TaskError {
	if taskErr, ok := err.(*types.TaskError); ok {
		return taskErr
	}
	return types.NewTaskError(types.CodeProcessing, "%v", err)
}
