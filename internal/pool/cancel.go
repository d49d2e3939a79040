// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pool

import (
	"sync"
	"time"

	"github.com/pdiddy/noteforge/pkg/types"
)

// CancelContext is a context.Context with a single authoritative cancel
// carrying a typed reason. The first Cancel wins; later calls are no-ops, so
// a user cancellation and a timeout racing each other resolve to exactly one
// reason. Err returns the winning *types.TaskError.
type CancelContext struct {
	mu   sync.Mutex
	done chan struct{}
	err  *types.TaskError
}

// NewCancelContext returns an uncancelled CancelContext.
func NewCancelContext() *CancelContext {
	return &CancelContext{done: make(chan struct{})}
}

// Cancel marks the context cancelled with the given reason and reports
// whether this call was the one that took effect. A nil reason is recorded
// as a user cancellation.
func (c *CancelContext) Cancel(reason *types.TaskError) bool {
	if reason == nil {
		reason = types.NewTaskError(types.CodeUserCancelled, "cancelled")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false
	}
	c.err = reason
	close(c.done)
	return true
}

// Deadline implements context.Context; CancelContexts carry no deadline, the
// pool arms timeout timers itself.
func (c *CancelContext) Deadline() (time.Time, bool) { return time.Time{}, false }

// Done implements context.Context.
func (c *CancelContext) Done() <-chan struct{} { return c.done }

// Err implements context.Context: nil until cancelled, then the reason.
func (c *CancelContext) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		return nil
	}
	return c.err
}

// Value implements context.Context.
func (c *CancelContext) Value(key any) any { return nil }

// Reason returns the cancellation reason, or nil if not cancelled.
func (c *CancelContext) Reason() *types.TaskError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
