// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pool

import (
	"time"

	"github.com/pdiddy/noteforge/pkg/types"
)

// queued is one submitted task with its pool-side bookkeeping.
type queued struct {
	task   types.ProcessingTask
	cancel *CancelContext

	// result is buffered so resolution never blocks the pool.
	result chan types.TaskResult

	// seq breaks priority ties in submission order.
	seq uint64

	// timer enforces the task timeout; nil when unbounded.
	timer *time.Timer

	// index is the heap position, maintained by taskQueue.
	index int
}

// taskQueue is a priority heap over queued tasks: higher priority first,
// submission order within a tier.
type taskQueue []*queued

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	ri, rj := q[i].task.Priority.Rank(), q[j].task.Priority.Rank()
	if ri != rj {
		return ri < rj
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	item := x.(*queued)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}
