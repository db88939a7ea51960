// Package sched is a small deferred-action queue: a sorted set of
// (fire-time, action) pairs drained by one goroutine. Actions tagged
// continuous can be cancelled in bulk while pending one-shots run to
// completion, which is exactly the stop/reset contract the engine needs.
package sched

// #region imports
import (
	"container/heap"
	"sync"
	"time"
)

// #endregion

// #region types

type item struct {
	at         time.Time
	fn         func()
	continuous bool
	seq        uint64 // FIFO tie-break for equal fire times
}

type itemHeap []*item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)   { *h = append(*h, x.(*item)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// Queue schedules fire-and-forget actions after relative delays.
type Queue struct {
	mu     sync.Mutex
	items  itemHeap
	nextID uint64
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

// #endregion types

// #region constructor

// New starts the queue's single draining goroutine.
func New() *Queue {
	q := &Queue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go q.loop()
	return q
}

// #endregion constructor

// #region api

// After schedules fn to run once after d. Continuous actions are the subset
// that CancelContinuous drops; short one-shots are left to fire naturally.
// Delays ≤ 0 fire on the next drain pass. After never blocks on fn.
func (q *Queue) After(d time.Duration, continuous bool, fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.nextID++
	heap.Push(&q.items, &item{
		at:         time.Now().Add(d),
		fn:         fn,
		continuous: continuous,
		seq:        q.nextID,
	})
	q.mu.Unlock()
	q.kick()
}

// CancelContinuous drops every pending continuous action. Pending one-shots
// are untouched.
func (q *Queue) CancelContinuous() {
	q.mu.Lock()
	kept := q.items[:0]
	for _, it := range q.items {
		if !it.continuous {
			kept = append(kept, it)
		}
	}
	q.items = kept
	heap.Init(&q.items)
	q.mu.Unlock()
	q.kick()
}

// Pending reports how many actions are waiting to fire.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops the draining goroutine and discards pending actions.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.items = nil
	q.mu.Unlock()
	close(q.done)
}

// #endregion api

// #region loop

func (q *Queue) kick() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) loop() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		q.mu.Lock()
		var wait time.Duration
		ready := []*item{}
		now := time.Now()
		for len(q.items) > 0 && !q.items[0].at.After(now) {
			ready = append(ready, heap.Pop(&q.items).(*item))
		}
		if len(q.items) > 0 {
			wait = time.Until(q.items[0].at)
		} else {
			wait = time.Hour
		}
		q.mu.Unlock()

		for _, it := range ready {
			it.fn()
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-q.done:
			return
		case <-q.wake:
		case <-timer.C:
		}
	}
}

// #endregion loop
