package sched

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAfterFires(t *testing.T) {
	q := New()
	defer q.Close()

	done := make(chan struct{})
	q.After(10*time.Millisecond, false, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("action never fired")
	}
}

func TestAfterOrdering(t *testing.T) {
	q := New()
	defer q.Close()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(3)
	record := func(n int) func() {
		return func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			wg.Done()
		}
	}

	q.After(60*time.Millisecond, false, record(3))
	q.After(20*time.Millisecond, false, record(1))
	q.After(40*time.Millisecond, false, record(2))
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("actions fired out of order: %v", order)
	}
}

func TestCancelContinuousKeepsOneShots(t *testing.T) {
	q := New()
	defer q.Close()

	var oneShot, continuous atomic.Int32
	q.After(50*time.Millisecond, false, func() { oneShot.Add(1) })
	q.After(50*time.Millisecond, true, func() { continuous.Add(1) })
	q.After(50*time.Millisecond, true, func() { continuous.Add(1) })

	q.CancelContinuous()
	if q.Pending() != 1 {
		t.Fatalf("expected 1 pending one-shot, got %d", q.Pending())
	}

	time.Sleep(120 * time.Millisecond)
	if oneShot.Load() != 1 {
		t.Fatal("one-shot must survive CancelContinuous")
	}
	if continuous.Load() != 0 {
		t.Fatal("continuous actions must be dropped")
	}
}

func TestCloseDropsPending(t *testing.T) {
	q := New()
	var fired atomic.Int32
	q.After(30*time.Millisecond, false, func() { fired.Add(1) })
	q.Close()

	time.Sleep(80 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatal("closed queue must not fire pending actions")
	}
	// After on a closed queue is a no-op.
	q.After(time.Millisecond, false, func() { fired.Add(1) })
	if q.Pending() != 0 {
		t.Fatal("closed queue must reject new actions")
	}
}
