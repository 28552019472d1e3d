// Package clock provides the scheduler used for delayed one-shot tasks and
// a virtual implementation that tests advance by hand.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs f once after d. Scheduled tasks cannot be cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Clock is a Scheduler that also tells the time.
type Clock interface {
	Scheduler
	Now() time.Time
}

// Real is the wall clock. Tasks run on their own goroutine.
type Real struct{}

// Compile-time check that Real implements Clock.
var _ Clock = Real{}

// Now returns the current wall-clock time.
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine after d.
func (Real) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

type task struct {
	due time.Time
	seq uint64
	fn  func()
}

// Manual is a virtual clock. Time only moves when Advance is called, and due
// tasks run synchronously on the caller's goroutine.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks []task
}

// Compile-time check that Manual implements Clock.
var _ Clock = (*Manual)(nil)

// NewManual creates a virtual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc queues f to run once the virtual time reaches now+d.
func (m *Manual) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.tasks = append(m.tasks, task{due: m.now.Add(d), seq: m.seq, fn: f})
}

// Advance moves the clock forward by d, running every task that falls due in
// due-time order (scheduling order on ties). Tasks scheduled by a running
// task also run if they fall due within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		t, ok := m.popDueLocked(target)
		if !ok {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = t.due
		m.mu.Unlock()

		// Run outside the lock so the task may schedule more work.
		t.fn()
	}
}

// Pending returns the number of tasks still waiting.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// popDueLocked removes and returns the earliest task due at or before target.
// Must be called with lock held.
func (m *Manual) popDueLocked(target time.Time) (task, bool) {
	if len(m.tasks) == 0 {
		return task{}, false
	}
	sort.Slice(m.tasks, func(i, j int) bool {
		if m.tasks[i].due.Equal(m.tasks[j].due) {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].due.Before(m.tasks[j].due)
	})
	next := m.tasks[0]
	if next.due.After(target) {
		return task{}, false
	}
	m.tasks = m.tasks[1:]
	return next, true
}
