package engine

import (
	"container/heap"
	"time"
)

// TaskFunc runs a scheduled task; a positive return value replaces the task's interval
type TaskFunc func(now time.Time) time.Duration

// Task is one repeating cadence owned by a Scheduler
type Task struct {
	Name     string
	interval time.Duration
	next     time.Time
	fn       TaskFunc
	seq      uint64 // insertion order, breaks deadline ties
	index    int    // heap position
}

// Interval returns the task's current period
func (t *Task) Interval() time.Duration {
	return t.interval
}

// Next returns the task's next due time
func (t *Task) Next() time.Time {
	return t.next
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].next.Equal(q[j].next) {
		return q[i].seq < q[j].seq
	}
	return q[i].next.Before(q[j].next)
}
func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler dispatches repeating tasks from a single goroutine, earliest deadline first
// It never spawns goroutines: the owner calls RunDue when the timer from Until expires
type Scheduler struct {
	clock  TimeProvider
	queue  taskQueue
	maxLag int
	seq    uint64
}

// NewScheduler creates a scheduler reading time from clock
// A task more than maxLag intervals behind is resynced to now+interval instead of bursting
func NewScheduler(clock TimeProvider, maxLag int) *Scheduler {
	if maxLag < 1 {
		maxLag = 1
	}
	return &Scheduler{
		clock:  clock,
		queue:  make(taskQueue, 0, 4),
		maxLag: maxLag,
	}
}

// Add registers a task first due one interval from now
// Non-positive intervals are raised to one millisecond
func (s *Scheduler) Add(name string, interval time.Duration, fn TaskFunc) *Task {
	if interval <= 0 {
		interval = time.Millisecond
	}
	s.seq++
	t := &Task{
		Name:     name,
		interval: interval,
		next:     s.clock.Now().Add(interval),
		fn:       fn,
		seq:      s.seq,
	}
	heap.Push(&s.queue, t)
	return t
}

// Reschedule changes a task's interval and makes it due one new interval from now
func (s *Scheduler) Reschedule(t *Task, interval time.Duration) {
	if interval > 0 {
		t.interval = interval
	}
	t.next = s.clock.Now().Add(t.interval)
	heap.Fix(&s.queue, t.index)
}

// Until returns the wait before the earliest task is due, zero if one is overdue, -1 with no tasks
func (s *Scheduler) Until() time.Duration {
	if len(s.queue) == 0 {
		return -1
	}
	d := s.queue[0].next.Sub(s.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

// RunDue fires every task whose deadline has passed, earliest first, and returns the number of firings
// Each task runs to completion before the next is considered
func (s *Scheduler) RunDue() int {
	now := s.clock.Now()
	fired := 0
	for len(s.queue) > 0 {
		t := s.queue[0]
		if t.next.After(now) {
			break
		}

		if d := t.fn(now); d > 0 {
			t.interval = d
		}
		fired++

		// Drift correction: next deadline is relative to the missed one
		t.next = t.next.Add(t.interval)
		if now.Sub(t.next) > t.interval*time.Duration(s.maxLag) {
			t.next = now.Add(t.interval)
		}
		heap.Fix(&s.queue, t.index)
	}
	return fired
}
