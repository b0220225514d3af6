// Package timertest provides a manually driven timer.Scheduler for tests.
package timertest

import (
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/spabook/internal/client/timer"
)

// Scheduler fires callbacks synchronously from Advance, in due order.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*task
}

type task struct {
	s     *Scheduler
	due   time.Duration
	seq   int
	fn    func()
	done  bool
	delay time.Duration
}

func New() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) timer.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &task{s: s, due: s.now + d, seq: s.seq, fn: fn, delay: d}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *task) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// Advance moves the clock forward by d and runs every task that became due,
// including tasks scheduled by callbacks within the window.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		next.done = true
		s.now = next.due
		s.mu.Unlock()

		next.fn()
	}
}

func (s *Scheduler) nextDue(target time.Duration) *task {
	var due []*task
	for _, t := range s.tasks {
		if !t.done && t.due <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})
	return due[0]
}

// Pending returns the delays of tasks that have neither fired nor been cancelled.
func (s *Scheduler) Pending() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []time.Duration
	for _, t := range s.tasks {
		if !t.done {
			out = append(out, t.delay)
		}
	}
	return out
}

// Scheduled returns the number of tasks ever scheduled.
func (s *Scheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
