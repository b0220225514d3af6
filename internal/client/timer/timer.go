// Package timer models delayed view actions (auto-redirects, countdowns) as
// explicit handles so the owning view can cancel them on teardown.
package timer

import (
	"sync"
	"time"
)

// Handle is a scheduled action. Cancel reports whether it stopped the action
// before it ran.
type Handle interface {
	Cancel() bool
}

// Scheduler runs fn once after d on its own goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Real schedules on the runtime timer.
type Real struct{}

func (Real) AfterFunc(d time.Duration, fn func()) Handle {
	return realHandle{t: time.AfterFunc(d, fn)}
}

type realHandle struct {
	t *time.Timer
}

func (h realHandle) Cancel() bool { return h.t.Stop() }

// Group owns every action a view schedules. Close cancels the pending ones
// and guarantees none of them runs afterwards, even if its timer already
// fired and the callback is waiting to start.
type Group struct {
	s Scheduler

	mu      sync.Mutex
	pending map[*entry]struct{}
	closed  bool
}

type entry struct {
	g      *Group
	handle Handle
}

func NewGroup(s Scheduler) *Group {
	if s == nil {
		s = Real{}
	}
	return &Group{s: s, pending: make(map[*entry]struct{})}
}

// After schedules fn. It returns false when the group is already closed.
func (g *Group) After(d time.Duration, fn func()) (Handle, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil, false
	}

	e := &entry{g: g}
	g.pending[e] = struct{}{}
	e.handle = g.s.AfterFunc(d, func() {
		if g.take(e) {
			fn()
		}
	})
	return e, true
}

// take removes e and reports whether it may still run.
func (g *Group) take(e *entry) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	if _, ok := g.pending[e]; !ok {
		return false
	}
	delete(g.pending, e)
	return true
}

func (e *entry) Cancel() bool {
	e.g.mu.Lock()
	_, ok := e.g.pending[e]
	delete(e.g.pending, e)
	e.g.mu.Unlock()
	if !ok {
		return false
	}
	e.handle.Cancel()
	return true
}

// Pending returns the number of actions that have not run or been cancelled.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// Close cancels everything still pending. It is idempotent.
func (g *Group) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	pending := g.pending
	g.pending = make(map[*entry]struct{})
	g.mu.Unlock()

	for e := range pending {
		e.handle.Cancel()
	}
}
