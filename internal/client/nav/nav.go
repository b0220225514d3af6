// Package nav is the navigation seam between views and whatever hosts them.
package nav

import "sync"

type Options struct {
	// Reload asks the host to reinitialise application state (re-read the
	// session store, drop caches) instead of only switching views.
	Reload bool
}

type Navigator interface {
	NavigateTo(path string, opts Options)
}

type Visit struct {
	Path   string
	Reload bool
}

// History records every navigation and forwards it to an optional hook.
// It is safe for use from timer goroutines.
type History struct {
	mu         sync.Mutex
	visits     []Visit
	onNavigate func(Visit)
}

func NewHistory(onNavigate func(Visit)) *History {
	return &History{onNavigate: onNavigate}
}

func (h *History) NavigateTo(path string, opts Options) {
	v := Visit{Path: path, Reload: opts.Reload}

	h.mu.Lock()
	h.visits = append(h.visits, v)
	hook := h.onNavigate
	h.mu.Unlock()

	if hook != nil {
		hook(v)
	}
}

func (h *History) Visits() []Visit {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Visit(nil), h.visits...)
}

// Current returns the last visited path, or "" before any navigation.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.visits) == 0 {
		return ""
	}
	return h.visits[len(h.visits)-1].Path
}
