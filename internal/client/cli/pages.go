package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/spabook/internal/client/events"
	"github.com/dmitrijs2005/spabook/internal/client/models"
	"github.com/dmitrijs2005/spabook/internal/client/nav"
	"github.com/dmitrijs2005/spabook/internal/common"
)

// mount tears the current page down and makes p current.
func (a *App) mount(route string, p page) {
	a.mu.Lock()
	prev := a.current
	a.current = p
	a.route = route
	a.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
}

func (a *App) unmount() {
	a.mu.Lock()
	prev := a.current
	a.current = nil
	a.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
}

func (a *App) currentPage() page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Route returns the path of the page currently shown.
func (a *App) Route() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// onNavigate runs for every navigation, including the ones fired by page
// timers on their own goroutines.
func (a *App) onNavigate(v nav.Visit) {
	a.mount(v.Path, nil)
	printlnFn("->", v.Path)

	if v.Reload {
		a.reload(context.Background())
	}
}

// reload reinitialises application state from the session store and tells
// subscribers to drop what they derived from the old state.
func (a *App) reload(ctx context.Context) {
	creds, err := a.session.Load(ctx)
	switch {
	case err == nil:
		a.log.Info(ctx, "session restored", "user_id", creds.User.ID)
	case errors.Is(err, common.ErrNoSession):
		a.log.Debug(ctx, "no stored session")
	default:
		a.log.Error(ctx, "could not restore session", "error", err)
	}
	a.bus.Publish(ctx, events.Event{Topic: events.TopicSessionReloaded})
}

func (a *App) onUserVerified(ctx context.Context, e events.Event) {
	if u, ok := e.Payload.(models.User); ok {
		a.log.Info(ctx, "user verified", "email", u.Email)
	}
}

func (a *App) onDataRefresh(ctx context.Context, e events.Event) {
	resources, _ := e.Payload.([]string)
	a.log.Info(ctx, "data refresh requested", "resources", resources)
}
