// Package payment drives the page shown after a successful checkout: it asks
// the rest of the client to reload bookings and vouchers, then counts down
// to the bookings page.
package payment

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/spabook/internal/client/events"
	"github.com/dmitrijs2005/spabook/internal/client/nav"
	"github.com/dmitrijs2005/spabook/internal/client/timer"
	"github.com/dmitrijs2005/spabook/internal/common"
	"github.com/dmitrijs2005/spabook/internal/logging"
)

const (
	CountdownSeconds = 5
	TickInterval     = time.Second
)

type Deps struct {
	Events    events.Publisher
	Navigator nav.Navigator
	Scheduler timer.Scheduler
	Logger    logging.Logger

	// OnTick receives the seconds left after every tick, 0 included.
	OnTick func(remaining int)
}

type Controller struct {
	events events.Publisher
	nav    nav.Navigator
	timers *timer.Group
	log    logging.Logger
	onTick func(int)

	mu        sync.Mutex
	remaining int
	next      timer.Handle
	mounted   bool
	finished  bool
	closed    bool
}

func New(d Deps) *Controller {
	log := d.Logger
	if log == nil {
		log = logging.Nop{}
	}
	return &Controller{
		events: d.Events,
		nav:    d.Navigator,
		timers: timer.NewGroup(d.Scheduler),
		log:    log.With("view", "payment-success"),
		onTick: d.OnTick,
	}
}

// Mount marks bookings and vouchers stale and starts the countdown.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return common.ErrClosed
	}
	if c.mounted {
		c.mu.Unlock()
		return common.ErrAlreadyStarted
	}
	c.mounted = true
	c.remaining = CountdownSeconds
	c.mu.Unlock()

	c.events.Publish(ctx, events.Event{
		Topic:   events.TopicDataRefresh,
		Payload: []string{events.ResourceAppointments, events.ResourceVouchers},
	})
	c.log.Info(ctx, "payment confirmed, refreshing bookings")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduleLocked()
	return nil
}

func (c *Controller) scheduleLocked() {
	if h, ok := c.timers.After(TickInterval, c.tick); ok {
		c.next = h
	}
}

func (c *Controller) tick() {
	c.mu.Lock()
	if c.closed || c.finished {
		c.mu.Unlock()
		return
	}
	c.remaining--
	left := c.remaining
	if left <= 0 {
		c.finished = true
	} else {
		c.scheduleLocked()
	}
	onTick := c.onTick
	c.mu.Unlock()

	if onTick != nil {
		onTick(left)
	}
	if left <= 0 {
		c.nav.NavigateTo(common.RouteAppointments, nav.Options{})
	}
}

// ViewBookings skips the rest of the countdown.
func (c *Controller) ViewBookings() error {
	return c.leave(common.RouteAppointments)
}

func (c *Controller) GoHome() error {
	return c.leave(common.RouteHome)
}

func (c *Controller) leave(path string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return common.ErrClosed
	}
	if c.finished {
		c.mu.Unlock()
		return common.ErrWrongState
	}
	c.finished = true
	next := c.next
	c.mu.Unlock()

	if next != nil {
		next.Cancel()
	}
	c.nav.NavigateTo(path, nav.Options{})
	return nil
}

// Remaining returns the seconds left on the countdown.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Close stops the countdown. Nothing navigates afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.timers.Close()
}
