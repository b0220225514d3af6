// Package events is the in-process broadcast used by views to tell the rest
// of the client that something changed (a session was established, cached
// data is stale).
//
// Publish delivers synchronously, in subscription order, on the caller's
// goroutine. Handlers must not block.
package events

import (
	"context"
	"sync"
	"sync/atomic"
)

type Topic string

const (
	// TopicUserVerified carries the models.User of a freshly verified account.
	TopicUserVerified Topic = "user.verified"
	// TopicDataRefresh carries a []string of resource names to reload.
	TopicDataRefresh Topic = "data.refresh"
	// TopicSessionReloaded fires after the application state was reinitialised.
	TopicSessionReloaded Topic = "session.reloaded"
)

// Resource names used with TopicDataRefresh.
const (
	ResourceAppointments = "appointments"
	ResourceVouchers     = "vouchers"
	ResourceCatalog      = "catalog"
)

type Event struct {
	Topic   Topic
	Payload any
}

type Handler func(ctx context.Context, e Event)

// Publisher is what views depend on.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type subscription struct {
	id      uint64
	topic   Topic
	handler Handler
}

// Bus is a subscriber list keyed by topic.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
	closed atomic.Bool
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for topic and returns the function that removes it.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, topic: topic, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish is fire-and-forget. Events published after Close are dropped.
func (b *Bus) Publish(ctx context.Context, e Event) {
	if b == nil || b.closed.Load() {
		return
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.topic == e.Topic {
			handlers = append(handlers, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
}

// Close drops all subscribers.
func (b *Bus) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
}
