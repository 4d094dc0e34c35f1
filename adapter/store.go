package adapter

import (
	"sync"
	"sync/atomic"

	"github.com/nmxmxh/inos_effects/budget"
	"github.com/nmxmxh/inos_effects/utils"
)

type subscription struct {
	id string
	fn func(budget.EffectsBudget)
}

// delivery is one publication waiting for its subscribers
type delivery struct {
	budget budget.EffectsBudget
	subs   []subscription
}

// Store is the single-writer, multi-reader home of the current budget.
// Every publication replaces the value wholesale, so readers never see a
// partially written budget.
//
// Publishing is split in two: Swap installs the value and queues it, Deliver
// calls subscribers with no lock held. A subscriber may therefore read the
// engine, publish again or close the store; deliveries stay in publish order.
type Store struct {
	current atomic.Pointer[budget.EffectsBudget]
	version atomic.Uint64

	mu         sync.Mutex // guards everything below
	subs       []subscription
	queue      []delivery
	delivering bool
	closed     bool

	logger *utils.Logger
}

// NewStore creates a store holding initial
func NewStore(initial budget.EffectsBudget, logger *utils.Logger) *Store {
	if logger == nil {
		logger = utils.NewNop()
	}
	s := &Store{logger: logger}
	s.current.Store(&initial)
	return s
}

// Load returns the current budget
func (s *Store) Load() budget.EffectsBudget {
	return *s.current.Load()
}

// Version counts publications
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// Subscribe registers fn to receive every subsequent publication.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(budget.EffectsBudget)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}

	id := utils.GenerateID()
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of live subscriptions
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Swap installs b and queues it for the current subscribers without
// calling them. It reports false once the store is closed.
func (s *Store) Swap(b budget.EffectsBudget) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.current.Store(&b)
	s.version.Add(1)
	if len(s.subs) > 0 {
		subs := make([]subscription, len(s.subs))
		copy(subs, s.subs)
		s.queue = append(s.queue, delivery{budget: b, subs: subs})
	}
	return true
}

// Deliver drains queued publications in order. If a delivery is already
// running further up the stack, or on another goroutine, Deliver returns
// at once and that run picks up the queue.
func (s *Store) Deliver() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true

	for len(s.queue) > 0 && !s.closed {
		d := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		for _, sub := range d.subs {
			if !s.active(sub.id) {
				continue
			}
			if err := utils.Safely(func() error { sub.fn(d.budget); return nil }); err != nil {
				s.logger.Warn("Budget subscriber panicked",
					utils.String("subscription", sub.id),
					utils.Err(err),
				)
			}
		}

		s.mu.Lock()
	}

	s.delivering = false
	s.mu.Unlock()
}

// Publish swaps b in and delivers it. It reports false once the store is closed.
func (s *Store) Publish(b budget.EffectsBudget) bool {
	if !s.Swap(b) {
		return false
	}
	s.Deliver()
	return true
}

// active reports whether the subscription is still registered
func (s *Store) active(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	for _, sub := range s.subs {
		if sub.id == id {
			return true
		}
	}
	return false
}

// Close drops every subscriber and pending delivery, and resets the value
// to reset without notifying anyone. Later publications are ignored. Close
// does not wait for a delivery in progress; that delivery stops before its
// next subscriber.
func (s *Store) Close(reset budget.EffectsBudget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
	s.queue = nil
	s.current.Store(&reset)
}
