package host

import (
	"sync"

	"github.com/nmxmxh/inos_effects/probe"
)

type listener[T any] struct {
	id uint64
	fn func(T)
}

// listeners is an ordered set of callbacks
type listeners[T any] struct {
	entries []listener[T]
}

func (l *listeners[T]) add(id uint64, fn func(T)) {
	l.entries = append(l.entries, listener[T]{id: id, fn: fn})
}

func (l *listeners[T]) remove(id uint64) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *listeners[T]) snapshot() []func(T) {
	fns := make([]func(T), len(l.entries))
	for i, e := range l.entries {
		fns[i] = e.fn
	}
	return fns
}

// Simulated is an in-process host. Events fire synchronously on the caller's
// goroutine in registration order, the way a browser delivers them.
type Simulated struct {
	mu     sync.Mutex
	source probe.StaticSource
	resize listeners[int]
	motion listeners[bool]
	nextID uint64

	// SubscribeErr, when set, makes every On* registration fail
	SubscribeErr error
}

// NewSimulated creates a host serving sig
func NewSimulated(sig probe.Signals) *Simulated {
	return &Simulated{source: probe.StaticSource{Signals: sig}}
}

// Resize changes the viewport width and notifies resize listeners
func (s *Simulated) Resize(width int) {
	s.mu.Lock()
	s.source.Signals.ViewportWidth = probe.Ptr(width)
	fns := s.resize.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(width)
	}
}

// SetReducedMotion changes the preference and notifies its listeners
func (s *Simulated) SetReducedMotion(enabled bool) {
	s.mu.Lock()
	s.source.Signals.ReducedMotion = probe.Ptr(enabled)
	fns := s.motion.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(enabled)
	}
}

// ListenerCount returns the number of attached resize and reduced-motion listeners
func (s *Simulated) ListenerCount() (resize, motion int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resize.entries), len(s.motion.entries)
}

func (s *Simulated) OnResize(fn func(width int)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SubscribeErr != nil {
		return nil, s.SubscribeErr
	}
	s.nextID++
	id := s.nextID
	s.resize.add(id, fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.resize.remove(id)
	}, nil
}

func (s *Simulated) OnReducedMotionChange(fn func(enabled bool)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SubscribeErr != nil {
		return nil, s.SubscribeErr
	}
	s.nextID++
	id := s.nextID
	s.motion.add(id, fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.motion.remove(id)
	}, nil
}

func (s *Simulated) ViewportWidth() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source.ViewportWidth()
}

func (s *Simulated) UserAgent() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source.UserAgent()
}

func (s *Simulated) GPUContext() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source.GPUContext()
}

func (s *Simulated) PrefersReducedMotion() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source.PrefersReducedMotion()
}

func (s *Simulated) HardwareConcurrency() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source.HardwareConcurrency()
}

func (s *Simulated) DeviceMemory() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source.DeviceMemory()
}

func (s *Simulated) EffectiveConnectionType() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source.EffectiveConnectionType()
}

func (s *Simulated) BatterySaver() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source.BatterySaver()
}
