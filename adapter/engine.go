package adapter

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nmxmxh/inos_effects/budget"
	"github.com/nmxmxh/inos_effects/config"
	"github.com/nmxmxh/inos_effects/host"
	"github.com/nmxmxh/inos_effects/probe"
	"github.com/nmxmxh/inos_effects/tier"
	"github.com/nmxmxh/inos_effects/utils"
)

// State represents the lifecycle state of the engine
type State int32

const (
	StateUninitialized State = iota
	StateProbed
	StateLive
	StateUnmounted
)

var stateNames = map[State]string{
	StateUninitialized: "UNINITIALIZED",
	StateProbed:        "PROBED",
	StateLive:          "LIVE",
	StateUnmounted:     "UNMOUNTED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE(%d)", int32(s))
}

var (
	// ErrAlreadyMounted is returned by Mount on a mounted engine
	ErrAlreadyMounted = errors.New("effects engine already mounted")
	// ErrUnmounted is returned by Mount after Unmount
	ErrUnmounted = errors.New("effects engine unmounted")
)

// Event causes reported in logs and metrics
const (
	CauseProbe         = "probe"
	CauseResize        = "resize"
	CauseReducedMotion = "reduced_motion"
)

// Option configures an Engine
type Option func(*Engine)

// WithPolicy replaces the built-in policy
func WithPolicy(p *config.Policy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policy = p
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(l *utils.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics attaches Prometheus instrumentation
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine owns the effects budget of one hosting page. It probes once on
// Mount, keeps the budget current on resize and reduced-motion changes, and
// releases its listeners on Unmount.
type Engine struct {
	state atomic.Int32

	env        host.Environment
	policy     *config.Policy
	prober     *probe.Prober
	classifier *tier.Classifier
	deriver    *budget.Deriver

	store    *Store
	teardown *utils.Teardown
	logger   *utils.Logger
	metrics  *Metrics

	// mu guards sample and orders event handling against Unmount
	mu     sync.Mutex
	sample probe.Sample
}

// New creates an unmounted engine for env. Budget() returns the default
// budget until Mount.
func New(env host.Environment, opts ...Option) *Engine {
	e := &Engine{
		env:    env,
		policy: config.Default(),
		logger: utils.DefaultLogger("effects"),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.prober = e.policy.Prober(e.logger.Named("probe"))
	e.classifier = e.policy.Classifier()
	e.deriver = e.policy.Deriver()
	e.store = NewStore(budget.Default(), e.logger.Named("store"))
	e.teardown = utils.NewTeardown(e.logger.Named("teardown"))

	e.setState(StateUninitialized)
	return e
}

// Mount probes the environment, publishes the first budget and attaches the
// resize and reduced-motion listeners. A listener that cannot be attached
// is logged; the engine still goes live. Subscribers see the first budget
// once the engine is live.
func (e *Engine) Mount() error {
	if !e.transitionState(StateUninitialized, StateProbed) {
		if e.State() == StateUnmounted {
			return ErrUnmounted
		}
		return ErrAlreadyMounted
	}

	start := time.Now()
	sample := e.prober.Probe(e.env)
	probeTime := time.Since(start)

	e.mu.Lock()
	if e.State() == StateUnmounted {
		e.mu.Unlock()
		return ErrUnmounted
	}
	e.sample = sample
	e.publishLocked(sample, CauseProbe)
	e.mu.Unlock()

	e.attach(CauseResize, func() (func(), error) {
		return e.env.OnResize(e.handleResize)
	})
	e.attach(CauseReducedMotion, func() (func(), error) {
		return e.env.OnReducedMotionChange(e.handleReducedMotion)
	})

	if !e.transitionState(StateProbed, StateLive) {
		return ErrUnmounted
	}

	e.logger.Info("Effects engine live",
		utils.Stringer("tier", e.Budget().Tier),
		utils.Stringer("viewport", sample.ViewportClass),
		utils.Duration("probe_time", probeTime),
	)

	e.store.Deliver()
	return nil
}

func (e *Engine) attach(event string, subscribe func() (func(), error)) {
	var cancel func()
	err := utils.Safely(func() error {
		var err error
		cancel, err = subscribe()
		return err
	})
	if err != nil {
		e.logger.Warn("Environment listener unavailable",
			utils.String("event", event),
			utils.Err(err),
		)
		e.metrics.listenerFailed(event)
		return
	}
	if cancel == nil {
		return
	}
	if err := e.teardown.Register(func() error { cancel(); return nil }); err != nil {
		e.logger.Warn("Late listener release failed", utils.String("event", event), utils.Err(err))
	}
}

// Unmount detaches every listener, drops subscribers and resets the budget
// to the default. No publication happens after Unmount returns. Calling it
// again is a no-op.
func (e *Engine) Unmount() error {
	e.mu.Lock()
	prev := State(e.state.Swap(int32(StateUnmounted)))
	e.mu.Unlock()

	if prev == StateUnmounted {
		return nil
	}

	err := e.teardown.Run()
	e.store.Close(budget.Default())

	e.logger.Info("Effects engine unmounted", utils.Stringer("from", prev))
	return err
}

// Budget returns the current budget
func (e *Engine) Budget() budget.EffectsBudget {
	return e.store.Load()
}

// Subscribe calls fn with every budget published after this call
func (e *Engine) Subscribe(fn func(budget.EffectsBudget)) (unsubscribe func()) {
	return e.store.Subscribe(fn)
}

// Sample returns the last known capability sample
func (e *Engine) Sample() probe.Sample {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sample
}

// Decision explains the tier of the last known sample
func (e *Engine) Decision() tier.Decision {
	return e.classifier.Explain(e.Sample())
}

// Version counts budget publications
func (e *Engine) Version() uint64 {
	return e.store.Version()
}

// Policy returns the policy the engine was built with
func (e *Engine) Policy() *config.Policy {
	return e.policy
}

func (e *Engine) handleResize(width int) {
	e.handle(CauseResize, func() error {
		if width <= 0 {
			return fmt.Errorf("resize reported width %d", width)
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.State() == StateUnmounted {
			return nil
		}

		next := e.sample.WithViewport(width, e.prober.Breakpoints())
		crossed := next.ViewportClass != e.sample.ViewportClass
		e.sample = next
		if crossed {
			e.publishLocked(next, CauseResize)
		}
		return nil
	})
}

func (e *Engine) handleReducedMotion(enabled bool) {
	e.handle(CauseReducedMotion, func() error {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.State() == StateUnmounted {
			return nil
		}
		if e.sample.PrefersReducedMotion == enabled {
			return nil
		}

		e.sample = e.sample.WithReducedMotion(enabled)
		e.publishLocked(e.sample, CauseReducedMotion)
		return nil
	})
}

// handle contains failures of a listener run: the last good budget stays
// and nothing propagates to the host's event loop. Subscribers are called
// after fn returns, with e.mu released.
func (e *Engine) handle(event string, fn func() error) {
	if e.State() == StateUnmounted {
		return
	}
	if err := utils.Safely(fn); err != nil {
		e.logger.Warn("Environment change ignored, keeping last budget",
			utils.String("event", event),
			utils.Err(err),
		)
		e.metrics.listenerFailed(event)
	}
	e.store.Deliver()
}

// publishLocked reclassifies s and swaps the derived budget into the store.
// e.mu must be held; delivery to subscribers happens after it is released.
func (e *Engine) publishLocked(s probe.Sample, cause string) {
	d := e.classifier.Explain(s)
	b := e.deriver.Derive(budget.InputFrom(s, d.Tier))

	if !e.store.Swap(b) {
		return
	}
	e.metrics.observe(b, cause)

	e.logger.Debug("Budget published",
		utils.String("cause", cause),
		utils.Uint64("version", e.store.Version()),
		utils.Stringer("base_tier", d.Base),
		utils.Stringer("tier", b.Tier),
		utils.Bool("reduced_motion", d.ReducedMotion),
		utils.Bool("dampened", d.Dampened),
		utils.Stringer("viewport", s.ViewportClass),
		utils.Int("particles", b.ParticleCount),
		utils.Float64("speed", b.AnimationSpeed),
		utils.Bool("gpu", b.GPURenderingEnabled),
		utils.Bool("complex", b.ComplexEffectsEnabled),
	)
}

// State returns the current lifecycle state
func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
}

func (e *Engine) transitionState(from, to State) bool {
	return e.state.CompareAndSwap(int32(from), int32(to))
}
