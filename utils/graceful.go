package utils

import (
	"sync"

	"go.uber.org/multierr"
)

// Teardown collects release functions and runs them exactly once, in reverse
// registration order.
type Teardown struct {
	mu      sync.Mutex
	release []func() error
	done    bool
	logger  *Logger
}

// NewTeardown creates a new teardown registry
func NewTeardown(logger *Logger) *Teardown {
	if logger == nil {
		logger = DefaultLogger("teardown")
	}

	return &Teardown{
		release: make([]func() error, 0, 2),
		logger:  logger,
	}
}

// Register registers a release function. Registering after Run executes fn
// immediately so nothing is left attached.
func (t *Teardown) Register(fn func() error) error {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return Safely(fn)
	}
	t.release = append(t.release, fn)
	t.mu.Unlock()
	return nil
}

// Len returns the number of pending release functions
func (t *Teardown) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.release)
}

// Run executes all registered release functions (LIFO). Every function runs
// even when an earlier one fails; the failures are combined.
func (t *Teardown) Run() error {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return nil
	}
	t.done = true
	release := t.release
	t.release = nil
	t.mu.Unlock()

	t.logger.Debug("Running teardown", Int("components", len(release)))

	var errs error
	for i := len(release) - 1; i >= 0; i-- {
		if err := Safely(release[i]); err != nil {
			t.logger.Warn("Release function failed",
				Int("index", i),
				Err(err),
			)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
