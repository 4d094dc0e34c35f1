// Package host defines the page environment the engine runs in: a one-shot
// signal source plus push notifications for the two signals that may change
// while the page is mounted.
package host

import "github.com/nmxmxh/inos_effects/probe"

// Environment is the host page seen by the engine
type Environment interface {
	probe.Source

	// OnResize registers fn for viewport width changes. cancel detaches it.
	OnResize(fn func(width int)) (cancel func(), err error)

	// OnReducedMotionChange registers fn for prefers-reduced-motion changes.
	OnReducedMotionChange(fn func(enabled bool)) (cancel func(), err error)
}
