package tier

import "github.com/nmxmxh/inos_effects/probe"

// Decision records how a tier was reached
type Decision struct {
	Base          Tier `json:"base" yaml:"base"`
	Tier          Tier `json:"tier" yaml:"tier"`
	ReducedMotion bool `json:"reduced_motion" yaml:"reduced_motion"`
	Dampened      bool `json:"dampened" yaml:"dampened"`
}

// Classifier maps a capability sample to a tier. It holds no mutable state.
type Classifier struct {
	policy Policy
}

// NewClassifier creates a classifier over the given thresholds
func NewClassifier(policy Policy) *Classifier {
	return &Classifier{policy: policy}
}

var defaultClassifier = NewClassifier(DefaultPolicy())

// Classify classifies s with the default thresholds
func Classify(s probe.Sample) Tier {
	return defaultClassifier.Classify(s)
}

// Classify returns the tier for s
func (c *Classifier) Classify(s probe.Sample) Tier {
	return c.Explain(s).Tier
}

// Base returns the hardware-only tier for s, before any override
func (c *Classifier) Base(s probe.Sample) Tier {
	s = s.Normalized()
	th := c.policy.For(s.ViewportClass)

	switch {
	case th.High.Met(s.CoreCount, s.MemoryGB):
		return High
	case th.Medium.Met(s.CoreCount, s.MemoryGB):
		return Medium
	default:
		return Low
	}
}

// Explain classifies s and reports which rules applied.
//  1. base tier from viewport-specific thresholds
//  2. reduced motion forces low and stops
//  3. missing GPU or a slow connection downgrades one step
func (c *Classifier) Explain(s probe.Sample) Decision {
	d := Decision{Base: c.Base(s)}
	d.Tier = d.Base

	if s.PrefersReducedMotion {
		d.ReducedMotion = true
		d.Tier = Low
		return d
	}

	if !s.GPUAccelerated || s.ConnectionQuality == probe.ConnectionSlow {
		d.Dampened = true
		d.Tier = d.Tier.Downgrade()
	}
	return d
}
