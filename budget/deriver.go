package budget

import (
	"math"

	"github.com/nmxmxh/inos_effects/probe"
	"github.com/nmxmxh/inos_effects/tier"
)

const (
	// DefaultBatteryFactor scales mobile particle counts when the device is saving power
	DefaultBatteryFactor = 0.7
	// DefaultReducedMotionCap is the particle ceiling under reduced motion
	DefaultReducedMotionCap = 20
)

// Input is everything the deriver needs; it never looks at raw signals
type Input struct {
	Tier             tier.Tier
	Viewport         probe.ViewportClass
	GPUAccelerated   bool
	BatteryConscious bool
	ReducedMotion    bool
}

// InputFrom builds the deriver input for a classified sample
func InputFrom(s probe.Sample, t tier.Tier) Input {
	return Input{
		Tier:             t,
		Viewport:         s.ViewportClass,
		GPUAccelerated:   s.GPUAccelerated,
		BatteryConscious: s.BatteryConscious,
		ReducedMotion:    s.PrefersReducedMotion,
	}
}

// Deriver maps a tier and viewport class to a concrete budget
type Deriver struct {
	table            Table
	batteryFactor    float64
	reducedMotionCap int
}

// NewDeriver creates a deriver
func NewDeriver(table Table, batteryFactor float64, reducedMotionCap int) *Deriver {
	return &Deriver{
		table:            table,
		batteryFactor:    batteryFactor,
		reducedMotionCap: reducedMotionCap,
	}
}

var defaultDeriver = NewDeriver(DefaultTable(), DefaultBatteryFactor, DefaultReducedMotionCap)

// Derive derives a budget with the built-in table
func Derive(in Input) EffectsBudget {
	return defaultDeriver.Derive(in)
}

// Derive is a pure lookup followed by the battery and reduced-motion adjustments
func (d *Deriver) Derive(in Input) EffectsBudget {
	if in.ReducedMotion {
		in.Tier = tier.Low
	}

	row := d.table.Lookup(in.Tier, in.Viewport)
	accelerated := in.Tier >= tier.Medium && in.GPUAccelerated

	b := EffectsBudget{
		ParticleCount:         row.ParticleCount,
		ParticleSize:          row.ParticleSize,
		AnimationSpeed:        row.AnimationSpeed,
		GPURenderingEnabled:   accelerated,
		ComplexEffectsEnabled: accelerated,
		Tier:                  in.Tier,
	}

	if in.BatteryConscious && in.Viewport == probe.Mobile {
		b.ParticleCount = int(math.Floor(float64(b.ParticleCount) * d.batteryFactor))
		b.GPURenderingEnabled = false
	}

	if in.ReducedMotion {
		b.ComplexEffectsEnabled = false
		if b.ParticleCount > d.reducedMotionCap {
			b.ParticleCount = d.reducedMotionCap
		}
	}

	return b
}
