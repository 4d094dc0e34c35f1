package budget

import (
	"fmt"

	"github.com/nmxmxh/inos_effects/tier"
)

// EffectsBudget is the rendering-cost ceiling every decorative consumer must
// respect. Values are replaced wholesale on every update; never mutate one
// that was handed out.
type EffectsBudget struct {
	ParticleCount         int       `json:"particle_count" yaml:"particle_count"`
	ParticleSize          float64   `json:"particle_size" yaml:"particle_size"`
	AnimationSpeed        float64   `json:"animation_speed" yaml:"animation_speed"`
	GPURenderingEnabled   bool      `json:"gpu_rendering_enabled" yaml:"gpu_rendering_enabled"`
	ComplexEffectsEnabled bool      `json:"complex_effects_enabled" yaml:"complex_effects_enabled"`
	Tier                  tier.Tier `json:"tier" yaml:"tier"`
}

// Default returns the conservative budget visible before the first probe
func Default() EffectsBudget {
	return EffectsBudget{
		ParticleCount:  40,
		ParticleSize:   2.0,
		AnimationSpeed: 0.75,
		Tier:           tier.Medium,
	}
}

// Map renders the budget as a plain map for host bridges
func (b EffectsBudget) Map() map[string]interface{} {
	return map[string]interface{}{
		"particleCount":         b.ParticleCount,
		"particleSize":          b.ParticleSize,
		"animationSpeed":        b.AnimationSpeed,
		"gpuRenderingEnabled":   b.GPURenderingEnabled,
		"complexEffectsEnabled": b.ComplexEffectsEnabled,
		"tier":                  b.Tier.String(),
	}
}

func (b EffectsBudget) String() string {
	return fmt.Sprintf("tier=%s particles=%d size=%g speed=%g gpu=%t complex=%t",
		b.Tier, b.ParticleCount, b.ParticleSize, b.AnimationSpeed,
		b.GPURenderingEnabled, b.ComplexEffectsEnabled)
}
