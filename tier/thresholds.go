package tier

import (
	"fmt"

	"github.com/nmxmxh/inos_effects/probe"
)

// Requirement is the minimum hardware for a tier. Both bounds must hold.
type Requirement struct {
	Cores    int     `yaml:"cores" json:"cores"`
	MemoryGB float64 `yaml:"memory_gb" json:"memory_gb"`
}

// Met reports whether the hardware reaches the requirement
func (r Requirement) Met(cores int, memoryGB float64) bool {
	return cores >= r.Cores && memoryGB >= r.MemoryGB
}

// AtLeast reports whether r is at least as strict as o on both bounds
func (r Requirement) AtLeast(o Requirement) bool {
	return r.Cores >= o.Cores && r.MemoryGB >= o.MemoryGB
}

func (r Requirement) String() string {
	return fmt.Sprintf("%d cores/%gGB", r.Cores, r.MemoryGB)
}

// Thresholds are the requirements for medium and high on one viewport class.
// Anything below Medium is low.
type Thresholds struct {
	Medium Requirement `yaml:"medium" json:"medium"`
	High   Requirement `yaml:"high" json:"high"`
}

// Policy holds the per-viewport thresholds. Mobile is the strictest.
type Policy struct {
	Mobile  Thresholds `yaml:"mobile" json:"mobile"`
	Tablet  Thresholds `yaml:"tablet" json:"tablet"`
	Desktop Thresholds `yaml:"desktop" json:"desktop"`
}

// DefaultPolicy returns the built-in thresholds
func DefaultPolicy() Policy {
	return Policy{
		Mobile: Thresholds{
			Medium: Requirement{Cores: 4, MemoryGB: 4},
			High:   Requirement{Cores: 8, MemoryGB: 8},
		},
		Tablet: Thresholds{
			Medium: Requirement{Cores: 4, MemoryGB: 3},
			High:   Requirement{Cores: 8, MemoryGB: 8},
		},
		Desktop: Thresholds{
			Medium: Requirement{Cores: 4, MemoryGB: 2},
			High:   Requirement{Cores: 8, MemoryGB: 8},
		},
	}
}

// For returns the thresholds of a viewport class
func (p Policy) For(class probe.ViewportClass) Thresholds {
	switch class {
	case probe.Mobile:
		return p.Mobile
	case probe.Tablet:
		return p.Tablet
	default:
		return p.Desktop
	}
}

// Validate checks the ordering rules: high is at least medium on every class,
// and a smaller viewport is never easier to promote than a larger one.
func (p Policy) Validate() []error {
	var errs []error
	for _, class := range probe.ViewportClasses {
		th := p.For(class)
		if th.Medium.Cores <= 0 || !(th.Medium.MemoryGB > 0) {
			errs = append(errs, fmt.Errorf("%s: medium requirement must be positive, got %s", class, th.Medium))
		}
		if !th.High.AtLeast(th.Medium) {
			errs = append(errs, fmt.Errorf("%s: high requirement %s is below medium %s", class, th.High, th.Medium))
		}
	}
	pairs := [][2]probe.ViewportClass{{probe.Mobile, probe.Tablet}, {probe.Tablet, probe.Desktop}}
	for _, pair := range pairs {
		small, large := p.For(pair[0]), p.For(pair[1])
		if !small.Medium.AtLeast(large.Medium) {
			errs = append(errs, fmt.Errorf("%s medium %s is easier than %s medium %s", pair[0], small.Medium, pair[1], large.Medium))
		}
		if !small.High.AtLeast(large.High) {
			errs = append(errs, fmt.Errorf("%s high %s is easier than %s high %s", pair[0], small.High, pair[1], large.High))
		}
	}
	return errs
}
