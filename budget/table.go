package budget

import (
	"fmt"

	"github.com/nmxmxh/inos_effects/probe"
	"github.com/nmxmxh/inos_effects/tier"
)

// Row holds the scalar budget values of one (tier, viewport) cell
type Row struct {
	ParticleCount  int     `yaml:"particle_count" json:"particle_count"`
	ParticleSize   float64 `yaml:"particle_size" json:"particle_size"`
	AnimationSpeed float64 `yaml:"animation_speed" json:"animation_speed"`
}

// dominates reports whether r is at least o on every scalar
func (r Row) dominates(o Row) bool {
	return r.ParticleCount >= o.ParticleCount &&
		r.ParticleSize >= o.ParticleSize &&
		r.AnimationSpeed >= o.AnimationSpeed
}

// Rows are the three tier rows of one viewport class
type Rows struct {
	Low    Row `yaml:"low" json:"low"`
	Medium Row `yaml:"medium" json:"medium"`
	High   Row `yaml:"high" json:"high"`
}

// For returns the row of a tier
func (r Rows) For(t tier.Tier) Row {
	switch t {
	case tier.High:
		return r.High
	case tier.Medium:
		return r.Medium
	default:
		return r.Low
	}
}

// Table is the (tier, viewport) lookup table
type Table struct {
	Mobile  Rows `yaml:"mobile" json:"mobile"`
	Tablet  Rows `yaml:"tablet" json:"tablet"`
	Desktop Rows `yaml:"desktop" json:"desktop"`
}

// DefaultTable returns the built-in budget table
func DefaultTable() Table {
	return Table{
		Mobile: Rows{
			Low:    Row{ParticleCount: 15, ParticleSize: 1.5, AnimationSpeed: 0.5},
			Medium: Row{ParticleCount: 40, ParticleSize: 2.0, AnimationSpeed: 0.75},
			High:   Row{ParticleCount: 80, ParticleSize: 2.5, AnimationSpeed: 1.0},
		},
		Tablet: Rows{
			Low:    Row{ParticleCount: 20, ParticleSize: 1.5, AnimationSpeed: 0.6},
			Medium: Row{ParticleCount: 60, ParticleSize: 2.0, AnimationSpeed: 0.85},
			High:   Row{ParticleCount: 120, ParticleSize: 2.5, AnimationSpeed: 1.0},
		},
		Desktop: Rows{
			Low:    Row{ParticleCount: 20, ParticleSize: 2.0, AnimationSpeed: 0.6},
			Medium: Row{ParticleCount: 100, ParticleSize: 2.5, AnimationSpeed: 1.0},
			High:   Row{ParticleCount: 200, ParticleSize: 3.0, AnimationSpeed: 1.2},
		},
	}
}

// Rows returns the rows of a viewport class
func (t Table) Rows(class probe.ViewportClass) Rows {
	switch class {
	case probe.Mobile:
		return t.Mobile
	case probe.Tablet:
		return t.Tablet
	default:
		return t.Desktop
	}
}

// Lookup returns the cell for (tier, viewport)
func (t Table) Lookup(tr tier.Tier, class probe.ViewportClass) Row {
	return t.Rows(class).For(tr)
}

// Validate checks that every cell is positive, that rows never shrink as the
// tier rises, and that low rows fit under the reduced-motion cap.
func (t Table) Validate(reducedMotionCap int) []error {
	var errs []error
	for _, class := range probe.ViewportClasses {
		rows := t.Rows(class)
		for _, tr := range tier.Tiers {
			row := rows.For(tr)
			if row.ParticleCount < 0 || !(row.ParticleSize > 0) || !(row.AnimationSpeed > 0) {
				errs = append(errs, fmt.Errorf("%s/%s: values must be positive, got %+v", class, tr, row))
			}
		}
		if !rows.Medium.dominates(rows.Low) {
			errs = append(errs, fmt.Errorf("%s: medium row %+v is below low row %+v", class, rows.Medium, rows.Low))
		}
		if !rows.High.dominates(rows.Medium) {
			errs = append(errs, fmt.Errorf("%s: high row %+v is below medium row %+v", class, rows.High, rows.Medium))
		}
		if rows.Low.ParticleCount > reducedMotionCap {
			errs = append(errs, fmt.Errorf("%s: low particle count %d exceeds reduced-motion cap %d", class, rows.Low.ParticleCount, reducedMotionCap))
		}
	}
	return errs
}
