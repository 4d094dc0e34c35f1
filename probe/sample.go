package probe

import (
	"fmt"
	"strings"
)

// ViewportClass is the coarse device class derived from viewport width
type ViewportClass int

const (
	Mobile ViewportClass = iota
	Tablet
	Desktop
)

// ViewportClasses lists every class, smallest first
var ViewportClasses = []ViewportClass{Mobile, Tablet, Desktop}

func (v ViewportClass) String() string {
	switch v {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	case Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// ParseViewportClass parses "mobile", "tablet" or "desktop"
func ParseViewportClass(s string) (ViewportClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mobile":
		return Mobile, nil
	case "tablet":
		return Tablet, nil
	case "desktop":
		return Desktop, nil
	}
	return Desktop, fmt.Errorf("unknown viewport class %q", s)
}

func (v ViewportClass) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *ViewportClass) UnmarshalText(text []byte) error {
	parsed, err := ParseViewportClass(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ConnectionQuality is the coarse network class
type ConnectionQuality int

const (
	ConnectionFast ConnectionQuality = iota
	ConnectionSlow
)

func (c ConnectionQuality) String() string {
	if c == ConnectionSlow {
		return "slow"
	}
	return "fast"
}

func (c ConnectionQuality) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ConnectionQuality) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "slow":
		*c = ConnectionSlow
	case "fast", "":
		*c = ConnectionFast
	default:
		return fmt.Errorf("unknown connection quality %q", text)
	}
	return nil
}

// Breakpoints are the viewport widths (px) where a class begins.
// Anything below Tablet is mobile.
type Breakpoints struct {
	Tablet  int `yaml:"tablet" json:"tablet"`
	Desktop int `yaml:"desktop" json:"desktop"`
}

// DefaultBreakpoints: mobile < 768, tablet 768-1023, desktop >= 1024
var DefaultBreakpoints = Breakpoints{Tablet: 768, Desktop: 1024}

// Classify maps a viewport width to its class
func (b Breakpoints) Classify(width int) ViewportClass {
	switch {
	case width < b.Tablet:
		return Mobile
	case width < b.Desktop:
		return Tablet
	default:
		return Desktop
	}
}

// Signal defaults used when the host does not expose a value
const (
	DefaultCoreCount = 4
	DefaultMemoryGB  = 4.0
)

// Sample is an immutable snapshot of device capabilities taken at mount.
// Methods returning a Sample return a modified copy.
type Sample struct {
	ViewportWidth        int               `json:"viewport_width" yaml:"viewport_width"` // 0 when the host did not report one
	ViewportClass        ViewportClass     `json:"viewport_class" yaml:"viewport_class"`
	UserAgent            string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	CoreCount            int               `json:"core_count" yaml:"core_count"`
	MemoryGB             float64           `json:"memory_gb" yaml:"memory_gb"`
	GPUAccelerated       bool              `json:"gpu_accelerated" yaml:"gpu_accelerated"`
	PrefersReducedMotion bool              `json:"prefers_reduced_motion" yaml:"prefers_reduced_motion"`
	ConnectionQuality    ConnectionQuality `json:"connection_quality" yaml:"connection_quality"`
	BatteryConscious     bool              `json:"battery_conscious" yaml:"battery_conscious"`
}

// WithViewport returns a copy of the sample resized to width
func (s Sample) WithViewport(width int, bp Breakpoints) Sample {
	s.ViewportWidth = width
	s.ViewportClass = bp.Classify(width)
	return s
}

// WithReducedMotion returns a copy of the sample with the preference set
func (s Sample) WithReducedMotion(enabled bool) Sample {
	s.PrefersReducedMotion = enabled
	return s
}

// Normalized replaces non-positive hardware readings with the defaults so a
// hand-built sample never classifies on zero values.
func (s Sample) Normalized() Sample {
	if s.CoreCount <= 0 {
		s.CoreCount = DefaultCoreCount
	}
	if !(s.MemoryGB > 0) {
		s.MemoryGB = DefaultMemoryGB
	}
	return s
}
