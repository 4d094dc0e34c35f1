package probe

// Signals is a fixed set of raw readings. A nil field means the host does
// not expose that signal.
type Signals struct {
	ViewportWidth       *int     `yaml:"viewport_width,omitempty" json:"viewport_width,omitempty"`
	UserAgent           *string  `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	GPU                 *bool    `yaml:"gpu,omitempty" json:"gpu,omitempty"`
	ReducedMotion       *bool    `yaml:"reduced_motion,omitempty" json:"reduced_motion,omitempty"`
	HardwareConcurrency *int     `yaml:"hardware_concurrency,omitempty" json:"hardware_concurrency,omitempty"`
	DeviceMemory        *float64 `yaml:"device_memory,omitempty" json:"device_memory,omitempty"`
	EffectiveType       *string  `yaml:"effective_type,omitempty" json:"effective_type,omitempty"`
	SaveData            *bool    `yaml:"save_data,omitempty" json:"save_data,omitempty"`

	// GPUErr simulates a detection failure
	GPUErr error `yaml:"-" json:"-"`
}

// StaticSource serves Signals as a Source
type StaticSource struct {
	Signals Signals
}

// NewStaticSource wraps sig as a Source
func NewStaticSource(sig Signals) *StaticSource {
	return &StaticSource{Signals: sig}
}

func (s *StaticSource) ViewportWidth() (int, bool) {
	return deref(s.Signals.ViewportWidth)
}

func (s *StaticSource) UserAgent() (string, bool) {
	return deref(s.Signals.UserAgent)
}

func (s *StaticSource) GPUContext() (bool, error) {
	if s.Signals.GPUErr != nil {
		return false, s.Signals.GPUErr
	}
	v, _ := deref(s.Signals.GPU)
	return v, nil
}

func (s *StaticSource) PrefersReducedMotion() (bool, bool) {
	return deref(s.Signals.ReducedMotion)
}

func (s *StaticSource) HardwareConcurrency() (int, bool) {
	return deref(s.Signals.HardwareConcurrency)
}

func (s *StaticSource) DeviceMemory() (float64, bool) {
	return deref(s.Signals.DeviceMemory)
}

func (s *StaticSource) EffectiveConnectionType() (string, bool) {
	return deref(s.Signals.EffectiveType)
}

func (s *StaticSource) BatterySaver() (bool, bool) {
	return deref(s.Signals.SaveData)
}

// Ptr is a helper for building Signals literals
func Ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
