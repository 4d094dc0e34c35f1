package probe

import (
	"errors"

	"github.com/nmxmxh/inos_effects/utils"
)

// Source reads raw environment signals. Every method reports whether the
// host exposed the value; implementations may panic on unexpected host API
// shapes and Prober will contain it.
type Source interface {
	ViewportWidth() (int, bool)
	UserAgent() (string, bool)
	// GPUContext reports whether a GPU rendering context could be created.
	// An error means detection itself failed.
	GPUContext() (bool, error)
	PrefersReducedMotion() (bool, bool)
	HardwareConcurrency() (int, bool)
	DeviceMemory() (float64, bool)
	EffectiveConnectionType() (string, bool)
	BatterySaver() (bool, bool)
}

// Prober turns a Source into a Sample
type Prober struct {
	breakpoints Breakpoints
	logger      *utils.Logger
}

// NewProber creates a prober using the given viewport breakpoints
func NewProber(bp Breakpoints, logger *utils.Logger) *Prober {
	if logger == nil {
		logger = utils.NewNop()
	}
	return &Prober{breakpoints: bp, logger: logger}
}

// Probe samples src with the default breakpoints
func Probe(src Source) Sample {
	return NewProber(DefaultBreakpoints, nil).Probe(src)
}

// Breakpoints returns the breakpoints used to classify viewports
func (p *Prober) Breakpoints() Breakpoints {
	return p.breakpoints
}

// Probe reads every signal once. It never fails: any unavailable or
// panicking read resolves to the documented default.
func (p *Prober) Probe(src Source) Sample {
	s := Sample{
		ViewportClass:     Desktop,
		CoreCount:         DefaultCoreCount,
		MemoryGB:          DefaultMemoryGB,
		ConnectionQuality: ConnectionFast,
	}

	if ua, ok := read(p, "user_agent", src.UserAgent); ok {
		s.UserAgent = ua
	}

	if width, ok := read(p, "viewport_width", src.ViewportWidth); ok && width > 0 {
		s = s.WithViewport(width, p.breakpoints)
	} else if class, ok := ClassFromUserAgent(s.UserAgent); ok {
		s.ViewportClass = class
	}

	if cores, ok := read(p, "hardware_concurrency", src.HardwareConcurrency); ok && cores > 0 {
		s.CoreCount = cores
	}

	if mem, ok := read(p, "device_memory", src.DeviceMemory); ok && mem > 0 {
		s.MemoryGB = mem
	}

	s.GPUAccelerated = p.detectGPU(src)

	if reduced, ok := read(p, "prefers_reduced_motion", src.PrefersReducedMotion); ok {
		s.PrefersReducedMotion = reduced
	}

	if et, ok := read(p, "effective_type", src.EffectiveConnectionType); ok {
		s.ConnectionQuality = ConnectionFromEffectiveType(et)
	}

	if saver, ok := read(p, "battery_saver", src.BatterySaver); ok {
		s.BatteryConscious = saver
	}

	p.logger.Info("Capability probe complete",
		utils.Stringer("viewport", s.ViewportClass),
		utils.Int("width", s.ViewportWidth),
		utils.Int("cores", s.CoreCount),
		utils.Float64("memory_gb", s.MemoryGB),
		utils.Bool("gpu", s.GPUAccelerated),
		utils.Bool("reduced_motion", s.PrefersReducedMotion),
		utils.Stringer("connection", s.ConnectionQuality),
		utils.Bool("battery_conscious", s.BatteryConscious),
	)

	return s
}

// detectGPU treats a failed detection as an absent GPU
func (p *Prober) detectGPU(src Source) bool {
	var ok bool
	err := utils.Safely(func() error {
		var err error
		ok, err = src.GPUContext()
		return err
	})
	if err != nil {
		var pe *utils.PanicError
		if errors.As(err, &pe) {
			p.logger.Warn("GPU detection panicked", utils.Err(err))
		} else {
			p.logger.Debug("GPU detection failed", utils.Err(err))
		}
		return false
	}
	return ok
}

// read calls fn, treating a panic as an unavailable signal
func read[T any](p *Prober, signal string, fn func() (T, bool)) (T, bool) {
	var (
		v  T
		ok bool
	)
	err := utils.Safely(func() error {
		v, ok = fn()
		return nil
	})
	if err != nil {
		p.logger.Warn("Signal read failed, using default",
			utils.String("signal", signal),
			utils.Err(err),
		)
		var zero T
		return zero, false
	}
	return v, ok
}
