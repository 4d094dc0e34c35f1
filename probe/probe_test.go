package probe_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmxmxh/inos_effects/probe"
)

// panickingSource fails every read the way a host with an unexpected API
// shape does through syscall/js.
type panickingSource struct{}

func (panickingSource) ViewportWidth() (int, bool)              { panic("innerWidth: not a number") }
func (panickingSource) UserAgent() (string, bool)               { panic("navigator missing") }
func (panickingSource) GPUContext() (bool, error)               { panic("getContext threw") }
func (panickingSource) PrefersReducedMotion() (bool, bool)      { panic("matchMedia threw") }
func (panickingSource) HardwareConcurrency() (int, bool)        { panic("bad value") }
func (panickingSource) DeviceMemory() (float64, bool)           { panic("bad value") }
func (panickingSource) EffectiveConnectionType() (string, bool) { panic("bad value") }
func (panickingSource) BatterySaver() (bool, bool)              { panic("bad value") }

func TestProbe_DefaultsWhenNothingAvailable(t *testing.T) {
	s := probe.Probe(probe.NewStaticSource(probe.Signals{}))

	assert.Equal(t, probe.Desktop, s.ViewportClass)
	assert.Equal(t, 0, s.ViewportWidth)
	assert.Equal(t, probe.DefaultCoreCount, s.CoreCount)
	assert.Equal(t, probe.DefaultMemoryGB, s.MemoryGB)
	assert.False(t, s.GPUAccelerated)
	assert.False(t, s.PrefersReducedMotion)
	assert.Equal(t, probe.ConnectionFast, s.ConnectionQuality)
	assert.False(t, s.BatteryConscious)
}

func TestProbe_ReadsEverySignal(t *testing.T) {
	s := probe.Probe(probe.NewStaticSource(probe.Signals{
		ViewportWidth:       probe.Ptr(390),
		UserAgent:           probe.Ptr("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148"),
		GPU:                 probe.Ptr(true),
		ReducedMotion:       probe.Ptr(true),
		HardwareConcurrency: probe.Ptr(6),
		DeviceMemory:        probe.Ptr(8.0),
		EffectiveType:       probe.Ptr("3g"),
		SaveData:            probe.Ptr(true),
	}))

	assert.Equal(t, 390, s.ViewportWidth)
	assert.Equal(t, probe.Mobile, s.ViewportClass)
	assert.Contains(t, s.UserAgent, "iPhone")
	assert.Equal(t, 6, s.CoreCount)
	assert.Equal(t, 8.0, s.MemoryGB)
	assert.True(t, s.GPUAccelerated)
	assert.True(t, s.PrefersReducedMotion)
	assert.Equal(t, probe.ConnectionSlow, s.ConnectionQuality)
	assert.True(t, s.BatteryConscious)
}

func TestProbe_ZeroHardwareUsesDefaults(t *testing.T) {
	s := probe.Probe(probe.NewStaticSource(probe.Signals{
		HardwareConcurrency: probe.Ptr(0),
		DeviceMemory:        probe.Ptr(math.NaN()),
	}))
	assert.Equal(t, probe.DefaultCoreCount, s.CoreCount)
	assert.Equal(t, probe.DefaultMemoryGB, s.MemoryGB)

	s = probe.Probe(probe.NewStaticSource(probe.Signals{
		HardwareConcurrency: probe.Ptr(-2),
		DeviceMemory:        probe.Ptr(0.0),
	}))
	assert.Equal(t, probe.DefaultCoreCount, s.CoreCount)
	assert.Equal(t, probe.DefaultMemoryGB, s.MemoryGB)
}

func TestProbe_GPUDetectionFailureMeansNoGPU(t *testing.T) {
	s := probe.Probe(probe.NewStaticSource(probe.Signals{
		GPU:    probe.Ptr(true),
		GPUErr: errors.New("canvas unsupported"),
	}))
	assert.False(t, s.GPUAccelerated)
}

func TestProbe_NeverPanics(t *testing.T) {
	var s probe.Sample
	require.NotPanics(t, func() {
		s = probe.Probe(panickingSource{})
	})

	assert.Equal(t, probe.Desktop, s.ViewportClass)
	assert.Equal(t, probe.DefaultCoreCount, s.CoreCount)
	assert.Equal(t, probe.DefaultMemoryGB, s.MemoryGB)
	assert.False(t, s.GPUAccelerated)
	assert.False(t, s.PrefersReducedMotion)
	assert.Equal(t, probe.ConnectionFast, s.ConnectionQuality)
}

func TestProbe_UserAgentFallback(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want probe.ViewportClass
	}{
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148", probe.Mobile},
		{"android phone", "Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36", probe.Mobile},
		{"android tablet", "Mozilla/5.0 (Linux; Android 13; SM-X700) Safari/537.36", probe.Tablet},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", probe.Tablet},
		{"desktop", "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0", probe.Desktop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := probe.Probe(probe.NewStaticSource(probe.Signals{UserAgent: probe.Ptr(tt.ua)}))
			assert.Equal(t, tt.want, s.ViewportClass)
		})
	}

	// A reported width always wins over the user agent
	s := probe.Probe(probe.NewStaticSource(probe.Signals{
		ViewportWidth: probe.Ptr(1440),
		UserAgent:     probe.Ptr("Mozilla/5.0 (iPhone) Mobile"),
	}))
	assert.Equal(t, probe.Desktop, s.ViewportClass)
}

func TestBreakpoints_Classify(t *testing.T) {
	bp := probe.DefaultBreakpoints
	assert.Equal(t, probe.Mobile, bp.Classify(320))
	assert.Equal(t, probe.Mobile, bp.Classify(767))
	assert.Equal(t, probe.Tablet, bp.Classify(768))
	assert.Equal(t, probe.Tablet, bp.Classify(1023))
	assert.Equal(t, probe.Desktop, bp.Classify(1024))
	assert.Equal(t, probe.Desktop, bp.Classify(2560))
}

func TestConnectionFromEffectiveType(t *testing.T) {
	for _, et := range []string{"slow-2g", "2g", "3g", " 2G "} {
		assert.Equal(t, probe.ConnectionSlow, probe.ConnectionFromEffectiveType(et), et)
	}
	for _, et := range []string{"4g", "", "5g", "wifi"} {
		assert.Equal(t, probe.ConnectionFast, probe.ConnectionFromEffectiveType(et), et)
	}
}

func TestSample_CopiesAreIndependent(t *testing.T) {
	base := probe.Sample{ViewportWidth: 1200, ViewportClass: probe.Desktop, CoreCount: 4, MemoryGB: 4}

	resized := base.WithViewport(500, probe.DefaultBreakpoints)
	assert.Equal(t, probe.Mobile, resized.ViewportClass)
	assert.Equal(t, probe.Desktop, base.ViewportClass)

	reduced := base.WithReducedMotion(true)
	assert.True(t, reduced.PrefersReducedMotion)
	assert.False(t, base.PrefersReducedMotion)
}

func TestViewportClass_Text(t *testing.T) {
	for _, class := range probe.ViewportClasses {
		text, err := class.MarshalText()
		require.NoError(t, err)

		var parsed probe.ViewportClass
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, class, parsed)
	}

	var v probe.ViewportClass
	assert.Error(t, v.UnmarshalText([]byte("watch")))
}
