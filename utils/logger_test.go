package utils_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmxmxh/inos_effects/utils"
)

func TestLogger_WritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := utils.NewLogger(utils.LoggerConfig{
		Level:     utils.DEBUG,
		Component: "probe",
		Output:    &buf,
	})

	logger.Info("Capability probe complete", utils.Int("cores", 8), utils.String("viewport", "mobile"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "probe")
	assert.Contains(t, out, "Capability probe complete")
	assert.Contains(t, out, "cores")
	assert.Contains(t, out, "mobile")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := utils.NewLogger(utils.LoggerConfig{Level: utils.WARN, Output: &buf})

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warn")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible warn")

	logger.SetLevel(utils.DEBUG)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger_NamedAndWith(t *testing.T) {
	var buf bytes.Buffer
	logger := utils.NewLogger(utils.LoggerConfig{Level: utils.INFO, Component: "effects", Output: &buf})

	child := logger.Named("store").With(utils.String("page", "home"))
	assert.Equal(t, "effects.store", child.Component())

	child.Info("published")
	assert.Contains(t, buf.String(), "effects.store")
	assert.Contains(t, buf.String(), "home")
}

func TestParseLevel(t *testing.T) {
	level, err := utils.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, utils.DEBUG, level)

	level, err = utils.ParseLevel(" Warn ")
	require.NoError(t, err)
	assert.Equal(t, utils.WARN, level)

	_, err = utils.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	logger := utils.NewNop()
	assert.NotPanics(t, func() {
		logger.Info("discarded", utils.Bool("ok", true))
		logger.Named("child").Warn("discarded")
	})
}

func TestLogger_GlobalFunctions(t *testing.T) {
	var buf bytes.Buffer
	prev := utils.GlobalLogger()
	t.Cleanup(func() { utils.SetGlobalLogger(prev) })

	utils.SetGlobalLogger(utils.NewLogger(utils.LoggerConfig{Level: utils.INFO, Output: &buf}))
	utils.Info("Effects kernel ready", utils.Duration("probe_time", 1500*time.Millisecond), utils.Uint64("version", 3))
	utils.Warn("Invalid policy, using defaults")

	out := buf.String()
	assert.Contains(t, out, "Effects kernel ready")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, `"version": 3`)
	assert.Contains(t, out, "Invalid policy")
}
