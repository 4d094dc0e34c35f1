// Package config provides the tunable effects policy.
// The policy is resolved from (highest to lowest priority):
// 1. Environment variables (EFFECTS_*)
// 2. A YAML policy file or document
// 3. Built-in defaults
//
// The thresholds and the battery factor are heuristics, not correctness
// constraints; Validate only enforces the ordering invariants the engine
// relies on.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/nmxmxh/inos_effects/budget"
	"github.com/nmxmxh/inos_effects/probe"
	"github.com/nmxmxh/inos_effects/tier"
	"github.com/nmxmxh/inos_effects/utils"
)

// Environment variable names
const (
	EnvPolicyFile       = "EFFECTS_POLICY"
	EnvBatteryFactor    = "EFFECTS_BATTERY_FACTOR"
	EnvReducedMotionCap = "EFFECTS_REDUCED_MOTION_CAP"
	EnvLogLevel         = "EFFECTS_LOG_LEVEL"
)

// Policy holds every tunable of the engine
type Policy struct {
	// Breakpoints are the viewport widths where tablet and desktop begin.
	Breakpoints probe.Breakpoints `yaml:"breakpoints" json:"breakpoints"`

	// Thresholds are the per-viewport hardware requirements for each tier.
	Thresholds tier.Policy `yaml:"thresholds" json:"thresholds"`

	// Budget is the (tier, viewport) lookup table.
	Budget budget.Table `yaml:"budget" json:"budget"`

	// BatteryFactor scales mobile particle counts on battery-saving devices.
	// Default: 0.7
	BatteryFactor float64 `yaml:"battery_factor" json:"battery_factor"`

	// ReducedMotionCap is the particle ceiling when reduced motion is preferred.
	// Default: 20
	ReducedMotionCap int `yaml:"reduced_motion_cap" json:"reduced_motion_cap"`

	// LogLevel is the engine log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the built-in policy
func Default() *Policy {
	return &Policy{
		Breakpoints:      probe.DefaultBreakpoints,
		Thresholds:       tier.DefaultPolicy(),
		Budget:           budget.DefaultTable(),
		BatteryFactor:    budget.DefaultBatteryFactor,
		ReducedMotionCap: budget.DefaultReducedMotionCap,
		LogLevel:         "info",
	}
}

// Parse decodes a YAML document over the defaults and validates the result
func Parse(data []byte) (*Policy, error) {
	p := Default()
	if err := p.decode(data); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads a policy file (optional), applies environment overrides and
// validates. An empty path uses $EFFECTS_POLICY, and no file at all yields
// the defaults.
func Load(path string) (*Policy, error) {
	if path == "" {
		path = os.Getenv(EnvPolicyFile)
	}

	p := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, utils.WrapError(err, "read policy")
		}
		if err := p.decode(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := p.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return utils.WrapError(err, "decode policy")
	}
	return nil
}

// ApplyEnv overrides fields from environment variables read through getenv
func (p *Policy) ApplyEnv(getenv func(string) string) error {
	var errs error
	if v := strings.TrimSpace(getenv(EnvBatteryFactor)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", EnvBatteryFactor, err))
		} else {
			p.BatteryFactor = f
		}
	}
	if v := strings.TrimSpace(getenv(EnvReducedMotionCap)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", EnvReducedMotionCap, err))
		} else {
			p.ReducedMotionCap = n
		}
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		p.LogLevel = v
	}
	return errs
}

// Validate returns every violated rule combined into one error
func (p *Policy) Validate() error {
	var errs error
	if p.Breakpoints.Tablet <= 0 || p.Breakpoints.Desktop <= p.Breakpoints.Tablet {
		errs = multierr.Append(errs, fmt.Errorf("breakpoints must be ascending and positive, got tablet=%d desktop=%d",
			p.Breakpoints.Tablet, p.Breakpoints.Desktop))
	}
	if !(p.BatteryFactor > 0) || p.BatteryFactor > 1 {
		errs = multierr.Append(errs, fmt.Errorf("battery_factor must be in (0,1], got %g", p.BatteryFactor))
	}
	if p.ReducedMotionCap < 0 {
		errs = multierr.Append(errs, fmt.Errorf("reduced_motion_cap must not be negative, got %d", p.ReducedMotionCap))
	}
	if _, err := utils.ParseLevel(p.LogLevel); err != nil {
		errs = multierr.Append(errs, err)
	}
	errs = multierr.Append(errs, multierr.Combine(p.Thresholds.Validate()...))
	errs = multierr.Append(errs, multierr.Combine(p.Budget.Validate(p.ReducedMotionCap)...))
	return errs
}

// Level returns the parsed log level, INFO when unset
func (p *Policy) Level() utils.LogLevel {
	level, err := utils.ParseLevel(p.LogLevel)
	if err != nil {
		return utils.INFO
	}
	return level
}

// Classifier builds a tier classifier from the policy
func (p *Policy) Classifier() *tier.Classifier {
	return tier.NewClassifier(p.Thresholds)
}

// Deriver builds a budget deriver from the policy
func (p *Policy) Deriver() *budget.Deriver {
	return budget.NewDeriver(p.Budget, p.BatteryFactor, p.ReducedMotionCap)
}

// Prober builds a capability prober from the policy
func (p *Policy) Prober(logger *utils.Logger) *probe.Prober {
	return probe.NewProber(p.Breakpoints, logger)
}

// YAML encodes the policy
func (p *Policy) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
