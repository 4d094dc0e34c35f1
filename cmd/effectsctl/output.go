package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nmxmxh/inos_effects/budget"
	"github.com/nmxmxh/inos_effects/config"
	"github.com/nmxmxh/inos_effects/probe"
	"github.com/nmxmxh/inos_effects/tier"
)

// evaluation is the result of running one sample through the policy
type evaluation struct {
	Sample   probe.Sample         `json:"sample" yaml:"sample"`
	Decision tier.Decision        `json:"decision" yaml:"decision"`
	Budget   budget.EffectsBudget `json:"budget" yaml:"budget"`
}

func evaluate(policy *config.Policy, s probe.Sample) evaluation {
	d := policy.Classifier().Explain(s)
	return evaluation{
		Sample:   s,
		Decision: d,
		Budget:   policy.Deriver().Derive(budget.InputFrom(s, d.Tier)),
	}
}

func (e evaluation) text(w io.Writer) error {
	s := e.Sample
	_, err := fmt.Fprintf(w,
		"viewport:  %s (%dpx)\nhardware:  %d cores, %gGB, gpu=%t\nsignals:   reduced_motion=%t connection=%s battery_conscious=%t\ntier:      %s (base %s, dampened=%t)\nbudget:    %s\n",
		s.ViewportClass, s.ViewportWidth, s.CoreCount, s.MemoryGB, s.GPUAccelerated,
		s.PrefersReducedMotion, s.ConnectionQuality, s.BatteryConscious,
		e.Decision.Tier, e.Decision.Base, e.Decision.Dampened,
		e.Budget,
	)
	return err
}

// render writes v in the requested format; text falls back to fmt
func render(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		if t, ok := v.(interface{ text(io.Writer) error }); ok {
			return t.text(w)
		}
		_, err := fmt.Fprintln(w, v)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
