package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nmxmxh/inos_effects/adapter"
	"github.com/nmxmxh/inos_effects/budget"
	"github.com/nmxmxh/inos_effects/host"
)

// envEvent is one scripted environment change
type envEvent struct {
	kind  string // adapter.CauseResize or adapter.CauseReducedMotion
	width int
	on    bool
}

func parseEvent(s string) (envEvent, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return envEvent{}, fmt.Errorf("event %q: want key=value", s)
	}
	switch strings.TrimSpace(key) {
	case "resize":
		w, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return envEvent{}, fmt.Errorf("event %q: %w", s, err)
		}
		return envEvent{kind: adapter.CauseResize, width: w}, nil
	case "reduced-motion":
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "on", "true", "1":
			return envEvent{kind: adapter.CauseReducedMotion, on: true}, nil
		case "off", "false", "0":
			return envEvent{kind: adapter.CauseReducedMotion, on: false}, nil
		}
		return envEvent{}, fmt.Errorf("event %q: want on or off", s)
	}
	return envEvent{}, fmt.Errorf("event %q: unknown kind %q", s, key)
}

func newSimulateCmd(c *cli) *cobra.Command {
	flags := &signalFlags{}
	var rawEvents []string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Mount an engine on a simulated page and replay environment events",
		Example: `  effectsctl simulate --width 1200 --event resize=500 --event resize=1200
  effectsctl simulate --width 390 --cores 8 --memory 8 --event reduced-motion=on --event reduced-motion=off`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events := make([]envEvent, 0, len(rawEvents))
			for _, raw := range rawEvents {
				ev, err := parseEvent(raw)
				if err != nil {
					return err
				}
				events = append(events, ev)
			}
			return c.simulate(cmd.OutOrStdout(), host.NewSimulated(flags.signals(cmd)), events)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVar(&rawEvents, "event", nil, "environment event: resize=<px> or reduced-motion=on|off (repeatable)")
	return cmd
}

func (c *cli) simulate(w io.Writer, sim *host.Simulated, events []envEvent) error {
	reg := prometheus.NewRegistry()
	metrics, err := adapter.NewMetrics(reg)
	if err != nil {
		return err
	}

	engine := adapter.New(sim,
		adapter.WithPolicy(c.policy),
		adapter.WithLogger(c.logger),
		adapter.WithMetrics(metrics),
	)

	step := "mount"
	engine.Subscribe(func(b budget.EffectsBudget) {
		fmt.Fprintf(w, "%-20s %s\n", step, b)
	})

	if err := engine.Mount(); err != nil {
		return err
	}

	for _, ev := range events {
		switch ev.kind {
		case adapter.CauseResize:
			step = fmt.Sprintf("resize=%d", ev.width)
			sim.Resize(ev.width)
		case adapter.CauseReducedMotion:
			step = fmt.Sprintf("reduced-motion=%t", ev.on)
			sim.SetReducedMotion(ev.on)
		}
	}

	if err := engine.Unmount(); err != nil {
		return err
	}

	return writeMetricTotals(w, reg)
}

// writeMetricTotals prints every counter sample in the registry
func writeMetricTotals(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	if _, err := fmt.Fprintln(w, "---"); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
