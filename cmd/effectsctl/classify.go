package main

import (
	"github.com/spf13/cobra"

	"github.com/nmxmxh/inos_effects/probe"
)

func newClassifyCmd(c *cli) *cobra.Command {
	flags := &signalFlags{}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a described device and print its effects budget",
		Example: `  effectsctl classify --width 390 --cores 8 --memory 8
  effectsctl classify --width 1440 --cores 2 --memory 2 --gpu=false --effective-type 3g -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := probe.NewStaticSource(flags.signals(cmd))
			sample := c.policy.Prober(c.logger).Probe(src)
			return render(cmd.OutOrStdout(), c.output, evaluate(c.policy, sample))
		},
	}
	flags.register(cmd)
	return cmd
}
