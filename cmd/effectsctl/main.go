// Command effectsctl inspects the effects policy outside the browser:
// classify a described device, replay environment events through a live
// engine, and validate policy files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmxmxh/inos_effects/config"
	"github.com/nmxmxh/inos_effects/utils"
)

// cli carries the state shared by subcommands
type cli struct {
	policyPath string
	output     string
	verbose    bool

	policy *config.Policy
	logger *utils.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "effectsctl",
		Short: "Inspect the device-adaptive effects budget",
		Long: `effectsctl evaluates the effects policy for a described device.

Signals left unset resolve to the same defaults the browser probe uses:
4 cores, 4 GB memory, fast connection, no reduced motion.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			policy, err := config.Load(c.policyPath)
			if err != nil {
				return fmt.Errorf("load policy: %w", err)
			}
			c.policy = policy

			level := policy.Level()
			if c.verbose {
				level = utils.DEBUG
			}
			c.logger = utils.NewLogger(utils.LoggerConfig{
				Level:     level,
				Component: "effectsctl",
				Output:    cmd.ErrOrStderr(),
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.policyPath, "policy", "", "policy YAML file (default $"+config.EnvPolicyFile+")")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "text", "output format: text, json, yaml")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newClassifyCmd(c),
		newSimulateCmd(c),
		newPolicyCmd(c),
		newWatchCmd(c),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
