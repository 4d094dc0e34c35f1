package main

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nmxmxh/inos_effects/config"
	"github.com/nmxmxh/inos_effects/probe"
	"github.com/nmxmxh/inos_effects/utils"
)

func newWatchCmd(c *cli) *cobra.Command {
	flags := &signalFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-classify a described device whenever the policy file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.policyPath == "" {
				return errors.New("watch requires --policy")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.watch(ctx, cmd.OutOrStdout(), flags.signals(cmd))
		},
	}
	flags.register(cmd)
	return cmd
}

// watch prints one evaluation now and another after every write to the
// policy file. Invalid edits are reported and the previous policy is kept.
func (c *cli) watch(ctx context.Context, w io.Writer, sig probe.Signals) error {
	src := probe.NewStaticSource(sig)
	policy := c.policy

	emit := func(p *config.Policy) error {
		return render(w, c.output, evaluate(p, p.Prober(c.logger).Probe(src)))
	}
	if err := emit(policy); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return utils.WrapError(err, "create watcher")
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory
	target := filepath.Clean(c.policyPath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return utils.WrapError(err, "watch policy directory")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("Watcher error", utils.Err(err))
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			next, err := config.Load(target)
			if err != nil {
				c.logger.Warn("Policy reload rejected", utils.Err(err))
				continue
			}
			policy = next
			c.logger.Info("Policy reloaded", utils.String("path", target))
			if err := emit(policy); err != nil {
				return err
			}
		}
	}
}
