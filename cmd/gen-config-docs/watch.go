// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"grimm.is/algodocs/internal/config"
	"grimm.is/algodocs/internal/configdoc"
	"grimm.is/algodocs/internal/errors"
	"grimm.is/algodocs/internal/metrics"
	"grimm.is/algodocs/internal/watch"
)

func (a *app) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [descriptor...]",
		Short: "Render, then re-render whenever a descriptor or the config changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			srcs, err := sources(cfg, args)
			if err != nil {
				return err
			}

			m := metrics.New()
			a.renderOnce(ctx, cfg, srcs, m)

			files := make([]string, 0, len(srcs)+1)
			for _, s := range srcs {
				files = append(files, s.Path)
			}
			if a.configPath != "" {
				files = append(files, a.configPath)
			} else if _, err := os.Stat(config.DefaultFileName); err == nil {
				files = append(files, config.DefaultFileName)
			}

			w, err := watch.New(files...)
			if err != nil {
				return err
			}
			w.Logger = a.logger.WithComponent("watch")
			a.logger.Info("watching for changes", "files", len(files))

			return w.Run(ctx, func(ctx context.Context, changed []string) {
				a.logger.Info("change detected", "files", changed)

				// pick up config edits; keep the previous config if the new one is broken
				if next, err := a.loadConfig(cmd); err != nil {
					a.logger.Error("config not reloaded", append([]any{"error", err}, errors.KeyVals(err)...)...)
				} else {
					cfg = next
					if len(args) == 0 {
						srcs = cfg.Sources
					}
				}
				a.renderOnce(ctx, cfg, srcs, m)
			})
		},
	}
	a.addRunFlags(cmd)
	cmd.Flags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after every render")
	return cmd
}

// renderOnce runs one write pass and logs the outcome. Failures are not fatal
// while watching.
func (a *app) renderOnce(ctx context.Context, cfg *config.Config, srcs []config.Source, m *metrics.Metrics) {
	r, err := a.generate(ctx, cfg, srcs, configdoc.ModeWrite, m)
	a.writeMetrics(m)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Error("render interrupted", "error", err)
		}
		return
	}
	a.logSummary("render finished", r)
}
