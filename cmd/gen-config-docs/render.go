// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grimm.is/algodocs/internal/configdoc"
	"grimm.is/algodocs/internal/metrics"
)

func (a *app) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [descriptor...]",
		Short: "Write configuration fragments into the documentation tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			srcs, err := sources(cfg, args)
			if err != nil {
				return err
			}

			mode := configdoc.ModeWrite
			if a.dryRun {
				mode = configdoc.ModeDryRun
			}

			m := metrics.New()
			r, err := a.generate(cmd.Context(), cfg, srcs, mode, m)
			a.writeMetrics(m)
			if err != nil {
				return err
			}

			a.logSummary("render finished", r)
			if r.Failed() {
				return errFailed
			}
			return nil
		},
	}
	a.addRunFlags(cmd)
	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "print fragments to stdout instead of writing them")
	cmd.Flags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [descriptor...]",
		Short: "Report fragments that differ from what render would write",
		Long: `check renders every included algorithm and compares it with the fragment in
the documentation tree. Stale fragments are printed as unified diffs and the
command exits with status 1. Nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			srcs, err := sources(cfg, args)
			if err != nil {
				return err
			}

			m := metrics.New()
			r, err := a.generate(cmd.Context(), cfg, srcs, configdoc.ModeCheck, m)
			a.writeMetrics(m)
			if err != nil {
				return err
			}

			for _, res := range r.Results {
				if res.Outcome != configdoc.OutcomeStale {
					continue
				}
				fmt.Fprint(a.stdout, res.Diff)
				if !strings.HasSuffix(res.Diff, "\n") {
					fmt.Fprintln(a.stdout)
				}
			}

			a.logSummary("check finished", r)
			s := r.Summary()
			switch {
			case r.Failed():
				return errFailed
			case s.Stale():
				return errStale
			}
			return nil
		},
	}
	a.addRunFlags(cmd)
	cmd.Flags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	return cmd
}
