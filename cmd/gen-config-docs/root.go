// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"grimm.is/algodocs/internal/config"
	"grimm.is/algodocs/internal/errors"
	"grimm.is/algodocs/internal/logging"
)

// app holds flag values and the per-invocation logger.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logJSON    bool

	// run flags
	docsRoot      string
	include       []string
	all           bool
	concurrency   int
	createMissing bool
	dryRun        bool
	metricsFile   string

	runID  string
	logger *logging.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "gen-config-docs",
		Short: "Generate AsciiDoc configuration tables from algorithm descriptors",
		Long: `gen-config-docs renders one AsciiDoc table fragment per algorithm from
JSON, CSV or YAML descriptor files and writes it into the documentation tree
at <docs_root>/<page_path>/specific-configuration.adoc.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (default ./"+config.DefaultFileName+" if present)")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.BoolVar(&a.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(
		a.renderCmd(),
		a.checkCmd(),
		a.watchCmd(),
		a.listCmd(),
		a.initCmd(),
		a.schemaCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(a.logLevel)
	if err != nil {
		return errors.Wrapf(err, errors.KindConfig, "invalid --log-level %q", a.logLevel)
	}

	a.runID = uuid.New().String()
	a.logger = logging.New(logging.Config{
		Level:  level,
		Output: a.stderr,
		JSON:   a.logJSON,
	}).WithFields("run", a.runID)
	logging.SetDefault(a.logger)
	return nil
}

// addRunFlags registers the flags shared by commands that render fragments.
func (a *app) addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&a.docsRoot, "docs-root", "", "documentation tree the page paths are relative to")
	f.IntVar(&a.concurrency, "concurrency", 0, "algorithms rendered in parallel")
	f.BoolVar(&a.createMissing, "create-missing", false, "create missing page directories")
	a.addIncludeFlags(cmd)
}

func (a *app) addIncludeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVar(&a.include, "include", nil, "algorithms to render (replaces the configured inclusion set)")
	f.BoolVar(&a.all, "all", false, "render every algorithm regardless of the inclusion set")
}

// loadConfig loads the config file and applies flag overrides.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("docs-root") {
		cfg.DocsRoot = a.docsRoot
	}
	if flags.Changed("include") {
		cfg.Include = a.include
		for i := range cfg.Sources {
			cfg.Sources[i].Include = nil
		}
	}
	if a.all {
		cfg.IncludeAll = true
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = a.concurrency
	}
	if a.createMissing {
		cfg.CreateMissing = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
