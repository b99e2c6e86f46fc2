// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"context"
	"path/filepath"
	"time"

	"grimm.is/algodocs/internal/config"
	"grimm.is/algodocs/internal/configdoc"
	"grimm.is/algodocs/internal/errors"
	"grimm.is/algodocs/internal/metrics"
)

// sources returns the descriptor files named on the command line, or the
// configured sources when there are none.
func sources(cfg *config.Config, args []string) ([]config.Source, error) {
	if len(args) == 0 {
		if len(cfg.Sources) == 0 {
			return nil, errors.New(errors.KindConfig, "no descriptor files: pass them as arguments or declare source blocks in the config")
		}
		return cfg.Sources, nil
	}

	out := make([]config.Source, len(args))
	for i, path := range args {
		out[i] = config.Source{Name: filepath.Base(path), Path: path}
	}
	return out, nil
}

// pass is the outcome of one pass over all sources.
type pass struct {
	Results []configdoc.Result
	// LoadErr joins the errors of sources that could not be loaded.
	LoadErr error
}

func (r *pass) Summary() configdoc.Summary {
	return configdoc.Summarize(r.Results)
}

// Failed reports whether a source failed to load or any algorithm failed.
func (r *pass) Failed() bool {
	return r.LoadErr != nil || r.Summary().Failed()
}

// generate loads every source and runs the generator over it. A source that
// cannot be loaded is logged and counted; the remaining sources still run.
func (a *app) generate(ctx context.Context, cfg *config.Config, srcs []config.Source, mode configdoc.Mode, m *metrics.Metrics) (*pass, error) {
	start := time.Now()
	loader := configdoc.NewLoader()
	links := cfg.LinkTable()
	dest := cfg.Destination()
	logger := a.logger.WithComponent("generator")
	claims := &configdoc.PageClaims{}

	r := &pass{}
	for i := range srcs {
		src := &srcs[i]

		entries, err := loadSource(loader, src)
		if err != nil {
			r.LoadErr = errors.Join(r.LoadErr, err)
			m.RecordLoadError(src.Name)
			logger.Error("descriptor file not loaded", append([]any{"error", err}, errors.KeyVals(err)...)...)
			continue
		}

		g := &configdoc.Generator{
			Links:       links,
			Include:     cfg.InclusionSet(src),
			Destination: dest,
			Mode:        mode,
			Concurrency: cfg.Concurrency,
			Out:         a.stdout,
			Recorder:    m,
			Logger:      logger,
			Claims:      claims,
		}
		results, err := g.Run(ctx, entries)
		r.Results = append(r.Results, results...)
		if err != nil {
			return r, err
		}
	}

	m.RunFinished(start, len(r.Results))
	return r, nil
}

func loadSource(loader *configdoc.Loader, src *config.Source) ([]configdoc.Entry, error) {
	var format configdoc.Format
	if src.Format != "" {
		f, err := configdoc.ParseFormat(src.Format)
		if err != nil {
			return nil, errors.Attr(err, "source", src.Path)
		}
		format = f
	}
	return loader.LoadFile(src.Path, format)
}

// writeMetrics writes the metrics textfile when --metrics-file is set.
func (a *app) writeMetrics(m *metrics.Metrics) {
	if a.metricsFile == "" {
		return
	}
	if err := m.WriteTextfile(a.metricsFile); err != nil {
		a.logger.Warn("metrics not written", append([]any{"error", err}, errors.KeyVals(err)...)...)
	}
}

func (a *app) logSummary(msg string, r *pass) {
	s := r.Summary()
	a.logger.Info(msg,
		"written", s[configdoc.OutcomeWritten],
		"printed", s[configdoc.OutcomePrinted],
		"unchanged", s[configdoc.OutcomeUnchanged],
		"stale", s[configdoc.OutcomeStale],
		"skipped", s[configdoc.OutcomeSkipped],
		"failed", s[configdoc.OutcomeFailed],
	)
}
