// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"grimm.is/algodocs/internal/errors"
	"grimm.is/algodocs/internal/logging"
)

// Recorder receives one call per processed entry. Implementations must be
// safe for concurrent use.
type Recorder interface {
	Record(Result)
}

// Mode selects what the generator does with rendered fragments.
type Mode int

const (
	// ModeWrite writes fragments into the documentation tree.
	ModeWrite Mode = iota
	// ModeCheck compares fragments with the tree without writing.
	ModeCheck
	// ModeDryRun prints fragments to the generator's Out writer.
	ModeDryRun
)

// Generator renders batches of descriptor entries.
type Generator struct {
	Links       LinkTable
	Include     InclusionSet
	Destination *Destination
	Mode        Mode
	// Concurrency bounds parallel renders; values below 1 mean 1.
	Concurrency int
	// Out receives fragments in ModeDryRun.
	Out      io.Writer
	Recorder Recorder
	Logger   *logging.Logger
	// Claims tracks page ownership across runs that share a docs tree. A
	// nil Claims scopes ownership to a single Run.
	Claims *PageClaims

	outMu sync.Mutex
}

// Run processes entries and returns one result per entry, in input order.
// Failures are reported per entry and never stop sibling entries; only
// context cancellation ends the run early.
func (g *Generator) Run(ctx context.Context, entries []Entry) ([]Result, error) {
	logger := g.Logger
	if logger == nil {
		logger = logging.WithComponent("generator")
	}

	results := make([]Result, len(entries))
	limit := g.Concurrency
	if limit < 1 {
		limit = 1
	}

	claims := g.Claims
	if claims == nil {
		claims = &PageClaims{}
	}
	// claims are made in input order so the first entry for a page wins
	// regardless of scheduling
	conflicts := make([]error, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.Err != nil || !g.Include.Includes(e.Name) {
			continue
		}
		conflicts[i] = claims.Claim(e.Descriptor.PagePath, e.Name)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i := range entries {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res := g.process(&entries[i], conflicts[i])
			results[i] = res
			g.report(logger, res)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (g *Generator) process(e *Entry, conflict error) Result {
	res := Result{Name: e.Name, Source: e.Source}

	if !g.Include.Includes(e.Name) {
		res.Outcome = OutcomeSkipped
		return res
	}
	if e.Err != nil {
		res.Outcome = OutcomeFailed
		res.Err = e.Err
		return res
	}
	if conflict != nil {
		res.Outcome = OutcomeFailed
		res.Err = errors.Attr(conflict, "algorithm", e.Name)
		return res
	}

	content := Content(Render(e.Descriptor, g.Links))

	var err error
	switch g.Mode {
	case ModeDryRun:
		err = g.print(e.Descriptor, content)
		res.Outcome = OutcomePrinted
	case ModeCheck:
		res.Outcome, res.Path, res.Diff, err = g.check(e.Descriptor, content)
	default:
		var changed bool
		res.Path, changed, err = g.Destination.Write(e.Descriptor.PagePath, []byte(content))
		res.Outcome = OutcomeUnchanged
		if changed {
			res.Outcome = OutcomeWritten
		}
	}

	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = errors.Attr(err, "algorithm", e.Name)
	}
	return res
}

func (g *Generator) print(desc *AlgorithmDescriptor, content string) error {
	out := g.Out
	if out == nil {
		out = io.Discard
	}
	g.outMu.Lock()
	defer g.outMu.Unlock()
	if _, err := fmt.Fprintf(out, "// ===== %s (%s)\n%s", desc.Name, desc.PagePath, content); err != nil {
		return errors.Wrap(err, errors.KindDestinationUnavailable, "printing fragment")
	}
	return nil
}

// check reports whether the fragment in the tree matches the rendered content.
func (g *Generator) check(desc *AlgorithmDescriptor, content string) (Outcome, string, string, error) {
	existing, path, err := g.Destination.Read(desc.PagePath)
	if err != nil {
		return OutcomeFailed, path, "", err
	}
	if string(existing) == content {
		return OutcomeUnchanged, path, "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(content),
		FromFile: path,
		ToFile:   desc.Name + " (generated)",
		Context:  3,
	})
	if err != nil {
		return OutcomeFailed, path, "", errors.Wrap(err, errors.KindInternal, "computing diff")
	}
	return OutcomeStale, path, diff, nil
}

func (g *Generator) report(logger *logging.Logger, res Result) {
	if g.Recorder != nil {
		g.Recorder.Record(res)
	}

	switch res.Outcome {
	case OutcomeSkipped:
		logger.Debug("algorithm not included", "algorithm", res.Name)
	case OutcomeFailed:
		kv := append([]any{"error", res.Err}, errors.KeyVals(res.Err)...)
		logger.Error("fragment not generated", kv...)
	case OutcomeStale:
		logger.Warn("fragment is stale", "algorithm", res.Name, "path", res.Path)
	case OutcomeWritten:
		logger.Info("fragment written", "algorithm", res.Name, "path", res.Path)
	case OutcomePrinted:
		logger.Debug("fragment printed", "algorithm", res.Name)
	default:
		logger.Debug("fragment unchanged", "algorithm", res.Name, "path", res.Path)
	}
}

// PageClaims assigns each page path to the first algorithm that claims it.
// Two algorithms writing the same fragment would race, so later claimants
// fail instead. Safe for concurrent use.
type PageClaims struct {
	mu     sync.Mutex
	owners map[string]string
}

// Claim records name as the owner of pagePath. Paths are compared after
// cleaning, so "a/./b" and "a/b" collide.
func (c *PageClaims) Claim(pagePath, name string) error {
	key := path.Clean(strings.ReplaceAll(pagePath, "\\", "/"))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owners == nil {
		c.owners = make(map[string]string)
	}
	if owner, ok := c.owners[key]; ok {
		err := errors.Errorf(errors.KindDestinationUnavailable, "page_path already claimed by %s", owner)
		return errors.Attr(err, "page_path", pagePath)
	}
	c.owners[key] = name
	return nil
}

// Summary counts results by outcome.
type Summary map[Outcome]int

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := make(Summary)
	for _, r := range results {
		s[r.Outcome]++
	}
	return s
}

// Failed reports whether any entry failed.
func (s Summary) Failed() bool {
	return s[OutcomeFailed] > 0
}

// Stale reports whether any fragment was stale in check mode.
func (s Summary) Stale() bool {
	return s[OutcomeStale] > 0
}
