// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"sort"
)

// BaseLink is the anchor-link prefix for parameters documented on the common
// usage page.
const BaseLink = "xref:common-usage/running-algos.adoc#"

// LinkTable maps well-known parameter names to documentation anchors.
type LinkTable struct {
	Base    string
	Anchors map[string]string
}

// defaultAnchors covers the parameters shared by most algorithm procedures.
var defaultAnchors = map[string]string{
	"concurrency":                "common-configuration-concurrency",
	"nodeLabels":                 "common-configuration-node-labels",
	"relationshipTypes":          "common-configuration-relationship-types",
	"writeConcurrency":           "common-configuration-write-concurrency",
	"writeProperty":              "common-configuration-write-property",
	"mutateProperty":             "common-configuration-mutate-property",
	"relationshipWeightProperty": "common-configuration-relationship-weight-property",
	"seedProperty":               "common-configuration-seed-property",
	"maxIterations":              "common-configuration-max-iterations",
	"tolerance":                  "common-configuration-tolerance",
	"jobId":                      "common-configuration-jobid",
	"logProgress":                "common-configuration-logProgress",
}

// DefaultLinkTable returns a fresh copy of the built-in link table.
func DefaultLinkTable() LinkTable {
	anchors := make(map[string]string, len(defaultAnchors))
	for k, v := range defaultAnchors {
		anchors[k] = v
	}
	return LinkTable{Base: BaseLink, Anchors: anchors}
}

// With returns a copy of t with extra anchors merged in. Entries in extra win.
func (t LinkTable) With(extra map[string]string) LinkTable {
	anchors := make(map[string]string, len(t.Anchors)+len(extra))
	for k, v := range t.Anchors {
		anchors[k] = v
	}
	for k, v := range extra {
		anchors[k] = v
	}
	return LinkTable{Base: t.Base, Anchors: anchors}
}

// Link returns the display form of a parameter name: an anchor link when the
// name is known, the name itself otherwise.
func (t LinkTable) Link(name string) string {
	anchor, ok := t.Anchors[name]
	if !ok {
		return name
	}
	base := t.Base
	if base == "" {
		base = BaseLink
	}
	return base + anchor + "[" + name + "]"
}

// InclusionSet names the algorithms rendered in batch mode. A nil set admits
// every algorithm.
type InclusionSet map[string]struct{}

// NewInclusionSet builds a set from names.
func NewInclusionSet(names ...string) InclusionSet {
	s := make(InclusionSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// defaultIncluded lists the algorithms whose pages embed generated tables.
var defaultIncluded = []string{
	"ArticleRank",
	"Betweenness Centrality",
	"Closeness Centrality",
	"Degree Centrality",
	"Eigenvector Centrality",
	"K-Nearest Neighbors",
	"Node Similarity",
	"PageRank",
	"Triangle Count",
	"Weakly Connected Components",
}

// DefaultInclusionSet returns a fresh copy of the built-in inclusion set.
func DefaultInclusionSet() InclusionSet {
	return NewInclusionSet(defaultIncluded...)
}

// Includes reports whether name is admitted by the set.
func (s InclusionSet) Includes(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s[name]
	return ok
}

// Names returns the set members in sorted order.
func (s InclusionSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
