// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package configdoc generates AsciiDoc configuration tables for algorithm
// documentation pages.
//
// Algorithm descriptors are read from JSON, YAML or CSV files and rendered
// into fragments: a generated-file marker followed by one five-column row per
// parameter,
//
//	| name | type | default | optional | description
//
// and one full-width row per config note. Well-known parameter names are
// replaced with anchor links into the common usage page.
//
// Fragments are written below a documentation root at
// <root>/<page_path>/specific-configuration.adoc. Batches are filtered by an
// inclusion set; algorithms outside it are skipped silently.
package configdoc
