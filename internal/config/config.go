// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config holds the generator configuration: where descriptors come
// from, where fragments go, which algorithms are rendered and how common
// parameters are linked.
package config

import (
	"path/filepath"

	"grimm.is/algodocs/internal/configdoc"
)

// DefaultFileName is the config file looked up when none is given.
const DefaultFileName = "gen-config-docs.hcl"

// DefaultDocsRoot is the partials directory of the documentation module.
const DefaultDocsRoot = "doc/modules/ROOT/partials"

// Config is the generator configuration.
type Config struct {
	// DocsRoot is the documentation tree that page paths are relative to.
	DocsRoot string `hcl:"docs_root,optional" json:"docs_root,omitempty"`
	// FragmentFile is the fragment file name inside each page directory.
	FragmentFile string `hcl:"fragment_file,optional" json:"fragment_file,omitempty"`
	// BaseLink prefixes anchor links for well-known parameters.
	BaseLink string `hcl:"base_link,optional" json:"base_link,omitempty"`
	// CreateMissing creates page directories that do not exist.
	CreateMissing bool `hcl:"create_missing,optional" json:"create_missing,omitempty"`
	// Concurrency bounds parallel renders.
	Concurrency int `hcl:"concurrency,optional" json:"concurrency,omitempty" validate:"gte=0,lte=256"`
	// Include lists the algorithms rendered in batch mode. Unset means the
	// built-in inclusion set.
	Include []string `hcl:"include,optional" json:"include,omitempty" validate:"dive,required"`
	// IncludeAll disables inclusion filtering.
	IncludeAll bool `hcl:"include_all,optional" json:"include_all,omitempty"`
	// Links adds to or overrides the built-in link table.
	Links map[string]string `hcl:"links,optional" json:"links,omitempty" validate:"dive,keys,required,endkeys,required"`

	Sources []Source `hcl:"source,block" json:"sources,omitempty" validate:"dive"`
}

// Source is one descriptor file.
type Source struct {
	Name   string `hcl:"name,label" json:"name" validate:"required"`
	Path   string `hcl:"path" json:"path" validate:"required"`
	Format string `hcl:"format,optional" json:"format,omitempty" validate:"omitempty,oneof=json csv yaml yml"`
	// Include overrides the global inclusion set for this source.
	Include []string `hcl:"include,optional" json:"include,omitempty" validate:"dive,required"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		DocsRoot:     DefaultDocsRoot,
		FragmentFile: configdoc.DefaultFragmentFile,
		BaseLink:     configdoc.BaseLink,
		Concurrency:  4,
	}
}

// applyDefaults fills unset values from DefaultConfig.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.DocsRoot == "" {
		c.DocsRoot = def.DocsRoot
	}
	if c.FragmentFile == "" {
		c.FragmentFile = def.FragmentFile
	}
	if c.BaseLink == "" {
		c.BaseLink = def.BaseLink
	}
	if c.Concurrency == 0 {
		c.Concurrency = def.Concurrency
	}
}

// resolvePaths makes relative paths relative to base (the config file's directory).
func (c *Config) resolvePaths(base string) {
	if base == "" || base == "." {
		return
	}
	if !filepath.IsAbs(c.DocsRoot) {
		c.DocsRoot = filepath.Join(base, c.DocsRoot)
	}
	for i := range c.Sources {
		if !filepath.IsAbs(c.Sources[i].Path) {
			c.Sources[i].Path = filepath.Join(base, c.Sources[i].Path)
		}
	}
}

// LinkTable returns the built-in link table extended with Links.
func (c *Config) LinkTable() configdoc.LinkTable {
	t := configdoc.DefaultLinkTable().With(c.Links)
	if c.BaseLink != "" {
		t.Base = c.BaseLink
	}
	return t
}

// InclusionSet returns the inclusion set for src; src may be nil.
func (c *Config) InclusionSet(src *Source) configdoc.InclusionSet {
	switch {
	case c.IncludeAll:
		return nil
	case src != nil && src.Include != nil:
		return configdoc.NewInclusionSet(src.Include...)
	case c.Include != nil:
		return configdoc.NewInclusionSet(c.Include...)
	default:
		return configdoc.DefaultInclusionSet()
	}
}

// Destination returns the fragment destination for the docs tree.
func (c *Config) Destination() *configdoc.Destination {
	return &configdoc.Destination{
		Root:          c.DocsRoot,
		FragmentFile:  c.FragmentFile,
		CreateMissing: c.CreateMissing,
	}
}
