// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/algodocs/internal/configdoc"
	"grimm.is/algodocs/internal/errors"
)

const sampleHCL = `
docs_root      = "docs/partials"
create_missing = true
concurrency    = 8
include        = ["PageRank", "Louvain"]

links = {
  dampingFactor = "pagerank-damping"
}

source "core" {
  path   = "descriptors/core.json"
}

source "extra" {
  path    = "descriptors/extra.csv"
  format  = "csv"
  include = ["Leiden"]
}
`

func TestLoadHCL(t *testing.T) {
	cfg, err := LoadHCL([]byte(sampleHCL), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, "docs/partials", cfg.DocsRoot)
	assert.Equal(t, configdoc.DefaultFragmentFile, cfg.FragmentFile)
	assert.Equal(t, configdoc.BaseLink, cfg.BaseLink)
	assert.True(t, cfg.CreateMissing)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, []string{"PageRank", "Louvain"}, cfg.Include)
	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "core", cfg.Sources[0].Name)
	assert.Equal(t, "csv", cfg.Sources[1].Format)
}

func TestLoadHCL_Defaults(t *testing.T) {
	cfg, err := LoadHCL([]byte(""), "empty.hcl")
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.DocsRoot, cfg.DocsRoot)
	assert.Equal(t, def.FragmentFile, cfg.FragmentFile)
	assert.Equal(t, def.BaseLink, cfg.BaseLink)
	assert.Equal(t, def.Concurrency, cfg.Concurrency)
	assert.Nil(t, cfg.Include)
	assert.Empty(t, cfg.Sources)
}

func TestLoadHCL_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"syntax", `docs_root = `, "failed to parse HCL"},
		{"unknown attribute", `colour = "red"`, "failed to decode HCL"},
		{"bad format", "source \"a\" {\n  path = \"a\"\n  format = \"xml\"\n}", "source[0].format: must be one of"},
		{"missing path", "source \"a\" {\n}", "failed to decode HCL"},
		{"fragment path", `fragment_file = "a/b.adoc"`, "fragment_file: must be a file name"},
		{"negative concurrency", `concurrency = -1`, "concurrency: must be gte 0"},
		{"duplicate source", "source \"a\" {\n  path = \"a\"\n}\nsource \"a\" {\n  path = \"b\"\n}", `source "a": declared more than once`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadHCL([]byte(tt.input), "bad.hcl")
			require.Error(t, err)
			assert.Equal(t, errors.KindConfig, errors.GetKind(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadJSON(t *testing.T) {
	cfg, err := LoadJSON([]byte(`{"docs_root": "partials", "include_all": true, "sources": [{"name": "x", "path": "x.yaml"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "partials", cfg.DocsRoot)
	assert.True(t, cfg.IncludeAll)
	assert.Equal(t, "x.yaml", cfg.Sources[0].Path)

	_, err = LoadJSON([]byte(`{"docs_rot": "typo"}`))
	require.Error(t, err)
	assert.Equal(t, errors.KindConfig, errors.GetKind(err))
}

func TestLoadFile_ResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gen-config-docs.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleHCL), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs", "partials"), cfg.DocsRoot)
	assert.Equal(t, filepath.Join(dir, "descriptors", "core.json"), cfg.Sources[0].Path)
}

func TestLoadFile_Fallback(t *testing.T) {
	dir := t.TempDir()

	hclPath := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(hclPath, []byte(`docs_root = "/abs/partials"`), 0644))
	cfg, err := LoadFile(hclPath)
	require.NoError(t, err)
	assert.Equal(t, "/abs/partials", cfg.DocsRoot)

	jsonPath := filepath.Join(dir, "config.conf")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"docs_root": "/abs/json"}`), 0644))
	cfg, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "/abs/json", cfg.DocsRoot)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadOrDefault(filepath.Join(dir, "missing.hcl"))
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.GetKind(err))
}

func TestInclusionSetPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	src := &Source{Name: "s", Path: "s.json"}

	assert.True(t, cfg.InclusionSet(src).Includes("PageRank"))
	assert.False(t, cfg.InclusionSet(src).Includes("Louvain"))

	cfg.Include = []string{"Louvain"}
	assert.True(t, cfg.InclusionSet(src).Includes("Louvain"))
	assert.False(t, cfg.InclusionSet(nil).Includes("PageRank"))

	src.Include = []string{"Leiden"}
	assert.True(t, cfg.InclusionSet(src).Includes("Leiden"))
	assert.False(t, cfg.InclusionSet(src).Includes("Louvain"))

	cfg.IncludeAll = true
	assert.Nil(t, cfg.InclusionSet(src))
}

func TestLinkTableAndDestination(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseLink = "xref:other.adoc#"
	cfg.Links = map[string]string{"dampingFactor": "damping"}

	links := cfg.LinkTable()
	assert.Equal(t, "xref:other.adoc#damping[dampingFactor]", links.Link("dampingFactor"))
	assert.Equal(t, "xref:other.adoc#common-configuration-tolerance[tolerance]", links.Link("tolerance"))

	cfg.CreateMissing = true
	dest := cfg.Destination()
	assert.Equal(t, DefaultDocsRoot, dest.Root)
	assert.True(t, dest.CreateMissing)
}
