// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"grimm.is/algodocs/internal/configdoc"
	"grimm.is/algodocs/internal/errors"
)

// MarshalHCL renders c as an HCL document. Default-valued optional attributes
// are omitted.
func (c *Config) MarshalHCL() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("docs_root", cty.StringVal(c.DocsRoot))
	if c.FragmentFile != "" && c.FragmentFile != configdoc.DefaultFragmentFile {
		body.SetAttributeValue("fragment_file", cty.StringVal(c.FragmentFile))
	}
	if c.BaseLink != "" && c.BaseLink != configdoc.BaseLink {
		body.SetAttributeValue("base_link", cty.StringVal(c.BaseLink))
	}
	if c.CreateMissing {
		body.SetAttributeValue("create_missing", cty.True)
	}
	if c.Concurrency != 0 {
		body.SetAttributeValue("concurrency", cty.NumberIntVal(int64(c.Concurrency)))
	}
	if c.IncludeAll {
		body.SetAttributeValue("include_all", cty.True)
	}
	if c.Include != nil {
		body.SetAttributeValue("include", toCtyStringList(c.Include))
	}
	if len(c.Links) > 0 {
		body.SetAttributeValue("links", toCtyStringMap(c.Links))
	}

	for _, s := range c.Sources {
		body.AppendNewline()
		b := body.AppendNewBlock("source", []string{s.Name}).Body()
		b.SetAttributeValue("path", cty.StringVal(s.Path))
		if s.Format != "" {
			b.SetAttributeValue("format", cty.StringVal(s.Format))
		}
		if s.Include != nil {
			b.SetAttributeValue("include", toCtyStringList(s.Include))
		}
	}

	return hclwrite.Format(f.Bytes())
}

// Starter returns the config written by `gen-config-docs init`: the defaults,
// the built-in inclusion set spelled out and one JSON source.
func Starter() *Config {
	c := DefaultConfig()
	c.Include = configdoc.DefaultInclusionSet().Names()
	c.Sources = []Source{{Name: "algorithms", Path: "algorithms.json", Format: "json"}}
	return c
}

// WriteFile writes c to path as HCL. An existing file is only replaced when
// force is set.
func WriteFile(path string, c *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Attr(errors.New(errors.KindConfig, "config file already exists"), "path", path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Attr(errors.Wrap(err, errors.KindConfig, "failed to create config directory"), "path", dir)
		}
	}
	if err := os.WriteFile(path, c.MarshalHCL(), 0644); err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindConfig, "failed to write config file"), "path", path)
	}
	return nil
}

func toCtyStringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

func toCtyStringMap(m map[string]string) cty.Value {
	if len(m) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	vals := make(map[string]cty.Value, len(m))
	for k, v := range m {
		vals[k] = cty.StringVal(v)
	}
	return cty.MapVal(vals)
}
