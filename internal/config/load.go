// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"grimm.is/algodocs/internal/errors"
)

// LoadFile loads a config file (HCL or JSON). Relative paths in the file are
// resolved against the file's directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Attr(errors.Wrap(err, errors.KindNotFound, "config file not found"), "path", path)
		}
		return nil, errors.Attr(errors.Wrap(err, errors.KindConfig, "failed to read config file"), "path", path)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		cfg, err = parseHCL(data, path)
	case ".json":
		cfg, err = parseJSON(data)
	default:
		// Try HCL first
		var hclErr error
		cfg, hclErr = parseHCL(data, path)
		if hclErr != nil {
			var jsonErr error
			if cfg, jsonErr = parseJSON(data); jsonErr != nil {
				err = errors.Wrapf(hclErr, errors.KindConfig, "failed to parse config as HCL (JSON fallback error: %v)", jsonErr)
			}
		}
	}
	if err != nil {
		return nil, errors.Attr(err, "path", path)
	}

	cfg.resolvePaths(filepath.Dir(path))
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Attr(err, "path", path)
	}
	return cfg, nil
}

// LoadHCL loads config from HCL bytes. Paths are left as written.
func LoadHCL(data []byte, filename string) (*Config, error) {
	cfg, err := parseHCL(data, filename)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

// LoadJSON loads config from JSON bytes. Paths are left as written.
func LoadJSON(data []byte) (*Config, error) {
	cfg, err := parseJSON(data)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

// LoadOrDefault loads path when it exists and returns DefaultConfig otherwise.
// An empty path looks for DefaultFileName in the working directory.
func LoadOrDefault(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}
	cfg, err := LoadFile(path)
	if err != nil && !explicit && errors.IsKind(err, errors.KindNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func parseHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, errors.KindConfig, "failed to parse HCL")
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, errors.Wrap(diags, errors.KindConfig, "failed to decode HCL")
	}
	return &cfg, nil
}

func parseJSON(data []byte) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.KindConfig, "failed to parse JSON")
	}
	return &cfg, nil
}
