// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package validation checks user-supplied paths and names before they reach
// the filesystem.
package validation

import (
	"path"
	"strings"
	"unicode"

	"grimm.is/algodocs/internal/errors"
)

// ValidateRelativePath validates a slash-separated path that must stay inside
// the directory it is resolved against. Inner ".." segments are allowed as
// long as the cleaned path does not climb out.
func ValidateRelativePath(p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.New(errors.KindConfig, "path cannot be empty")
	}

	// Check for null bytes
	if strings.Contains(p, "\x00") {
		return errors.New(errors.KindConfig, "null byte in path")
	}

	slashed := strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(slashed, "/") || hasVolume(slashed) {
		return errors.Errorf(errors.KindConfig, "path must be relative: %s", p)
	}

	clean := path.Clean(slashed)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Errorf(errors.KindConfig, "path escapes its root: %s", p)
	}
	return nil
}

// ValidateFileName validates a bare file name: no directory part, not a
// dot entry and no control characters.
func ValidateFileName(name string) error {
	if name == "" {
		return errors.New(errors.KindConfig, "file name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.Errorf(errors.KindConfig, "must be a file name, not a path: %s", name)
	}
	if i := strings.IndexFunc(name, unicode.IsControl); i >= 0 {
		return errors.Errorf(errors.KindConfig, "file name contains a control character: %q", name)
	}
	return nil
}

// ValidateLabel validates a display label such as an algorithm or source
// name. Labels end up in log lines and file headers, so they must be a
// single line.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New(errors.KindConfig, "label cannot be empty")
	}
	if strings.ContainsAny(label, "\r\n") {
		return errors.Errorf(errors.KindConfig, "label spans lines: %q", label)
	}
	return nil
}

// hasVolume reports a Windows drive prefix such as "C:".
func hasVolume(p string) bool {
	return len(p) >= 2 && p[1] == ':' && unicode.IsLetter(rune(p[0]))
}
