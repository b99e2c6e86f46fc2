// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"grimm.is/algodocs/internal/errors"
	"grimm.is/algodocs/internal/validation"
)

// DefaultFragmentFile is the file name written inside an algorithm's page directory.
const DefaultFragmentFile = "specific-configuration.adoc"

// Destination places fragments inside a documentation tree.
type Destination struct {
	// Root is the documentation tree root (e.g. the partials directory).
	Root string
	// FragmentFile is the file name inside the page directory.
	FragmentFile string
	// CreateMissing creates page directories that do not exist yet.
	CreateMissing bool
}

// Resolve maps a page path to the fragment file path. It fails with
// KindDestinationUnavailable when the page path is absolute or escapes Root.
func (d *Destination) Resolve(pagePath string) (string, error) {
	if err := validation.ValidateRelativePath(pagePath); err != nil {
		return "", errors.Attr(errors.Wrap(err, errors.KindDestinationUnavailable, "invalid page path"), "page_path", pagePath)
	}

	root := filepath.Clean(d.Root)
	dir := filepath.Join(root, filepath.FromSlash(pagePath))
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Attr(errors.New(errors.KindDestinationUnavailable, "page path escapes the documentation root"), "page_path", pagePath)
	}

	name := d.FragmentFile
	if name == "" {
		name = DefaultFragmentFile
	}
	return filepath.Join(dir, name), nil
}

// Read returns the current content of the fragment for pagePath, or nil when
// it does not exist yet.
func (d *Destination) Read(pagePath string) ([]byte, string, error) {
	path, err := d.Resolve(pagePath)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, path, nil
	}
	if err != nil {
		return nil, path, errors.Attr(errors.Wrap(err, errors.KindDestinationUnavailable, "reading fragment"), "path", path)
	}
	return data, path, nil
}

// Write stores content for pagePath. It reports false without touching the
// file when the existing content is identical.
func (d *Destination) Write(pagePath string, content []byte) (string, bool, error) {
	path, err := d.Resolve(pagePath)
	if err != nil {
		return "", false, err
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err) && d.CreateMissing:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return path, false, errors.Attr(errors.Wrap(err, errors.KindDestinationUnavailable, "creating page directory"), "path", dir)
		}
	case os.IsNotExist(err):
		return path, false, errors.Attr(errors.New(errors.KindDestinationUnavailable, "page directory does not exist"), "path", dir)
	case err != nil:
		return path, false, errors.Attr(errors.Wrap(err, errors.KindDestinationUnavailable, "checking page directory"), "path", dir)
	case !info.IsDir():
		return path, false, errors.Attr(errors.New(errors.KindDestinationUnavailable, "page path is not a directory"), "path", dir)
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return path, false, nil
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return path, false, errors.Attr(errors.Wrap(err, errors.KindDestinationUnavailable, "writing fragment"), "path", path)
	}
	return path, true, nil
}
