// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"grimm.is/algodocs/internal/logging"
)

// DocsTree creates a temporary documentation root containing the given page
// directories (slash-separated, relative to the root) and returns its path.
func DocsTree(t *testing.T, pages ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range pages {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(p)), 0755); err != nil {
			t.Fatalf("creating page %s: %v", p, err)
		}
	}
	return root
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// QuietLogger returns a logger that only keeps errors and discards them.
func QuietLogger() *logging.Logger {
	return logging.New(logging.Config{Level: logging.LevelError, Output: io.Discard})
}
