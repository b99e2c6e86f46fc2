// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"grimm.is/algodocs/internal/errors"
	"grimm.is/algodocs/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "algorithms.json")
	other := filepath.Join(dir, "notes.txt")
	testutil.WriteFile(t, watched, "[]")

	w, err := New(watched)
	require.NoError(t, err)
	w.Debounce = 50 * time.Millisecond
	w.Logger = testutil.QuietLogger()

	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			calls <- changed
		})
	}()

	// give the event loop a moment before writing
	time.Sleep(20 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(watched, []byte("[ ]"), 0644))
	}
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	select {
	case changed := <-calls:
		want, _ := filepath.Abs(watched)
		assert.Equal(t, []string{want}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change callback")
	}

	select {
	case changed := <-calls:
		t.Fatalf("unexpected second callback: %v", changed)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "a.json"))
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.GetKind(err))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "b.csv"), filepath.Join(dir, "a.json"), filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.csv")}, w.Files())
}
