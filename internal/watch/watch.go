// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package watch re-runs a callback when any of a set of files changes.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"grimm.is/algodocs/internal/errors"
	"grimm.is/algodocs/internal/logging"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs. Editors often emit several events per save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches files through their parent directories, so files that are
// replaced by rename (as most editors save) keep being watched.
type Watcher struct {
	Debounce time.Duration
	Logger   *logging.Logger

	watcher *fsnotify.Watcher
	files   map[string]struct{}
	dirs    []string
}

// New creates a watcher for files. Files need not exist yet, but their
// directories must.
func New(files ...string) (*Watcher, error) {
	w := &Watcher{
		Debounce: DefaultDebounce,
		files:    make(map[string]struct{}, len(files)),
	}

	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errors.Attr(errors.Wrap(err, errors.KindConfig, "invalid watch path"), "path", f)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		w.dirs = append(w.dirs, d)
	}
	sort.Strings(w.dirs)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to create file watcher")
	}
	for _, d := range w.dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, errors.Attr(errors.Wrap(err, errors.KindNotFound, "failed to watch directory"), "path", d)
		}
	}
	w.watcher = fw
	return w, nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Run calls onChange after each burst of changes to a watched file, until
// ctx is done. Callbacks never overlap. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	defer w.watcher.Close()

	logger := w.Logger
	if logger == nil {
		logger = logging.WithComponent("watch")
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			onChange(ctx, changed)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}
