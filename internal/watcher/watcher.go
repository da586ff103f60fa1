// Package watcher monitors a corpus file and reports settled changes.
// Editors save in bursts (truncate, write, rename), so raw filesystem
// events are debounced: one notification per burst, after the file has
// been quiet for the debounce window.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the settle window used when New gets a
// non-positive duration.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports changes to a single file.
type Watcher struct {
	log      zerolog.Logger
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
}

// New creates a watcher for the file at path. The parent directory is
// watched rather than the file itself: editors replace files by
// rename, which would silently drop a watch on the old inode.
func New(path string, debounce time.Duration, log zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watcher: resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watcher: watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		log:      log.With().Str("component", "watcher").Logger(),
		fs:       fs,
		path:     abs,
		debounce: debounce,
	}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

// Watch emits one timestamp per settled burst of changes. The channel
// closes when ctx is cancelled or the watcher is closed. Notifications
// that arrive while the consumer is busy coalesce into at most one
// pending entry.
func (w *Watcher) Watch(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time, 1)

	go func() {
		defer close(out)
		var settle <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != w.path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				w.log.Debug().Str("op", ev.Op.String()).Msg("Corpus file changed")
				// Every event restarts the settle window.
				settle = time.After(w.debounce)

			case t := <-settle:
				settle = nil
				select {
				case out <- t:
				default:
				}

			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				w.log.Warn().Err(err).Msg("Watch error")
			}
		}
	}()

	return out
}

// Close stops the watcher and releases its filesystem handle.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
