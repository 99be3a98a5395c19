package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/quill/pkg/core"
)

// watchDebounce coalesces the burst of events produced by one atomic write.
const watchDebounce = 50 * time.Millisecond

// Watch reports changes made to the notes file by anyone, including this
// process. The parent directory is watched because atomic writes replace
// the file. The channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	dir := filepath.Dir(r.Path)
	if !r.config.ReadOnly {
		// fsnotify cannot watch a directory that does not exist yet.
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event, 16)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		r.reportWatchError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return events, nil
}

func (r *Repository) reportWatchError(err error) {
	r.config.Logger.Error("watcher error", "path", r.Path, "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}

// mapEventType translates a filesystem event on the notes file.
func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return core.EventModify
	default:
		return ""
	}
}

func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, events chan<- core.Event) error {
	target := filepath.Clean(r.Path)

	var pending *core.Event
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			eType := mapEventType(event)
			if eType == "" {
				continue
			}
			r.config.Logger.Debug("notes file changed", "path", event.Name, "op", event.Op.String())
			pending = &core.Event{Type: eType, Timestamp: time.Now().Unix()}
			timer.Reset(watchDebounce)

		case <-timer.C:
			if pending == nil {
				continue
			}
			select {
			case events <- *pending:
			case <-ctx.Done():
				return nil
			}
			pending = nil

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			r.reportWatchError(wErr)
		}
	}
}

var _ core.Watchable = (*Repository)(nil)
