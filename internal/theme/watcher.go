package theme

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceWindow coalesces bursts of filesystem events into one callback.
const debounceWindow = 500 * time.Millisecond

// Watcher watches the custom themes directory and invokes a callback when
// bundles are added, removed or rewritten. Used to refresh the shell's
// theme list without restarting the daemon.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching dir. The callback runs on the watcher goroutine,
// debounced, and must not block for long.
func Watch(dir string, log zerolog.Logger, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		done:    make(chan struct{}),
	}

	go func() {
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("custom theme dir changed")
				if timer == nil {
					timer = time.NewTimer(debounceWindow)
					fire = timer.C
				} else {
					timer.Reset(debounceWindow)
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("theme watcher error")
			case <-fire:
				timer = nil
				fire = nil
				onChange()
			}
		}
	}()

	return w, nil
}

// Close stops the watcher. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
