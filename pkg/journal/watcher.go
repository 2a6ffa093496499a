// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-syncstore.
//
// go-syncstore is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package journal

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeremyhahn/go-syncstore/pkg/adapters"
)

// Watcher signals when the journal file receives new writes. Bursts of
// writes are debounced into a single signal.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	signals  chan struct{}
	logger   adapters.Logger
	debounce time.Duration

	mu      sync.Mutex
	stopped bool

	done chan struct{}
	wg   sync.WaitGroup
}

// WatcherConfig contains configuration options for a Watcher.
type WatcherConfig struct {
	Logger        adapters.Logger
	DebounceDelay time.Duration // Default: 250ms
}

// NewWatcher creates a Watcher for the journal at path. The journal's
// parent directory must exist; the file itself may not yet.
func NewWatcher(path string, config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if config.Logger == nil {
		config.Logger = adapters.NewNoOpLogger()
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 250 * time.Millisecond
	}

	// Watch the directory rather than the file so the signal survives
	// truncate-and-recreate cycles.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     filepath.Clean(path),
		signals:  make(chan struct{}, 1),
		logger:   config.Logger,
		debounce: config.DebounceDelay,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processEvents()

	return w, nil
}

// Signals returns a channel that receives one value per debounced burst of
// journal writes.
func (w *Watcher) Signals() <-chan struct{} {
	return w.signals
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.done)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	close(w.signals)
	return err
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.signals <- struct{}{}:
			default:
				// A signal is already pending; coalesce.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(context.Background(), "journal watcher error",
				adapters.Field{Key: "error", Value: err.Error()})
		}
	}
}
