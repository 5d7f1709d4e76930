// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// DefaultDebounce is how long the watcher waits after the last change
// before reloading. Editors often write a file in several steps.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Config, error)
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	done   chan struct{}
	closed bool
}

// Watch starts watching path and calls onChange with the reloaded config,
// or with the load error, after each change. onChange runs on the
// watcher's goroutine.
//
// The parent directory is watched rather than the file so that editors
// which save by rename are still seen.
func Watch(path string, onChange func(*Config, error)) (*Watcher, error) {
	return WatchWithDebounce(path, DefaultDebounce, onChange)
}

// WatchWithDebounce is Watch with an explicit debounce interval.
func WatchWithDebounce(path string, debounce time.Duration, onChange func(*Config, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		onChange: onChange,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed || w.onChange == nil {
		return
	}
	w.onChange(LoadFromPath(w.path))
}
