// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for devkit.
//
// This file implements live reloading of the config file. Edits to
// ~/.devkit/config.toml take effect without restarting the TUI, except for
// the API key which is read once at startup.
package config

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the configuration file and invokes onReload with the freshly
// loaded config after each change. Returns a stop function. Watching is best
// effort: if the watcher cannot be created, Watch logs and returns a no-op.
func Watch(onReload func(*Config)) (stop func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("config watch unavailable: %v", err)
		return func() {}
	}

	// Watch the directory rather than the file: editors replace files on
	// save, which drops a direct file watch.
	if err := watcher.Add(Dir()); err != nil {
		log.Printf("config watch unavailable: %v", err)
		watcher.Close()
		return func() {}
	}

	done := make(chan struct{})

	go func() {
		target := filepath.Base(Path())
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load()
				if err != nil && cfg == nil {
					log.Printf("config reload failed: %v", err)
					continue
				}
				SetGlobal(cfg)
				if onReload != nil {
					onReload(cfg)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watch error: %v", err)
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}
}
