// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

const watcherLoggerPrefix = "config-watcher"

// watches the directory of the configuration file so that editors
// which replace the file are still seen
type configWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
	remove   chan struct{}
}

func newConfigWatcher(targetFile string, log *logger.L) (*configWatcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		return nil, err
	}
	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	return &configWatcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		change:   make(chan struct{}, 1),
		remove:   make(chan struct{}, 1),
	}, nil
}

func (w *configWatcher) Start() error {
	err := w.watcher.Add(filepath.Dir(w.filePath))
	if nil != err {
		w.log.Errorf("watcher add error: %s", err)
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.filePath {
					continue
				}
				w.log.Debugf("file event: %v", event)

				switch {
				case watcherEventFileRemove(event):
					w.sendEvent(w.remove, "remove")
				case watcherEventFileChange(event):
					w.sendEvent(w.change, "change")
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Errorf("watcher error: %s", err)
			}
		}
	}()
	return nil
}

func (w *configWatcher) Stop() error {
	return w.watcher.Close()
}

// a pending event already covers this one
func (w *configWatcher) sendEvent(ch chan<- struct{}, name string) {
	select {
	case ch <- struct{}{}:
	default:
		w.log.Debugf("event channel %s full, discard event", name)
	}
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}

// re-read the configuration on every change and hand it to apply
//
// returns when done is closed
func reloadOnChange(log *logger.L, w *configWatcher, fileName string, apply func(*Configuration) error, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-w.remove:
			log.Warnf("configuration file: %q removed, keeping current settings", fileName)
		case <-w.change:
			c, err := getConfiguration(fileName)
			if nil != err {
				log.Errorf("failed to read configuration from: %q  error: %s", fileName, err)
				continue
			}
			if err := apply(c); nil != err {
				log.Errorf("failed to apply configuration error: %s", err)
				continue
			}
			log.Infof("configuration reloaded from: %q", fileName)
		}
	}
}
