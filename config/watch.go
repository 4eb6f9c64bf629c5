package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/ballpit/core"
)

// Watcher reloads a config file whenever it is written and publishes the result
// The parent directory is watched so editors that replace the file by rename are seen
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	updates chan *Config
	errors  chan error
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// Watch starts watching path; the caller must Close the returned watcher
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan *Config, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	core.Go(w.loop)
	return w, nil
}

// Updates delivers each successfully reloaded config; only the latest pending one is kept
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors delivers reload and watcher failures
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher goroutine
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.publishErr(err)
				continue
			}
			w.publish(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publishErr(err)
		}
	}
}

// publish replaces any unconsumed update so the reader always sees the newest file
func (w *Watcher) publish(cfg *Config) {
	for {
		select {
		case w.updates <- cfg:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}

func (w *Watcher) publishErr(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
