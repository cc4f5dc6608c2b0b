package lua

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a directory for changes of Lua scripts and reloads them in the Scorer
type Watcher struct {
	scorer       *Scorer
	dir          string
	watcher      *fsnotify.Watcher
	done         chan struct{}
	debounceTime time.Duration
	events       map[string]time.Time
	mu           sync.Mutex
	started      bool
}

// NewWatcher makes a watcher for the scripts directory, debounce is 500ms if not set
func NewWatcher(scorer *Scorer, dir string, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		scorer:       scorer,
		dir:          dir,
		watcher:      watcher,
		done:         make(chan struct{}),
		debounceTime: debounce,
		events:       make(map[string]time.Time),
	}, nil
}

// Start begins watching the directory, repeated calls are ignored
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	if _, err := os.Stat(w.dir); err != nil {
		return fmt.Errorf("lua scripts directory %s is not available: %w", w.dir, err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch lua scripts directory: %w", err)
	}
	w.started = true
	log.Printf("[INFO] started watching lua scripts directory: %s", w.dir)
	go w.watchLoop()
	return nil
}

// Stop terminates the watcher, can't be restarted
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	close(w.done)
	if err := w.watcher.Close(); err != nil {
		log.Printf("[WARN] failed to close file watcher: %v", err)
	}
	w.started = false
	log.Printf("[INFO] stopped watching lua scripts directory: %s", w.dir)
}

func (w *Watcher) watchLoop() {
	ticker := time.NewTicker(w.debounceTime)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[WARN] lua watcher error: %v", err)
		case <-ticker.C:
			w.processEvents()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Ext(event.Name) != ".lua" {
		return
	}
	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		w.events[event.Name] = time.Now()
		w.mu.Unlock()
	}
}

// processEvents applies changes settled for at least debounceTime
func (w *Watcher) processEvents() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for filename, ts := range w.events {
		if now.Sub(ts) < w.debounceTime {
			continue
		}
		delete(w.events, filename)

		if _, err := os.Stat(filename); os.IsNotExist(err) {
			log.Printf("[INFO] lua script removed: %s", filename)
			w.scorer.RemoveScript(filename)
			continue
		}
		log.Printf("[INFO] reloading lua script: %s", filename)
		if err := w.scorer.ReloadScript(filename); err != nil {
			log.Printf("[WARN] failed to reload lua script %s: %v", filename, err)
		}
	}
}
