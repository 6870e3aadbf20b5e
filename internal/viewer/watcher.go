package viewer

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher watches one art file for changes and hot-reloads it.
// The parent directory is watched rather than the file itself: editors
// commonly save by rename, which drops a watch on the file node.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
	changes chan struct{}
	path    string
}

func watchFile(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	log.Printf("INFO: Watching %s for changes (auto-reload enabled)", abs)

	fw := &fileWatcher{
		watcher: watcher,
		done:    make(chan struct{}),
		changes: make(chan struct{}, 1),
		path:    abs,
	}
	go fw.watchLoop()
	return fw, nil
}

// Stop stops the file watcher.
func (fw *fileWatcher) Stop() {
	select {
	case <-fw.done:
		// already closed
	default:
		close(fw.done)
	}
	fw.watcher.Close()
}

// watchLoop handles file system events for the watched art file.
func (fw *fileWatcher) watchLoop() {
	// Debounce timer to avoid reloading on rapid successive writes
	var debounceTimer *time.Timer
	debounceDuration := 250 * time.Millisecond

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, fw.notify)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ERROR: File watcher error: %v", err)

		case <-fw.done:
			return
		}
	}
}

func (fw *fileWatcher) notify() {
	select {
	case fw.changes <- struct{}{}:
	default:
		// A reload is already pending.
	}
}
