package policy

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchFile invokes callback after the named file is written, created, or
// removed. Watching the parent directory instead of the file itself survives
// the rename-and-replace dance most editors and config deployers do.
func watchFile(path string, callback func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	reload := make(chan struct{}, 1)
	go scheduleReload(reload, callback)
	go handleEvents(watcher, filepath.Base(path), reload)
	return nil
}

func handleEvents(watcher *fsnotify.Watcher, name string, reload chan<- struct{}) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				select {
				case reload <- struct{}{}:
				default:
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("role catalog watcher error: %v\n", err)
		}
	}
}

// scheduleReload debounces bursts of filesystem events into one reload.
func scheduleReload(reload <-chan struct{}, callback func()) {
	var timer *time.Timer = nil
	var c <-chan time.Time = nil
	duration := time.Millisecond * 500
	for {
		select {
		case <-reload:
			if timer != nil {
				timer.Reset(duration)
			} else {
				timer = time.NewTimer(duration)
				c = timer.C
			}

		case <-c:
			c = nil
			timer = nil
			callback()
		}
	}
}
