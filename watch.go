package pubstatic

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch invalidates the site cache whenever a file under dir changes.
// Events are debounced so a burst of saves causes one rebuild.
func (a *App) watch(dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return w.Add(p)
		}
		return nil
	})
	if err != nil {
		w.Close()
		return err
	}
	a.watcher = w
	go a.watchLoop(w)
	return nil
}

func (a *App) watchLoop(w *fsnotify.Watcher) {
	var timer *time.Timer
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				if timer != nil {
					timer.Stop()
				}
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.Add(event.Name); err != nil {
						a.logger.Warnf("watch %s: %v", event.Name, err)
					}
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(a.debounce, func() {
				a.logger.Infof("content changed, rebuilding on next request")
				a.Cache.Invalidate()
			})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			a.logger.Errorf("watcher: %v", err)
		}
	}
}
