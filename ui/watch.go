package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// scriptWatcher reloads the editor when the watched script file changes
// on disk. Editors tend to fire several events per save, so reloads are
// throttled through a rate limiter.
type scriptWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	limiter *rate.Limiter
}

// newScriptWatcher watches the directory containing path; watching the
// directory instead of the file keeps the watch alive across the
// rename-and-replace dance most editors do on save.
func newScriptWatcher(path string) (*scriptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &scriptWatcher{
		watcher: w,
		path:    path,
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}, nil
}

// wait blocks until the script file changes, then emits a
// scriptFileChangedMsg. Update re-issues this command after each event.
func (sw *scriptWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-sw.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != filepath.Clean(sw.path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if !sw.limiter.Allow() {
					continue
				}
				return scriptFileChangedMsg{}
			case _, ok := <-sw.watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func (sw *scriptWatcher) close() {
	sw.watcher.Close()
}
