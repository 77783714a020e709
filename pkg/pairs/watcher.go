package pairs

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/coolbeans/memodrill/pkg/logger"
	"gopkg.in/fsnotify.v1"
)

// Watcher reloads a set of group files when they change on disk and
// publishes the merged pairs on Updates.
type Watcher struct {
	mu       sync.Mutex
	dir      string
	paths    []string
	watched  map[string]bool
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	updates  chan []Pair
	log      logger.Logger
}

// NewWatcher creates a watcher for the given group files, which must all
// live in dir.
func NewWatcher(dir string, paths []string, log logger.Logger) *Watcher {
	if log == nil {
		log = logger.Discard()
	}
	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		watched[filepath.Clean(p)] = true
	}
	return &Watcher{
		dir:     dir,
		paths:   paths,
		watched: watched,
		updates: make(chan []Pair, 8),
		log:     log.Module("watch"),
	}
}

// Updates returns the channel of reloaded pairs.
func (w *Watcher) Updates() <-chan []Pair {
	return w.updates
}

// Start begins watching the group directory.
func (w *Watcher) Start() error {
	if w.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", w.dir, err)
	}

	w.mu.Lock()
	w.watcher = watcher
	w.stopChan = make(chan struct{})
	w.mu.Unlock()

	go w.watchLoop(watcher, w.stopChan)
	return nil
}

func (w *Watcher) watchLoop(watcher *fsnotify.Watcher, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create || event.Op&fsnotify.Write == fsnotify.Write {
				w.reload(event.Name, stop)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", logger.Error(err))
		}
	}
}

func (w *Watcher) reload(name string, stop chan struct{}) {
	pairs, err := LoadPairs(w.paths...)
	if err != nil {
		// Editors often truncate before writing; the next event carries the
		// complete file.
		w.log.Debug("reload skipped", logger.String("file", name), logger.Error(err))
		return
	}
	w.log.Info("group file changed", logger.String("file", name), logger.Int("pairs", len(pairs)))
	select {
	case w.updates <- pairs:
	case <-stop:
	}
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopChan != nil {
		close(w.stopChan)
		w.stopChan = nil
	}
	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
	}
}
