package filewatch

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/aguxez/dietlog/models"
)

// FileWatcher reloads the food catalog whenever its file changes on disk.
type FileWatcher struct {
	catalog *models.FoodCatalog
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	done    chan struct{}
}

// NewFileWatcher watches the directory holding path. Watching the directory
// rather than the file keeps working across editors that save by rename.
func NewFileWatcher(path string, catalog *models.FoodCatalog, logger *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FileWatcher{
		catalog: catalog,
		path:    abs,
		watcher: w,
		logger:  logger,
		done:    make(chan struct{}),
	}, nil
}

// Watch blocks, handling events until Close is called.
func (fw *FileWatcher) Watch() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != fw.path {
				continue
			}
			fw.logger.Debug("food catalog modified", "file", event.Name, "op", event.Op.String())
			fw.HandleFileChange()
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("food catalog watcher error", "error", err)
		case <-fw.done:
			return
		}
	}
}

// HandleFileChange re-parses the catalog file. On a parse error the current
// catalog is kept.
func (fw *FileWatcher) HandleFileChange() {
	foods, err := ParseFoods(fw.path)
	if err != nil {
		fw.logger.Warn("keeping previous food catalog", "file", fw.path, "error", err)
		return
	}
	fw.catalog.Update(foods)
	fw.logger.Info("food catalog reloaded", "file", fw.path, "foods", len(foods))
}

// Close stops Watch and releases the underlying watcher.
func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
