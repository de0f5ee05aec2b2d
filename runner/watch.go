package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay lets a burst of writes to one file finish before it is read.
const settleDelay = 100 * time.Millisecond

// Watcher runs an Engine on files as they are written.
type Watcher struct {
	watcher  *fsnotify.Watcher
	engine   Engine
	dirs     []string
	logger   *zap.Logger
	onResult func(Result, error)
	started  bool
}

// NewWatcher creates a watcher over dirs and their subdirectories.
// onResult is called from the watch loop for every processed file.
func NewWatcher(logger *zap.Logger, engine Engine, dirs []string, onResult func(Result, error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:  fw,
		engine:   engine,
		dirs:     dirs,
		logger:   logger,
		onResult: onResult,
	}, nil
}

// Start registers the directories. Events are delivered once Run is called.
func (w *Watcher) Start() error {
	if w.started {
		return errors.New("already watching")
	}
	for _, dir := range w.dirs {
		if _, err := w.addTree(dir); err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	w.started = true
	return nil
}

// Run handles events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started {
		if err := w.Start(); err != nil {
			return err
		}
	}
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

// addTree watches dir and its subdirectories and returns the files with
// a desired extension found under them.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		if hasDesiredExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	// fsnotify is not recursive: new directories are added as they appear.
	// Files written into one before it was added are picked up here.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			files, err := w.addTree(event.Name)
			if err != nil {
				w.logger.Error("error adding directory to watcher", zap.String("dir", event.Name), zap.Error(err))
			}
			for _, file := range files {
				w.process(file)
			}
			return
		}
	}

	if !hasDesiredExtension(event.Name) {
		return
	}
	w.process(event.Name)
}

func (w *Watcher) process(file string) {
	time.Sleep(settleDelay)
	res, err := w.engine.Run(file)
	if err != nil {
		w.logger.Error("error processing file", zap.String("file", file), zap.Error(err))
	} else {
		w.logger.Debug("processed file",
			zap.String("file", file), zap.Bool("changed", res.Changed), zap.Bool("written", res.Written))
	}
	if w.onResult != nil {
		w.onResult(res, err)
	}
}
