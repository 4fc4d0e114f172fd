package watch

import (
	"context"
	"path/filepath"

	"GopherMap/internal/logger"
	"GopherMap/internal/shader"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports edits to shader sources in one directory. onChange gets
// the program name ("icon" for icon.vertex.glsl) and runs on the watcher's
// goroutine, so it must only queue work for the render thread.
type Watcher struct {
	dir      string
	fsw      *fsnotify.Watcher
	onChange func(name string)
}

// New starts watching dir
func New(dir string, onChange func(name string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{dir: dir, fsw: fsw, onChange: onChange}, nil
}

// Run forwards relevant events until ctx is cancelled or the watcher is closed
func (w *Watcher) Run(ctx context.Context) {
	logger.Log.Info("Watching shader sources", zap.String("dir", w.dir))
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("Shader watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !Relevant(ev.Op) {
		return
	}
	name, ok := VariantForFile(ev.Name)
	if !ok {
		return
	}
	logger.Log.Info("Shader source changed",
		zap.String("file", ev.Name),
		zap.String("program", name))
	w.onChange(name)
}

// Relevant reports whether an event can change a file's contents
func Relevant(op fsnotify.Op) bool {
	return op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// VariantForFile maps a source file path to its program name
func VariantForFile(path string) (string, bool) {
	return shader.SourceName(filepath.Base(path))
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
