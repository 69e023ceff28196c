package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle coalesces the burst of events editors emit on save
const DefaultSettle = 150 * time.Millisecond

// Update is a reload result. Config is nil when Err is set.
type Update struct {
	Config *Config
	Err    error
}

// Watcher reloads the configuration when one of its files changes.
// Parent directories are watched so atomic renames are seen too.
type Watcher struct {
	loader     *Loader
	customPath string
	files      map[string]bool
	fs         *fsnotify.Watcher
	settle     time.Duration
	updates    chan Update
}

// NewWatcher watches customPath, or every search path when it is empty
func NewWatcher(loader *Loader, customPath string) (*Watcher, error) {
	var candidates []string
	if customPath != "" {
		candidates = []string{customPath}
	} else {
		candidates = loader.configPaths
	}

	files := make(map[string]bool, len(candidates))
	dirs := make(map[string]bool)
	for _, p := range candidates {
		abs, err := filepath.Abs(expandPath(p))
		if err != nil {
			continue
		}
		files[abs] = true
		if info, err := os.Stat(filepath.Dir(abs)); err == nil && info.IsDir() {
			dirs[filepath.Dir(abs)] = true
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no config directory to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return &Watcher{
		loader:     loader,
		customPath: customPath,
		files:      files,
		fs:         fsw,
		settle:     DefaultSettle,
		updates:    make(chan Update, 1),
	}, nil
}

// Updates delivers reload results. It is closed when Run returns.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Run processes file events until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.updates)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.send(ctx, Update{Err: err})
		case <-fire:
			fire = nil
			cfg, err := w.loader.LoadConfig(w.customPath)
			w.send(ctx, Update{Config: cfg, Err: err})
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

func (w *Watcher) send(ctx context.Context, u Update) {
	select {
	case w.updates <- u:
	case <-ctx.Done():
	}
}
