// Package dirwatch delivers camera frames from a drop directory. Any
// capture pipeline that writes image files into the directory (a phone
// sync folder, a webcam snapshot script) becomes a camera source.
package dirwatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wattleworks/tarot42-cli/internal/core/ports/driven"
	"github.com/wattleworks/tarot42-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FrameSource = (*Watcher)(nil)

// settleDelay gives the producing process time to finish writing a
// frame before it is read. Capture tools write files in one burst, so
// a short delay is enough.
const settleDelay = 150 * time.Millisecond

// imageExtensions are the frame formats the recogniser accepts.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Watcher watches a drop directory and emits each new image file as a
// camera frame.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	frames  chan driven.Frame

	closeOnce sync.Once
	done      chan struct{}

	// lastEmit suppresses the duplicate create+write pair a single
	// frame drop produces.
	emitMu   sync.Mutex
	lastEmit map[string]time.Time
}

// NewWatcher creates a frame source for the directory and starts
// watching. The directory is created if missing.
func NewWatcher(dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("frame directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		watcher:  fsw,
		frames:   make(chan driven.Frame, 8),
		done:     make(chan struct{}),
		lastEmit: make(map[string]time.Time),
	}
	go w.run()

	logger.Debug("camera: watching %s for frames", dir)
	return w, nil
}

// Frames returns the channel of captured frames.
func (w *Watcher) Frames() <-chan driven.Frame {
	return w.frames
}

// Close stops the watcher. The frame channel closes once the event
// loop drains.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// run is the event loop translating file events into frames.
func (w *Watcher) run() {
	defer close(w.frames)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if frame := w.handleEvent(event); frame != nil {
				select {
				case w.frames <- *frame:
				case <-w.done:
					return
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("camera: watch error: %v", err)
		}
	}
}

// handleEvent turns one file event into a frame, or nil for events
// that are not a finished image write.
func (w *Watcher) handleEvent(event fsnotify.Event) *driven.Frame {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return nil
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return nil
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
		return nil
	}
	w.emitMu.Lock()
	last, seen := w.lastEmit[name]
	w.emitMu.Unlock()
	if seen && time.Since(last) < time.Second {
		return nil
	}

	// Let the producer finish writing before the frame is read.
	time.Sleep(settleDelay)

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return nil
	}

	data, err := os.ReadFile(event.Name)
	if err != nil {
		logger.Warn("camera: reading frame %s: %v", name, err)
		return nil
	}

	w.emitMu.Lock()
	w.lastEmit[name] = time.Now()
	w.emitMu.Unlock()
	logger.Debug("camera: frame %s (%d bytes)", name, len(data))
	return &driven.Frame{Name: name, Data: data}
}
