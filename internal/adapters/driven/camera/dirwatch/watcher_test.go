package dirwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_EmitsDroppedFrame(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "frame1.jpg"), []byte("jpeg bytes"), 0644))

	select {
	case frame := <-w.Frames():
		assert.Equal(t, "frame1.jpg", frame.Name)
		assert.Equal(t, []byte("jpeg bytes"), frame.Data)
	case <-time.After(5 * time.Second):
		t.Fatal("no frame arrived")
	}
}

func TestWatcher_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWatcher_Close(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")

	select {
	case _, ok := <-w.Frames():
		assert.False(t, ok, "frame channel must close on shutdown")
	case <-time.After(5 * time.Second):
		t.Fatal("frame channel never closed")
	}
}

func TestWatcher_HandleEvent_Filters(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	// Files live outside the watched directory so only the direct
	// handleEvent calls below see them.
	dir := t.TempDir()
	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
		return path
	}

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		expected bool
	}{
		{name: "jpeg create", path: write("card.jpg"), op: fsnotify.Create, expected: true},
		{name: "png write", path: write("card.png"), op: fsnotify.Write, expected: true},
		{name: "uppercase extension", path: write("card2.JPG"), op: fsnotify.Create, expected: true},
		{name: "non-image file", path: write("notes.txt"), op: fsnotify.Create, expected: false},
		{name: "hidden file", path: write(".card.jpg"), op: fsnotify.Create, expected: false},
		{name: "chmod ignored", path: write("card3.jpg"), op: fsnotify.Chmod, expected: false},
		{name: "removed file", path: filepath.Join(dir, "gone.jpg"), op: fsnotify.Remove, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := w.handleEvent(fsnotify.Event{Name: tt.path, Op: tt.op})
			if tt.expected {
				require.NotNil(t, frame)
				assert.Equal(t, filepath.Base(tt.path), frame.Name)
			} else {
				assert.Nil(t, frame)
			}
		})
	}
}

func TestWatcher_HandleEvent_SuppressesDuplicatePair(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(t.TempDir(), "frame.jpg")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	first := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Create})
	require.NotNil(t, first)

	// The write event a fresh drop produces right after its create.
	second := w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	assert.Nil(t, second)
}

func TestWatcher_HandleEvent_SkipsEmptyFile(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(t.TempDir(), "empty.jpg")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	assert.Nil(t, w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Create}))
}
