package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherDebouncesWrites(t *testing.T) {
	log, _ := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "model.stl")
	require.NoError(t, os.WriteFile(path, []byte("solid a\n"), 0o644))

	fw, err := NewFileWatcher(50*time.Millisecond, log)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("solid b\n"), 0o644))
	}

	select {
	case got := <-changed:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case <-changed:
		t.Fatal("writes were not debounced")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingFile(t *testing.T) {
	log, _ := test.NewNullLogger()
	fw, err := NewFileWatcher(time.Millisecond, log)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "missing.stl")}, func(string) {})
	assert.Error(t, err)
}

func TestRemoveAllStopsCallbacks(t *testing.T) {
	log, _ := test.NewNullLogger()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.scad")
	require.NoError(t, os.WriteFile(path, []byte("cube(1);\n"), 0o644))

	fw, err := NewFileWatcher(10*time.Millisecond, log)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()

	// a second removal of the same file must not fail
	require.NoError(t, fw.RemoveAll())
	require.NoError(t, fw.RemoveAll())

	require.NoError(t, os.WriteFile(path, []byte("cube(2);\n"), 0o644))
	select {
	case <-changed:
		t.Fatal("callback after RemoveAll")
	case <-time.After(150 * time.Millisecond):
	}
}
