package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	target := filepath.Join(dir, "punch.db")
	require.NoError(t, os.WriteFile(target, []byte("init"), 0o644))

	w, err := New(target, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })
	return w, dir
}

func TestWatcher_ReportsDatabaseWrites(t *testing.T) {
	w, dir := startWatcher(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "punch.db-wal"), []byte("frame"), 0o644))

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	w, dir := startWatcher(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-w.Changes():
		t.Fatal("unrelated file must not notify")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	w, dir := startWatcher(t)
	target := filepath.Join(dir, "punch.db")

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte{byte(i)}, 0o644))
	}

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
	select {
	case <-w.Changes():
		t.Fatal("burst should produce a single notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_Relevant(t *testing.T) {
	w, err := New("/data/punch.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	assert.True(t, w.relevant("/data/punch.db"))
	assert.True(t, w.relevant("/data/punch.db-wal"))
	assert.True(t, w.relevant("/data/punch.db-journal"))
	assert.False(t, w.relevant("/data/punch.db-shm"))
	assert.False(t, w.relevant("/data/other.db"))
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "punch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	assert.Error(t, w.Start())
}

func TestWatcher_StopReleasesWatcherWithoutStart(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "punch.db"))
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	assert.ErrorIs(t, w.watcher.Add(t.TempDir()), fsnotify.ErrClosed)
	assert.NoError(t, w.Stop(), "second stop is a no-op")
	assert.Error(t, w.Start(), "a stopped watcher cannot restart")
}

func TestWatcher_StopAfterFailedStart(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "punch.db"))
	require.NoError(t, err)
	require.Error(t, w.Start())

	require.NoError(t, w.Stop())
	assert.ErrorIs(t, w.watcher.Add(t.TempDir()), fsnotify.ErrClosed)
}
