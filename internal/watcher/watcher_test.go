package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatched(t *testing.T, debounce time.Duration) (*Watcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zoe: pottery\n"), 0o600))

	w, err := New(path, debounce, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, path
}

func expectSignal(t *testing.T, ch <-chan time.Time) {
	t.Helper()
	select {
	case _, ok := <-ch:
		require.True(t, ok, "channel closed before signal")
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
}

func expectQuiet(t *testing.T, ch <-chan time.Time, window time.Duration) {
	t.Helper()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("unexpected change notification")
		}
	case <-time.After(window):
	}
}

func TestWatch_ReportsWrite(t *testing.T) {
	w, path := newWatched(t, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := w.Watch(ctx)
	require.NoError(t, os.WriteFile(path, []byte("zoe: bouldering\n"), 0o600))

	expectSignal(t, ch)
}

func TestWatch_ReportsRenameReplace(t *testing.T) {
	w, path := newWatched(t, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := w.Watch(ctx)

	// Editor-style save: write a sibling, rename over the target.
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("amir: chess\n"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	expectSignal(t, ch)
}

func TestWatch_CoalescesBursts(t *testing.T) {
	w, path := newWatched(t, 150*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := w.Watch(ctx)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("zoe: pottery\n"), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	expectSignal(t, ch)
	expectQuiet(t, ch, 300*time.Millisecond)
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	w, path := newWatched(t, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := w.Watch(ctx)
	other := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("scratch"), 0o600))

	expectQuiet(t, ch, 300*time.Millisecond)
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	w, _ := newWatched(t, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	ch := w.Watch(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

func TestWatch_ClosesOnClose(t *testing.T) {
	w, _ := newWatched(t, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := w.Watch(ctx)
	require.NoError(t, w.Close())

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after Close")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent", "people.yaml"), 0, zerolog.Nop())
	assert.Error(t, err)
}
