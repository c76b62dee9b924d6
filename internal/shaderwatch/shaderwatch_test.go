package shaderwatch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "model.vert")
	frag := filepath.Join(dir, "model.frag")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{vert, frag, other} {
		require.NoError(t, os.WriteFile(p, []byte("// v1\n"), 0o644))
	}

	var wakes atomic.Int32
	w, err := New([]string{vert, frag}, func() { wakes.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte("// v2\n"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Pending()...)
		return len(got) > 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, frag, got[0])
	assert.NotContains(t, got, other)
	assert.Positive(t, wakes.Load())
}

func TestPendingDeduplicates(t *testing.T) {
	w := &Watcher{changes: make(chan string, Buffer)}
	for _, p := range []string{"a", "b", "a", "a"} {
		w.changes <- p
	}
	assert.Equal(t, []string{"a", "b"}, w.Pending())
	assert.Empty(t, w.Pending())
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "a.vert")}, nil)
	assert.Error(t, err)
}

func TestCloseTwice(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "a.vert")}, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
