package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	data := Default()

	assert.Len(t, data.Members, 3)
	assert.Len(t, data.Items, 10)
	assert.Len(t, data.Cycles, 5)
	assert.Len(t, data.Drying, 2)
	assert.Len(t, data.Consumables, 4)

	// Every call returns an independent copy.
	data.Items[0].Name = "changed"
	assert.Equal(t, "Weiße T-Shirts (x5)", Default().Items[0].Name)
	assert.Nil(t, Default().Items[5].LastWashed)
}

func writeSeed(t *testing.T, path string, data Data) {
	t.Helper()
	raw, err := yaml.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("round trips the default data", func(t *testing.T) {
		path := filepath.Join(dir, "seed.yaml")
		writeSeed(t, path, Default())

		data, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), data)
	})

	t.Run("partial file", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
members:
  - id: m9
    name: Robin
    email: robin@home.local
    role: member
    avatar: R
    color: "#123456"
`), 0o644))

		data, err := Load(path)
		require.NoError(t, err)
		require.Len(t, data.Members, 1)
		assert.Equal(t, "Robin", data.Members[0].Name)
		assert.Empty(t, data.Items)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "typo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("itemz: []\n"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

type recordingApplier struct {
	mu      sync.Mutex
	applied []Data
	notify  chan struct{}
	err     error
}

func (a *recordingApplier) ReplaceAll(data Data) error {
	if a.err != nil {
		return a.err
	}
	a.mu.Lock()
	a.applied = append(a.applied, data)
	a.mu.Unlock()
	select {
	case a.notify <- struct{}{}:
	default:
	}
	return nil
}

func TestReloader_ReloadOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeSeed(t, path, Default())

	applier := &recordingApplier{notify: make(chan struct{}, 1)}
	r := NewReloader(path, applier, 0)
	require.NoError(t, r.ReloadOnce())
	require.Len(t, applier.applied, 1)
	assert.Len(t, applier.applied[0].Items, 10)

	rejecting := &recordingApplier{err: errors.New("bad snapshot")}
	err := NewReloader(path, rejecting, 0).ReloadOnce()
	assert.ErrorContains(t, err, "bad snapshot")
}

func TestReloader_RunPicksUpWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeSeed(t, path, Default())

	applier := &recordingApplier{notify: make(chan struct{}, 1)}
	r := NewReloader(path, applier, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	changed := Default()
	changed.Items = changed.Items[:2]
	writeSeed(t, path, changed)

	select {
	case <-applier.notify:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	applier.mu.Lock()
	last := applier.applied[len(applier.applied)-1]
	applier.mu.Unlock()
	assert.Len(t, last.Items, 2)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("reloader did not stop")
	}
}
