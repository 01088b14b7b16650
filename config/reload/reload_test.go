package reload

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rjw57/siteconf/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, path, sitename string) {
	t.Helper()
	src := "AUTHOR = 'Rich Wareham'\nSITENAME = '" + sitename + "'\nTIMEZONE = 'Europe/Paris'\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
}

func newHolder(t *testing.T) (*Holder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pelicanconf.py")
	writeSettings(t, path, "First")
	h, err := NewHolder(func() (*config.Config, error) { return config.Load(path) })
	require.NoError(t, err)
	return h, path
}

func TestNewHolderRejectsInvalidInitial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pelicanconf.py")
	require.NoError(t, os.WriteFile(path, []byte("TIMEZONE = 'Mars/Olympus'\n"), 0o644))
	_, err := NewHolder(func() (*config.Config, error) { return config.Load(path) })
	assert.Error(t, err)
}

func TestReloadSwapsSnapshot(t *testing.T) {
	h, path := newHolder(t)
	first := h.Get()

	ch := make(chan *config.Config, 1)
	h.Subscribe(ch)

	writeSettings(t, path, "Second")
	require.NoError(t, h.Reload(context.Background()))

	assert.Equal(t, "Second", h.Get().Site.SiteName)
	assert.Equal(t, "First", first.Site.SiteName, "old snapshot must not change")
	select {
	case cfg := <-ch:
		assert.Equal(t, "Second", cfg.Site.SiteName)
	default:
		t.Fatal("subscriber not notified")
	}
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	h, path := newHolder(t)

	require.NoError(t, os.WriteFile(path, []byte("SITENAME = 'broken\n"), 0o644))
	assert.Error(t, h.Reload(context.Background()))
	assert.Equal(t, "First", h.Get().Site.SiteName)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	h, path := newHolder(t)
	h.debounce = 10 * time.Millisecond

	ch := make(chan *config.Config, 4)
	h.Subscribe(ch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx) }()

	// give the watcher time to register before writing
	time.Sleep(50 * time.Millisecond)
	writeSettings(t, path, "Watched")

	select {
	case cfg := <-ch:
		assert.Equal(t, "Watched", cfg.Site.SiteName)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestReloadUnchangedKeepsSnapshot(t *testing.T) {
	h, path := newHolder(t)
	first := h.Get()

	ch := make(chan *config.Config, 1)
	h.Subscribe(ch)

	// same settings, different spelling
	require.NoError(t, os.WriteFile(path, []byte("AUTHOR = \"Rich Wareham\"\nTIMEZONE = 'Europe/Paris'\nSITENAME = 'First'\n"), 0o644))
	require.NoError(t, h.Reload(context.Background()))

	assert.Same(t, first, h.Get())
	assert.Empty(t, ch)
}
