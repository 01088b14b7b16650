// Package reload keeps a site configuration record current while its
// settings files change on disk. Every snapshot handed out is immutable;
// a reload swaps the whole record.
package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rjw57/siteconf/config"
	"github.com/rjw57/siteconf/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoadFunc produces a fresh record, e.g. config.Load bound to a path.
type LoadFunc func() (*config.Config, error)

type Holder struct {
	mu          sync.RWMutex
	current     *config.Config
	fingerprint string
	load        LoadFunc
	logger      zerolog.Logger

	debounce time.Duration

	listenersMu sync.RWMutex
	listeners   []chan<- *config.Config
}

// NewHolder loads the initial record. It fails if that record is invalid.
func NewHolder(load LoadFunc) (*Holder, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	fp, err := utils.Fingerprint(cfg)
	if err != nil {
		return nil, err
	}
	return &Holder{
		current:     cfg,
		fingerprint: fp,
		load:        load,
		logger:      log.Logger.With().Str("component", "reload").Logger(),
		debounce:    100 * time.Millisecond,
	}, nil
}

func (h *Holder) Get() *config.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Subscribe registers ch for new snapshots. Sends never block; a full
// channel misses the update.
func (h *Holder) Subscribe(ch chan<- *config.Config) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

// Reload loads the settings again. On failure the current record stays in
// place and the error is returned. A record equal to the current one is
// not swapped in and listeners are not told.
func (h *Holder) Reload(_ context.Context) error {
	h.logger.Info().Str("event", "config.reload_start").Msg("reloading configuration")

	cfg, err := h.load()
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("event", "config.reload_failed").
			Msg("new configuration rejected, keeping the previous one")
		return fmt.Errorf("reload config: %w", err)
	}
	fp, err := utils.Fingerprint(cfg)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	h.mu.Lock()
	if fp == h.fingerprint {
		h.mu.Unlock()
		h.logger.Info().Str("event", "config.reload_unchanged").Msg("configuration unchanged")
		return nil
	}
	h.current = cfg
	h.fingerprint = fp
	h.mu.Unlock()

	h.logger.Info().
		Str("event", "config.reload_success").
		Strs("files", cfg.Sources).
		Msg("configuration reloaded")
	h.notify(cfg)
	return nil
}

func (h *Holder) notify(cfg *config.Config) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- cfg:
		default:
			h.logger.Warn().Str("event", "config.listener_full").Msg("listener did not take the new configuration")
		}
	}
}

// Watch reloads whenever one of the current record's source files is
// written, created or renamed, until ctx is done. Bursts of events are
// coalesced.
func (h *Holder) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{}
	watchSources := func() error {
		for _, src := range h.Get().Sources {
			dir := filepath.Dir(src)
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			watched[dir] = true
			h.logger.Debug().Str("dir", dir).Msg("watching settings directory")
		}
		return nil
	}
	if err := watchSources(); err != nil {
		return err
	}

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
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !h.isSource(ev.Name) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			h.logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("settings file changed")
			if timer == nil {
				timer = time.NewTimer(h.debounce)
			} else {
				timer.Reset(h.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := h.Reload(ctx); err == nil {
				// a new include may live in another directory
				if err := watchSources(); err != nil {
					h.logger.Warn().Err(err).Msg("cannot watch new settings source")
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Warn().Err(err).Str("event", "config.watch_error").Msg("file watcher error")
		}
	}
}

func (h *Holder) isSource(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for _, src := range h.Get().Sources {
		if src == abs {
			return true
		}
	}
	return false
}
