package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/pkg/logger"
)

// HistoryLimit is the most queries kept in the search history.
const HistoryLimit = 5

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a Blob backend.
type Options struct {
	Backend     string
	Dir         string
	RedisURL    string
	RedisPrefix string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the configured backend. The returned closer releases connections.
func Open(opts Options) (Blob, io.Closer, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		b, err := NewFileBlob(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		return b, nopCloser{}, nil
	case BackendRedis:
		b, err := NewRedisBlob(opts.RedisURL, opts.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	case BackendMemory:
		return NewMemoryBlob(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q (expected file, redis or memory)", opts.Backend)
}

// Store reads and writes the typed user data on top of a Blob. Reads never
// fail: missing or unreadable values fall back to defaults and are logged.
type Store struct {
	blob Blob
}

// New wraps a blob store.
func New(blob Blob) *Store {
	return &Store{blob: blob}
}

// loadJSON decodes key into v. It reports false when the key is absent or
// could not be decoded, leaving v as the caller initialised it.
func (s *Store) loadJSON(ctx context.Context, key string, v any) bool {
	lgr := logger.FromContext(ctx)
	data, ok, err := s.blob.Get(ctx, key)
	if err != nil {
		lgr.Error(err, "failed to read stored value", "key", key)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		lgr.Error(err, "ignoring malformed stored value", "key", key)
		return false
	}
	return true
}

func (s *Store) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.blob.Set(ctx, key, data)
}

// PushHistory moves query to the front of list, dropping duplicates and
// anything past HistoryLimit. list is not modified.
func PushHistory(list []string, query string) []string {
	out := make([]string, 0, HistoryLimit)
	out = append(out, query)
	for _, q := range list {
		if q == query {
			continue
		}
		if len(out) == HistoryLimit {
			break
		}
		out = append(out, q)
	}
	return out
}

// History returns the saved queries, most recent first.
func (s *Store) History(ctx context.Context) []string {
	var list []string
	if !s.loadJSON(ctx, KeyHistory, &list) {
		return []string{}
	}
	if len(list) > HistoryLimit {
		list = list[:HistoryLimit]
	}
	return list
}

// AddHistory records a query and returns the new list.
func (s *Store) AddHistory(ctx context.Context, query string) ([]string, error) {
	list := PushHistory(s.History(ctx), query)
	if err := s.saveJSON(ctx, KeyHistory, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ClearHistory forgets every saved query.
func (s *Store) ClearHistory(ctx context.Context) error {
	return s.blob.Delete(ctx, KeyHistory)
}

// Bookmarks returns saved bookmarks in insertion order.
func (s *Store) Bookmarks(ctx context.Context) []law.Bookmark {
	var list []law.Bookmark
	if !s.loadJSON(ctx, KeyBookmarks, &list) {
		return []law.Bookmark{}
	}
	return list
}

// AddBookmark saves b unless a bookmark with the same IPC exists. It reports
// whether b was added.
func (s *Store) AddBookmark(ctx context.Context, b law.Bookmark) (bool, error) {
	list := s.Bookmarks(ctx)
	for _, existing := range list {
		if existing.IPC == b.IPC {
			return false, nil
		}
	}
	if err := s.saveJSON(ctx, KeyBookmarks, append(list, b)); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveBookmark deletes the bookmark with the given IPC, reporting whether one existed.
func (s *Store) RemoveBookmark(ctx context.Context, ipc string) (bool, error) {
	list := s.Bookmarks(ctx)
	kept := list[:0]
	for _, b := range list {
		if b.IPC != ipc {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(list) {
		return false, nil
	}
	if err := s.saveJSON(ctx, KeyBookmarks, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Settings returns persisted settings merged over the defaults.
func (s *Store) Settings(ctx context.Context) law.Settings {
	settings := law.DefaultSettings()
	if !s.loadJSON(ctx, KeySettings, &settings) {
		return law.DefaultSettings()
	}
	return settings
}

// SaveSettings persists the full settings struct.
func (s *Store) SaveSettings(ctx context.Context, settings law.Settings) error {
	return s.saveJSON(ctx, KeySettings, settings)
}

// SetSetting changes one named toggle and returns the saved settings.
func (s *Store) SetSetting(ctx context.Context, name string, v bool) (law.Settings, error) {
	settings, err := s.Settings(ctx).With(name, v)
	if err != nil {
		return settings, err
	}
	return settings, s.SaveSettings(ctx, settings)
}

// ToggleSetting flips one named toggle and returns the saved settings.
func (s *Store) ToggleSetting(ctx context.Context, name string) (law.Settings, error) {
	cur, err := s.Settings(ctx).Get(name)
	if err != nil {
		return law.Settings{}, err
	}
	return s.SetSetting(ctx, name, !cur)
}

// Theme returns the saved theme or the default. The value is stored as the
// bare theme name, not JSON.
func (s *Store) Theme(ctx context.Context) law.Theme {
	data, ok, err := s.blob.Get(ctx, KeyTheme)
	if err != nil {
		logger.FromContext(ctx).Error(err, "failed to read stored value", "key", KeyTheme)
		return law.DefaultTheme
	}
	if !ok {
		return law.DefaultTheme
	}
	theme, err := law.ParseTheme(string(data))
	if err != nil {
		return law.DefaultTheme
	}
	return theme
}

// SetTheme persists theme.
func (s *Store) SetTheme(ctx context.Context, theme law.Theme) error {
	return s.blob.Set(ctx, KeyTheme, []byte(theme))
}

// ToggleTheme flips and persists the theme, returning the new one.
func (s *Store) ToggleTheme(ctx context.Context) (law.Theme, error) {
	next := s.Theme(ctx).Toggle()
	return next, s.SetTheme(ctx, next)
}
