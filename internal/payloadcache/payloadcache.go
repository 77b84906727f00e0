// Package payloadcache stores the last-known-good raw payload per
// (provider, restaurant code, language) as one file per key. The file
// modification time doubles as the freshness marker; no timestamp is
// persisted separately.
//
// Concurrent use is safe without locking because every key maps to a
// distinct file path, so concurrent writers never target the same file.
package payloadcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/lunch-tray/internal/menu"
)

// Store is a directory-backed payload cache.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created lazily on
// the first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the per-user cache directory for the application.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "lunch-tray", "cache"), nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the canonical file path for a key.
func (s *Store) Path(kind menu.ProviderKind, code, language string) string {
	name := fmt.Sprintf("%s__%s__%s.%s",
		sanitizeSegment(kind.Key()),
		sanitizeSegment(code),
		sanitizeSegment(language),
		kind.Ext(),
	)
	return filepath.Join(s.dir, name)
}

// legacyPath is the historical pipe-joined, unsanitized naming scheme.
// It is consulted on reads only; writes always use the canonical path.
func (s *Store) legacyPath(kind menu.ProviderKind, code, language string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s|%s|%s.%s", kind.Key(), code, language, kind.Ext()))
}

// sanitizeSegment replaces every character other than ASCII
// alphanumerics, '.', '_' and '-' with '_'.
func sanitizeSegment(segment string) string {
	var b strings.Builder
	b.Grow(len(segment))
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Read returns the cached payload for a key, falling back to the legacy
// naming scheme when the canonical file is missing.
func (s *Store) Read(kind menu.ProviderKind, code, language string) (string, bool) {
	if data, err := os.ReadFile(s.Path(kind, code, language)); err == nil {
		return string(data), true
	}
	if data, err := os.ReadFile(s.legacyPath(kind, code, language)); err == nil {
		return string(data), true
	}
	return "", false
}

// Write stores the payload under the canonical path, creating the cache
// directory as needed.
func (s *Store) Write(kind menu.ProviderKind, code, language, payload string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	path := s.Path(kind, code, language)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		return fmt.Errorf("write cache file %s: %w", path, err)
	}
	return nil
}

// MTime returns the modification time of the cached payload, consulting
// the legacy path when the canonical file is missing.
func (s *Store) MTime(kind menu.ProviderKind, code, language string) (time.Time, bool) {
	info, err := os.Stat(s.Path(kind, code, language))
	if err != nil {
		info, err = os.Stat(s.legacyPath(kind, code, language))
	}
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
