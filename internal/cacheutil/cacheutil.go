// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/drush-go/drush/internal/log"
)

// Entry represents a cached artifact on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	ModTime    time.Time
}

// Age is how long ago the entry was written.
func (e *Entry) Age() time.Duration {
	return time.Since(e.ModTime)
}

// Store is an on-disk cache rooted at Base. A Store that is not Enabled
// misses every read and drops every write.
type Store struct {
	Base    string
	Enabled bool
}

// Dir resolves the base cache directory.
// Precedence:
//  1. DRUSH_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/drush
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("DRUSH_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "drush"), true
	}
	return "", false
}

// Enabled returns true unless DRUSH_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("DRUSH_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Open returns the Store described by the environment.
func Open() *Store {
	base, ok := Dir()
	return &Store{Base: base, Enabled: ok && Enabled()}
}

// Path returns where the entry for clearKey beneath subdirs lives.
func (s *Store) Path(subdirs []string, clearKey string) string {
	return filepath.Join(append([]string{s.Base}, append(subdirs, encodeKey(clearKey))...)...)
}

// Get reads an entry. When maxAge > 0, entries older than maxAge are misses.
func (s *Store) Get(subdirs []string, clearKey string, maxAge time.Duration) (*Entry, bool) {
	if s == nil || !s.Enabled {
		return nil, false
	}
	p := s.Path(subdirs, clearKey)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return nil, false
	}
	if maxAge > 0 && time.Since(info.ModTime()) > maxAge {
		log.Debugf("cache stale: key=%s", clearKey)
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", clearKey)
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       b,
		ModTime:    info.ModTime(),
	}, true
}

// Put stores data for clearKey beneath subdirs, creating directories as
// needed.
func (s *Store) Put(subdirs []string, clearKey string, data []byte) error {
	if s == nil || !s.Enabled {
		return nil // treat as disabled.
	}
	p := s.Path(subdirs, clearKey)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", clearKey)
	return nil
}

// Purge removes files older than maxAge. A non-positive maxAge is a no-op.
func (s *Store) Purge(maxAge time.Duration) error {
	if s == nil || !s.Enabled || maxAge <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	if err := filepath.Walk(s.Base, func(path string, info os.FileInfo, walkErr error) error {
		// Files can vanish between listing and stat when two processes purge at
		// once.
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// sha256 returns a 32-byte digest.
func encodeKey(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
