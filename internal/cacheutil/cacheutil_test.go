// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir_WithDRUSH_CACHE_DIR verifies Dir() respects DRUSH_CACHE_DIR.
func TestDir_WithDRUSH_CACHE_DIR(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("DRUSH_CACHE_DIR", customDir)

	result, ok := Dir()

	assert.True(t, ok)
	assert.Equal(t, customDir, result)
}

// TestDir_WithoutDRUSH_CACHE_DIR verifies Dir() falls back to
// os.UserCacheDir/drush when the env var is empty.
func TestDir_WithoutDRUSH_CACHE_DIR(t *testing.T) {
	t.Setenv("DRUSH_CACHE_DIR", "")

	result, ok := Dir()

	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "drush", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("DRUSH_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DRUSH_CACHE_DIR", dir)
	t.Setenv("DRUSH_CACHE", "")
	s := Open()
	assert.Equal(t, dir, s.Base)
	assert.True(t, s.Enabled)

	t.Setenv("DRUSH_CACHE", "0")
	assert.False(t, Open().Enabled)
}

func TestStore_PutGet(t *testing.T) {
	s := &Store{Base: t.TempDir(), Enabled: true}
	subdirs := []string{"config", "s3"}

	_, ok := s.Get(subdirs, "s3://bucket/drush.yml", 0)
	assert.False(t, ok)

	require.NoError(t, s.Put(subdirs, "s3://bucket/drush.yml", []byte("a: 1\n")))

	e, ok := s.Get(subdirs, "s3://bucket/drush.yml", time.Hour)
	require.True(t, ok)
	assert.Equal(t, "a: 1\n", string(e.Data))
	assert.Equal(t, "s3://bucket/drush.yml", e.Key)
	assert.Equal(t, encodeKey("s3://bucket/drush.yml"), e.EncodedKey)
	assert.Equal(t, filepath.Join(s.Base, "config", "s3", e.EncodedKey), e.Path)
	assert.Less(t, e.Age(), time.Minute)
}

func TestStore_Stale(t *testing.T) {
	s := &Store{Base: t.TempDir(), Enabled: true}
	require.NoError(t, s.Put(nil, "k", []byte("v")))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(s.Path(nil, "k"), old, old))

	_, ok := s.Get(nil, "k", time.Hour)
	assert.False(t, ok)

	e, ok := s.Get(nil, "k", 0)
	assert.True(t, ok, "no max age means any age")
	assert.Equal(t, "v", string(e.Data))
}

func TestStore_Disabled(t *testing.T) {
	s := &Store{Base: t.TempDir()}
	require.NoError(t, s.Put(nil, "k", []byte("v")))
	_, err := os.Stat(s.Path(nil, "k"))
	assert.True(t, os.IsNotExist(err))

	var nilStore *Store
	_, ok := nilStore.Get(nil, "k", 0)
	assert.False(t, ok)
	assert.NoError(t, nilStore.Put(nil, "k", nil))
	assert.NoError(t, nilStore.Purge(time.Hour))
}

func TestStore_Purge(t *testing.T) {
	s := &Store{Base: t.TempDir(), Enabled: true}
	require.NoError(t, s.Put([]string{"a"}, "old", []byte("x")))
	require.NoError(t, s.Put([]string{"a"}, "new", []byte("y")))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(s.Path([]string{"a"}, "old"), old, old))

	require.NoError(t, s.Purge(0))
	assert.FileExists(t, s.Path([]string{"a"}, "old"))

	require.NoError(t, s.Purge(24*time.Hour))
	assert.NoFileExists(t, s.Path([]string{"a"}, "old"))
	assert.FileExists(t, s.Path([]string{"a"}, "new"))
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("s3://bucket/a")
	assert.Len(t, a, 64)
	assert.Equal(t, a, encodeKey("s3://bucket/a"))
	assert.NotEqual(t, a, encodeKey("s3://bucket/b"))
}
