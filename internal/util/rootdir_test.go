// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRootDir(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) (hint, cwd, want string)
		errIs error
	}{
		{
			name: "absolute_path",
			setup: func(t *testing.T) (string, string, string) {
				dir := t.TempDir()
				return dir, "", dir
			},
		},
		{
			name: "absolute_path_with_at",
			setup: func(t *testing.T) (string, string, string) {
				dir := t.TempDir()
				return "@" + dir, "", dir
			},
		},
		{
			name: "relative_to_cwd",
			setup: func(t *testing.T) (string, string, string) {
				dir := t.TempDir()
				sub := filepath.Join(dir, "web")
				if err := os.Mkdir(sub, 0o755); err != nil {
					t.Fatalf("failed to create subdir: %v", err)
				}
				return "web", dir, sub
			},
		},
		{
			name: "dot_relative_with_at",
			setup: func(t *testing.T) (string, string, string) {
				dir := t.TempDir()
				return "@.", dir, dir
			},
		},
		{
			name: "parent_relative_path",
			setup: func(t *testing.T) (string, string, string) {
				dir := t.TempDir()
				sub := filepath.Join(dir, "subdir")
				if err := os.Mkdir(sub, 0o755); err != nil {
					t.Fatalf("failed to create subdir: %v", err)
				}
				return "..", sub, dir
			},
		},
		{
			name: "file_resolves_to_parent",
			setup: func(t *testing.T) (string, string, string) {
				dir := t.TempDir()
				f := filepath.Join(dir, "index.php")
				if err := os.WriteFile(f, []byte("<?php"), 0o600); err != nil {
					t.Fatalf("failed to create temp file: %v", err)
				}
				return f, "", dir
			},
		},
		{
			name: "nonexistent_directory",
			setup: func(t *testing.T) (string, string, string) {
				return "/nonexistent/path/that/does/not/exist", "", ""
			},
			errIs: os.ErrNotExist,
		},
		{
			name: "empty_hint",
			setup: func(t *testing.T) (string, string, string) {
				return "", "", ""
			},
			errIs: os.ErrInvalid,
		},
		{
			name: "bare_at",
			setup: func(t *testing.T) (string, string, string) {
				return "@", "", ""
			},
			errIs: os.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint, cwd, want := tt.setup(t)

			dir, err := ParseRootDir(hint, cwd)

			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}

			assert.NoError(t, err)
			assert.DirExists(t, dir)
			assert.True(t, filepath.IsAbs(dir))
			assert.Equal(t, filepath.Clean(want), dir)
		})
	}
}

func TestParseRootDir_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	site := filepath.Join(home, "site")
	if err := os.Mkdir(site, 0o755); err != nil {
		t.Fatalf("failed to create site dir: %v", err)
	}

	dir, err := ParseRootDir("~/site", "/unused")
	assert.NoError(t, err)
	assert.Equal(t, site, dir)
}
