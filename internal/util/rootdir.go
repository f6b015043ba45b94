// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseRootDir turns a site path hint into an absolute, existing directory.
// The hint may carry a leading "@" (as in "@/srv/site") and may be relative to
// cwd or start with "~/" for the home directory. If the hint names a file, its
// containing directory is returned. It returns an error if the fs entry does
// not exist or the hint is empty.
func ParseRootDir(hint string, cwd string) (string, error) {
	hint = strings.TrimPrefix(hint, "@")
	if hint == "" {
		return "", os.ErrInvalid
	}

	dir := hint
	switch {
	case hint == "~" || strings.HasPrefix(hint, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, strings.TrimPrefix(hint, "~"))
	case !filepath.IsAbs(hint):
		if cwd == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			cwd = wd
		}
		dir = filepath.Join(cwd, hint)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	return filepath.Clean(dir), nil
}
