// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package siteroot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/drush-go/drush/internal/util"
)

// DefaultMarker is the file whose presence identifies a site root.
const DefaultMarker = "core/lib/Drupal.php"

// Location is the outcome of a root search. Found is false when neither the
// hint nor cwd led to a root; that is a valid "no site" answer, not an error.
// Warnings holds probe failures (permission denied, broken links) that caused
// a directory to be skipped.
type Location struct {
	Root     string
	Found    bool
	Warnings []error
}

// Resolver finds the on-disk root of a site by walking up from a starting
// directory until a marker file is found.
type Resolver struct {
	Markers []string
}

// New returns a Resolver using markers, or DefaultMarker when none are given.
func New(markers ...string) *Resolver {
	if len(markers) == 0 {
		markers = []string{DefaultMarker}
	}
	return &Resolver{Markers: markers}
}

// Locate searches upward from the hint when one is given and resolves, then
// from cwd. The search is bounded by the filesystem root and by the set of
// canonical directories already visited, so symlink cycles terminate.
func (r *Resolver) Locate(hint, cwd string) Location {
	var loc Location

	if hint != "" {
		start, err := util.ParseRootDir(hint, cwd)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, os.ErrInvalid) {
				loc.Warnings = append(loc.Warnings, fmt.Errorf("site hint %s: %w", hint, err))
			}
		} else if root, ok := r.searchUp(start, &loc); ok {
			loc.Root, loc.Found = root, true
			return loc
		}
	}

	if cwd != "" {
		if root, ok := r.searchUp(cwd, &loc); ok {
			loc.Root, loc.Found = root, true
		}
	}

	return loc
}

// searchUp walks from dir toward the filesystem root.
func (r *Resolver) searchUp(dir string, loc *Location) (string, bool) {
	visited := map[string]bool{}

	for {
		canonical, err := filepath.EvalSymlinks(dir)
		if err != nil {
			loc.Warnings = append(loc.Warnings, fmt.Errorf("failed to resolve %s: %w", dir, err))
			canonical = filepath.Clean(dir)
		}
		if visited[canonical] {
			return "", false
		}
		visited[canonical] = true

		if r.isRoot(canonical, loc) {
			return canonical, true
		}

		parent := filepath.Dir(canonical)
		if parent == canonical {
			return "", false
		}
		dir = parent
	}
}

// isRoot checks dir for any marker. A marker that exists but cannot be
// stat'ed is reported and treated as absent.
func (r *Resolver) isRoot(dir string, loc *Location) bool {
	for _, m := range r.Markers {
		info, err := os.Stat(filepath.Join(dir, m))
		if err == nil {
			if !info.IsDir() {
				return true
			}
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
			loc.Warnings = append(loc.Warnings, fmt.Errorf("failed to probe %s: %w", filepath.Join(dir, m), err))
		}
	}
	return false
}
