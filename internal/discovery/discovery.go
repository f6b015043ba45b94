// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Suffix is the naming convention for command-definition files.
const Suffix = ".drush.hcl"

// Files maps the absolute path of each discovered file to the namespace the
// dispatcher should register its commands under.
type Files map[string]string

// Discover walks every directory in searchPaths, in order, and collects files
// ending in Suffix. The namespace of a file is namespacePrefix followed by the
// sub-directories between the search path and the file, joined with ".".
// Files with the same base name in different directories are separate
// entries. Missing search paths contribute nothing; unreadable directories
// are skipped and reported in the returned warnings. A search path that is a
// symlink is walked at its target, and its files are keyed under the target.
func Discover(searchPaths []string, namespacePrefix string) (Files, []error) {
	files := Files{}
	var warnings []error

	for _, sp := range searchPaths {
		if sp == "" {
			continue
		}
		base, err := resolve(sp)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				warnings = append(warnings, fmt.Errorf("command path %s: %w", sp, err))
			}
			continue
		}

		err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == base && errors.Is(err, fs.ErrNotExist) {
					return fs.SkipAll
				}
				warnings = append(warnings, fmt.Errorf("command path %s: %w", path, err))
				if (d != nil && d.IsDir()) || path == base {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), Suffix) {
				return nil
			}
			files[path] = namespace(namespacePrefix, base, filepath.Dir(path))
			return nil
		})
		if err != nil {
			warnings = append(warnings, fmt.Errorf("command path %s: %w", base, err))
		}
	}

	return files, warnings
}

// Exclude removes the entries whose path ends with any of the given
// slash-separated suffixes (e.g. "help/help.drush.hcl") and returns the
// removed paths.
func (f Files) Exclude(suffixes ...string) []string {
	var removed []string
	for path := range f {
		p := filepath.ToSlash(path)
		for _, s := range suffixes {
			if p == s || strings.HasSuffix(p, "/"+strings.TrimPrefix(s, "/")) {
				delete(f, path)
				removed = append(removed, path)
				break
			}
		}
	}
	sort.Strings(removed)
	return removed
}

// Ordered returns the file paths sorted by the position of the search path
// they were found under, then lexically. Files under later search paths come
// last, so a dispatcher registering in this order lets them win.
func (f Files) Ordered(searchPaths []string) []string {
	roots := make([]string, len(searchPaths))
	for i, sp := range searchPaths {
		abs, err := filepath.Abs(sp)
		if err != nil {
			continue
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		roots[i] = abs
	}

	rank := func(path string) int {
		best, bestLen := len(roots), -1
		for i, root := range roots {
			if root != "" && within(root, path) && len(root) >= bestLen {
				best, bestLen = i, len(root)
			}
		}
		return best
	}

	paths := make([]string, 0, len(f))
	ranks := make(map[string]int, len(f))
	for p := range f {
		paths = append(paths, p)
		ranks[p] = rank(p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if ranks[paths[i]] != ranks[paths[j]] {
			return ranks[paths[i]] < ranks[paths[j]]
		}
		return paths[i] < paths[j]
	})
	return paths
}

// resolve makes a search path absolute and follows symlinks, so a linked
// command directory is walked and ranked under its real location.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func namespace(prefix, base, dir string) string {
	var parts []string
	if prefix != "" {
		parts = append(parts, prefix)
	}
	if rel, err := filepath.Rel(base, dir); err == nil && rel != "." {
		parts = append(parts, strings.Split(filepath.ToSlash(rel), "/")...)
	}
	return strings.Join(parts, ".")
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
