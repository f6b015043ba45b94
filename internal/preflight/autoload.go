// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package preflight

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/drush-go/drush/internal/meta"
)

// ManifestPath is the installed package manifest, relative to the site root.
var ManifestPath = filepath.Join("vendor", "composer", "installed.json")

// LoadAutoloader reads the site's installed package manifest. A site without
// one has no autoloader and yields (nil, false, nil). A manifest that exists
// but cannot be read or parsed is an AutoloaderLoadFailure.
func LoadAutoloader(root string) ([]meta.Package, bool, error) {
	path := filepath.Join(root, ManifestPath)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fail(AutoloaderLoadFailure, "failed to load autoloader %s: %w", path, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, false, fail(AutoloaderLoadFailure, "failed to load autoloader %s: malformed JSON", path)
	}

	// Composer 2 wraps the list in {"packages": [...]}; Composer 1 does not.
	doc := gjson.ParseBytes(raw)
	list := doc
	if doc.IsObject() {
		list = doc.Get("packages")
	}
	if !list.IsArray() {
		return nil, false, fail(AutoloaderLoadFailure, "failed to load autoloader %s: no package list", path)
	}

	var pkgs []meta.Package
	for _, p := range list.Array() {
		name := p.Get("name").String()
		if name == "" {
			continue
		}
		pkgs = append(pkgs, meta.Package{Name: name, Version: p.Get("version").String()})
	}
	return pkgs, true, nil
}
