// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package preflight

import (
	"os"
	"path/filepath"

	"github.com/drush-go/drush/internal/args"
	"github.com/drush-go/drush/internal/environment"
)

// NamespacePrefix is the namespace every discovered command file is placed
// under.
const NamespacePrefix = "drush"

// ExcludedCommandFiles are built-in command files the dispatcher replaces
// with its own implementation.
var ExcludedCommandFiles = []string{
	"help/help.drush.hcl",
	"help/list.drush.hcl",
}

// SiteCommandsPath is where a site keeps its own command files. It returns ""
// when root is "".
func SiteCommandsPath(root string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(root, "drush", "commands")
}

// SearchPaths composes the command search path, lowest priority first:
//  1. the built-in commands directory, always;
//  2. --include, when it is an existing directory;
//  3. outside local mode, the system and then the user command directory,
//     each when it exists;
//  4. siteCommands, when it exists.
//
// Discovery returns every file regardless; the order only decides which
// definition of a duplicated command name the dispatcher keeps.
func SearchPaths(env environment.Environment, a args.Args, siteCommands string) []string {
	paths := []string{env.BuiltinCommandsPath()}

	if include := a.IncludePath(); include != "" {
		if !filepath.IsAbs(include) && env.Cwd != "" {
			include = filepath.Join(env.Cwd, include)
		}
		if isDir(include) {
			paths = append(paths, include)
		}
	}

	if !a.IsLocal() {
		for _, p := range []string{env.SystemCommandsPath, env.UserCommandsPath} {
			if p != "" && isDir(p) {
				paths = append(paths, p)
			}
		}
	}

	if siteCommands != "" && isDir(siteCommands) {
		paths = append(paths, siteCommands)
	}

	return paths
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
