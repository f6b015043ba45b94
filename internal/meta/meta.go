// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/drush-go/drush/internal/args"
	"github.com/drush-go/drush/internal/config"
	"github.com/drush-go/drush/internal/discovery"
	"github.com/drush-go/drush/internal/environment"
)

// SiteSpec holds the resolved site root. Found is false when no root was
// resolved, which is valid for commands that do not need a site.
type SiteSpec struct {
	Root  string
	Found bool
	// Alias is the @selector the site was chosen with, if any.
	Alias string
}

// Flags are the process-wide switches commands consult. They are computed
// once during preflight and passed explicitly.
type Flags struct {
	Verbose  bool
	Debug    bool
	Quiet    bool
	Yes      bool
	No       bool
	Simulate bool
	Local    bool
}

// Package is one entry of the site's installed package manifest.
type Package struct {
	Name    string
	Version string
}

// Meta is what preflight hands to the dispatcher. It carries the original
// arguments, merged configuration, environment snapshot, resolved site,
// discovered command files and any warnings gathered before logging existed.
type Meta struct {
	Args      []string
	Remainder []string
	Preflight args.Args
	Config    *config.Config
	Context   context.Context
	Env       environment.Environment
	SiteSpec
	StartingDir string

	Commands    discovery.Files
	SearchPaths []string
	Flags       Flags

	// Autoloaded is true when the site's package manifest was found.
	Autoloaded bool
	Packages   []Package
	Warnings   []error
}

// RequireRoot returns the site root, or an error naming cmd when no root was
// resolved.
func (m *Meta) RequireRoot(cmd string) (string, error) {
	if !m.Found {
		return "", &NoRootError{Command: cmd}
	}
	return m.Root, nil
}

// NoRootError is returned by RequireRoot.
type NoRootError struct {
	Command string
}

func (e *NoRootError) Error() string {
	return "command " + e.Command + " needs a site root; run it inside a site or pass --root"
}
