// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/drush-go/drush/internal/discovery"
)

// Bootstrap levels a command file entry may ask for.
const (
	BootstrapNone = "none"
	BootstrapRoot = "root"
)

// Definition is one command declared in a *.drush.hcl file:
//
//	command "site:info" {
//	  description = "Show the site root"
//	  aliases     = ["si"]
//	  bootstrap   = "root"
//	  run         = "ls ${site.root}"
//
//	  option "depth" {
//	    description = "listing depth"
//	    default     = "1"
//	  }
//	}
type Definition struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Usage       string         `hcl:"usage,optional"`
	Aliases     []string       `hcl:"aliases,optional"`
	Bootstrap   string         `hcl:"bootstrap,optional"`
	Hidden      bool           `hcl:"hidden,optional"`
	Run         hcl.Expression `hcl:"run"`
	Options     []OptionDef    `hcl:"option,block"`

	// Namespace and Path are filled in from discovery.
	Namespace string
	Path      string
}

// OptionDef is a string option of a Definition.
type OptionDef struct {
	Name        string `hcl:"name,label"`
	Short       string `hcl:"short,optional"`
	Description string `hcl:"description,optional"`
	Default     string `hcl:"default,optional"`
}

type commandFile struct {
	Commands []Definition `hcl:"command,block"`
}

// ParseFile decodes every command block in one file. A file that fails to
// parse contributes nothing.
func ParseFile(parser *hclparse.Parser, path, namespace string) ([]Definition, error) {
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("command file %s: %w", path, diags)
	}

	var cf commandFile
	if diags := gohcl.DecodeBody(f.Body, nil, &cf); diags.HasErrors() {
		return nil, fmt.Errorf("command file %s: %w", path, diags)
	}

	for i := range cf.Commands {
		d := &cf.Commands[i]
		if d.Bootstrap == "" {
			d.Bootstrap = BootstrapNone
		}
		if err := FlagValidators(d.Bootstrap, BootstrapValidator); err != nil {
			return nil, fmt.Errorf("command file %s: command %q: %w", path, d.Name, err)
		}
		d.Namespace, d.Path = namespace, path
	}
	return cf.Commands, nil
}

// LoadDefinitions parses the discovered files in search path order. When a
// name is defined more than once, the definition from the later search path
// wins. Files that fail to parse are skipped and reported. The result is
// sorted by name.
func LoadDefinitions(files discovery.Files, searchPaths []string) ([]Definition, []error) {
	parser := hclparse.NewParser()
	byName := map[string]Definition{}
	var warnings []error

	for _, path := range files.Ordered(searchPaths) {
		defs, err := ParseFile(parser, path, files[path])
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		for _, d := range defs {
			byName[d.Name] = d
		}
	}

	out := make([]Definition, 0, len(byName))
	for _, d := range byName {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, warnings
}
