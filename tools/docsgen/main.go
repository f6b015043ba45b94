// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/drush-go/drush/internal/command"
	"github.com/drush-go/drush/internal/discovery"
	"github.com/drush-go/drush/internal/preflight"
)

type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
	Common      Common       `yaml:"common"`
}

type Common struct {
	Flags []Flag `yaml:"flags"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"flags"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
	More        string `yaml:"more,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date     string
	Version  string
	FileName string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

// docsgen <docs-dir> [commands-dir]
//
// Renders one page per command into the docs tree. The built-ins are
// described in <docs-dir>/templates/drush.yaml; command files found under
// commands-dir are appended to them.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir> [commands-dir]")
		os.Exit(1)
	}
	docs := os.Args[1]

	data, err := os.ReadFile(filepath.Join(docs, "templates", "drush.yaml"))
	if err != nil {
		panic(err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		panic(err)
	}

	if len(os.Args) > 2 {
		config.Subcommands = append(config.Subcommands, commandFileSubcommands(os.Args[2])...)
	}

	for _, sub := range config.Subcommands {
		mergedFlags := append([]Flag(nil), config.Common.Flags...)
		mergedFlags = append(mergedFlags, sub.Flags...)

		sort.Slice(mergedFlags, func(i, j int) bool {
			return mergedFlags[i].ID < mergedFlags[j].ID
		})
		sub.Flags = mergedFlags

		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			FileName:   fileName(sub.ID),
		}

		types := []Outputs{
			{Template: filepath.Join(docs, "templates", "drush.md.tmpl"), Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
			{Template: filepath.Join(docs, "templates", "drush.man.tmpl"), Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "drush-", Suffix: ".1"},
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0o755); err != nil {
				panic(err)
			}

			path := filepath.Join(t.Folder, t.Prefix+metadata.FileName+t.Suffix)
			fmt.Println("Generating", path)
			tmpl, err := template.ParseFiles(t.Template)
			if err != nil {
				panic(err)
			}

			file, err := os.Create(path)
			if err != nil {
				panic(err)
			}
			if err := tmpl.Execute(file, metadata); err != nil {
				panic(err)
			}
			file.Close()
		}
	}
}

// commandFileSubcommands describes every command defined in the command
// files under dir.
func commandFileSubcommands(dir string) []Subcommand {
	files, warnings := discovery.Discover([]string{dir}, preflight.NamespacePrefix)
	files.Exclude(preflight.ExcludedCommandFiles...)
	defs, errs := command.LoadDefinitions(files, []string{dir})
	for _, w := range append(warnings, errs...) {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	subs := make([]Subcommand, 0, len(defs))
	for _, d := range defs {
		usage := d.Usage
		if usage == "" {
			usage = "drush " + d.Name + " [options] [arguments]"
		}
		sub := Subcommand{
			ID:          d.Name,
			Short:       d.Description,
			Description: d.Description,
			Usage:       usage,
		}
		if d.Bootstrap == command.BootstrapRoot {
			sub.Notes = append(sub.Notes, "Needs a site root.")
		}
		if len(d.Aliases) > 0 {
			sub.Notes = append(sub.Notes, "Aliases: "+strings.Join(d.Aliases, ", "))
		}
		for _, o := range d.Options {
			syntax := "--" + o.Name + " <value>"
			if o.Short != "" {
				syntax = "-" + o.Short + ", " + syntax
			}
			sub.Flags = append(sub.Flags, Flag{
				ID:          o.Name,
				Syntax:      syntax,
				Description: o.Description,
				Default:     o.Default,
			})
		}
		subs = append(subs, sub)
	}
	return subs
}

// fileName maps a command name to a file name, e.g. config:get to
// config-get.
func fileName(id string) string {
	return strings.ReplaceAll(id, ":", "-")
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
