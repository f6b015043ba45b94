// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/drush-go/drush/internal/filters"
	"github.com/drush-go/drush/internal/log"
	"github.com/drush-go/drush/internal/meta"
	"github.com/drush-go/drush/internal/output"
	"github.com/drush-go/drush/internal/version"
)

var statusColumns = []output.Column{
	{Key: "name", Title: "NAME"},
	{Key: "value", Title: "VALUE"},
}

// statusFields returns the status report in display order.
func statusFields(cmd *cli.Command, m *meta.Meta) []map[string]interface{} {
	root := m.Root
	if !m.Found {
		root = ""
	}

	paths := make([]string, 0)
	for _, s := range m.Config.Sources() {
		paths = append(paths, s.Path)
	}

	pkgs := make([]string, 0, len(m.Packages))
	for _, p := range m.Packages {
		pkgs = append(pkgs, p.Name+":"+p.Version)
	}

	field := func(name string, value interface{}) map[string]interface{} {
		return map[string]interface{}{"name": name, "value": value}
	}
	return []map[string]interface{}{
		field("drush-version", version.String()),
		field("runtime", version.Runtime()),
		field("root", root),
		field("site", m.Alias),
		field("uri", cmd.String("uri")),
		field("config", paths),
		field("command-files", len(m.Commands)),
		field("autoloader", m.Autoloaded),
		field("packages", pkgs),
		field("warnings", len(m.Warnings)),
	}
}

func statusCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	opts := renderOptions(cmd, m)
	rows := statusFields(cmd, m)

	// --fields names report entries here, not columns.
	if len(opts.Fields) > 0 {
		rows = slices.DeleteFunc(rows, func(r map[string]interface{}) bool {
			return !slices.Contains(opts.Fields, r["name"].(string))
		})
		opts.Fields = nil
	}

	switch opts.Format {
	case output.FormatJSON, output.FormatYAML:
		rows = filters.FilterRows(rows, opts.Filter)
		doc := make(map[string]interface{}, len(rows))
		for _, r := range rows {
			doc[r["name"].(string)] = r["value"]
		}
		return output.RenderValue(stdout(cmd), doc, opts.Format)
	}
	return output.Render(stdout(cmd), rows, statusColumns, opts)
}

func statusCommandBuilder(m *meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Aliases:   []string{"st", "core:status"},
		Usage:     "show the resolved site, configuration and environment",
		UsageText: "drush [@alias] status [options]",
		Category:  "core",
		Metadata: map[string]any{
			metaKey: m,
		},
		Flags:  NewGlobalFlags(),
		Action: statusCommandAction,
	}
}
