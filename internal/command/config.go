// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/drush-go/drush/internal/command/expr"
	"github.com/drush-go/drush/internal/config"
	"github.com/drush-go/drush/internal/log"
	"github.com/drush-go/drush/internal/meta"
	"github.com/drush-go/drush/internal/output"
)

// MergedLayer names the merged file configuration wherever a source name is
// accepted.
const MergedLayer = "merged"

// layerJSON returns the named source as JSON. "merged" is the merged file
// configuration and "env" the environment namespace.
func layerJSON(cfg *config.Config, name string) ([]byte, error) {
	if name == MergedLayer {
		raw, err := cfg.JSON()
		if err != nil {
			return nil, err
		}
		doc, ok := gjson.ParseBytes(raw).Value().(map[string]interface{})
		if !ok {
			return []byte("{}"), nil
		}
		delete(doc, config.EnvPrefix)
		return json.Marshal(doc)
	}

	data, ok := cfg.Layer(name)
	if !ok {
		return nil, fmt.Errorf("no configuration source named %q", name)
	}
	if data == nil {
		data = map[string]any{}
	}
	return json.Marshal(data)
}

// layerNames lists every name layerJSON accepts, lowest precedence first.
func layerNames(cfg *config.Config) []string {
	var names []string
	seen := map[string]bool{}
	for _, s := range cfg.Sources() {
		if !seen[s.Name] {
			seen[s.Name] = true
			names = append(names, s.Name)
		}
	}
	return append(names, config.EnvPrefix, MergedLayer)
}

func configGetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	key := cmd.Args().First()
	if key == "" {
		return fmt.Errorf("config:get needs a key, e.g. options.uri")
	}

	var res gjson.Result
	if layer := cmd.String("source"); layer != "" {
		raw, err := layerJSON(m.Config, layer)
		if err != nil {
			return err
		}
		res = gjson.GetBytes(raw, key)
	} else {
		res = m.Config.Query(key)
	}

	if !res.Exists() {
		return fmt.Errorf("no value at %s", key)
	}
	return output.RenderValue(stdout(cmd), res.Value(), cmd.String("format"))
}

func configGetCommandBuilder(m *meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "config:get",
		Aliases:   []string{"cget"},
		Usage:     "print a configuration value",
		UsageText: "drush config:get <key> [options]",
		ArgsUsage: "<key>",
		Category:  "config",
		Metadata: map[string]any{
			metaKey: m,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format",
				Value: output.FormatTable,
				Validator: func(value string) error {
					return FlagValidators(value, FormatValidator)
				},
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "read from a single configuration source instead of the merged view",
			},
		},
		Action: configGetCommandAction,
	}
}

var sourceColumns = []output.Column{
	{Key: "order", Title: "#"},
	{Key: "name", Title: "SOURCE"},
	{Key: "tier", Title: "TIER"},
	{Key: "path", Title: "PATH"},
	{Key: "keys", Title: "KEYS"},
	{Key: "size", Title: "SIZE"},
	{Key: "modified", Title: "MODIFIED"},
}

// sourceRows describes each file source, lowest precedence first.
func sourceRows(cfg *config.Config) []map[string]interface{} {
	var rows []map[string]interface{}
	for i, s := range cfg.Sources() {
		row := map[string]interface{}{
			"order":    i + 1,
			"name":     s.Name,
			"tier":     s.Tier.String(),
			"path":     s.Path,
			"keys":     len(s.Data),
			"size":     "",
			"modified": "",
		}
		if !strings.Contains(s.Path, "://") {
			if info, err := os.Stat(s.Path); err == nil {
				row["size"] = humanize.Bytes(uint64(info.Size()))
				row["modified"] = humanize.Time(info.ModTime())
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func configSourcesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	opts := renderOptions(cmd, m)
	rows := sourceRows(m.Config)
	if len(rows) == 0 && opts.Format == output.FormatTable {
		_, err := fmt.Fprintln(stdout(cmd), "No configuration files were loaded.")
		return err
	}
	return output.Render(stdout(cmd), rows, sourceColumns, opts)
}

func configSourcesCommandBuilder(m *meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "config:sources",
		Aliases:   []string{"csrc"},
		Usage:     "list the configuration files in merge order",
		UsageText: "drush config:sources [options]",
		Category:  "config",
		Metadata: map[string]any{
			metaKey: m,
		},
		Flags:  NewGlobalFlags(),
		Action: configSourcesCommandAction,
	}
}

func configEvalCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	src := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("config:eval needs an expression, e.g. 'upper(site.uri)'")
	}

	val, err := expr.Eval(src, variables(cmd, m))
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if format == output.FormatTable {
		_, err = fmt.Fprintln(stdout(cmd), expr.Format(val))
		return err
	}
	return output.RenderValue(stdout(cmd), expr.FromCty(val), format)
}

func configEvalCommandBuilder(m *meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "config:eval",
		Aliases:   []string{"ev"},
		Usage:     "evaluate an expression against the site and configuration",
		UsageText: "drush config:eval <expression>",
		ArgsUsage: "<expression>",
		Category:  "config",
		Description: "Variables: site.root, site.uri, site.alias, site.found, config.*, env.*, args.\n" +
			"Functions: " + strings.Join(expr.FunctionNames(), ", "),
		Metadata: map[string]any{
			metaKey: m,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format",
				Value: output.FormatTable,
				Validator: func(value string) error {
					return FlagValidators(value, FormatValidator)
				},
			},
		},
		Action: configEvalCommandAction,
	}
}
