// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/drush-go/drush/internal/command/expr"
	"github.com/drush-go/drush/internal/config"
	"github.com/drush-go/drush/internal/meta"
	"github.com/drush-go/drush/internal/output"
)

const metaKey = "meta"

// GetMeta returns the meta.Meta stored in the command's Metadata, falling
// back to the root command's. If missing, it returns an empty Meta.
func GetMeta(cmd *cli.Command) *meta.Meta {
	if cmd == nil {
		return &meta.Meta{}
	}
	for _, c := range []*cli.Command{cmd, cmd.Root()} {
		if c == nil || c.Metadata == nil {
			continue
		}
		if m, ok := c.Metadata[metaKey].(*meta.Meta); ok && m != nil {
			return m
		}
	}
	return &meta.Meta{}
}

// stdout is the writer command output goes to.
func stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}

// renderOptions collects the output flags shared by every listing command.
func renderOptions(cmd *cli.Command, m *meta.Meta) output.Options {
	padding, _ := m.Config.GetInt("options.padding", 2)
	return output.Options{
		Format:  cmd.String("format"),
		Fields:  splitList(cmd.String("fields")),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: padding,
		Config:  m.Config,
	}
}

// variables builds the evaluation scope shared by command-file templates,
// config:eval and config:shell.
func variables(cmd *cli.Command, m *meta.Meta) expr.Vars {
	uri := cmd.String("uri")
	if uri == "" {
		uri, _ = m.Config.GetString("options.uri", DefaultURI)
	}

	var merged map[string]interface{}
	if v, ok := m.Config.Query("@this").Value().(map[string]interface{}); ok {
		merged = v
		delete(merged, config.EnvPrefix)
	}

	var args []string
	if cmd.Args() != nil {
		args = cmd.Args().Slice()
	}

	return expr.Vars{
		"site": expr.ToCty(map[string]interface{}{
			"root":  m.Root,
			"found": m.Found,
			"alias": m.Alias,
			"uri":   uri,
		}),
		"env":    expr.ToCty(m.Config.Env()),
		"config": expr.ToCty(merged),
		"args":   expr.ToCty(args),
	}
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
