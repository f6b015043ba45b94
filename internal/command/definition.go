// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/drush-go/drush/internal/command/expr"
	"github.com/drush-go/drush/internal/log"
	"github.com/drush-go/drush/internal/meta"
)

// definitionCommandAction renders the run template of d and hands the result
// to the runner, or prints it under --simulate.
func definitionCommandAction(d Definition, s *settings) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		m := GetMeta(cmd)
		log.Debugf("Executing action for %s from %s", d.Name, d.Path)

		dir := m.StartingDir
		if d.Bootstrap == BootstrapRoot {
			root, err := m.RequireRoot(d.Name)
			if err != nil {
				return err
			}
			dir = root
		}

		vars := variables(cmd, m)
		options := make(map[string]interface{}, len(d.Options))
		for _, o := range d.Options {
			options[o.Name] = cmd.String(o.Name)
		}
		vars["option"] = expr.ToCty(options)

		script, err := expr.String(d.Run, vars)
		if err != nil {
			return fmt.Errorf("command %s: %w", d.Name, err)
		}
		log.Debugf("script: %s", script)

		if m.Flags.Simulate || cmd.Bool("simulate") {
			_, err := fmt.Fprintln(stdout(cmd), script)
			return err
		}
		return s.runner.Run(ctx, script, dir, stdout(cmd), stderr(cmd))
	}
}

func definitionCommandBuilder(m *meta.Meta, d Definition, s *settings) *cli.Command {
	flags := make([]cli.Flag, 0, len(d.Options))
	for _, o := range d.Options {
		f := &cli.StringFlag{
			Name:  o.Name,
			Usage: o.Description,
			Value: o.Default,
		}
		if o.Short != "" {
			f.Aliases = []string{o.Short}
		}
		flags = append(flags, f)
	}

	usage := d.Usage
	if usage == "" {
		usage = "drush " + d.Name + " [options] [arguments]"
	}

	return &cli.Command{
		Name:      d.Name,
		Aliases:   d.Aliases,
		Usage:     d.Description,
		UsageText: usage,
		Category:  d.Namespace,
		Hidden:    d.Hidden,
		Metadata: map[string]any{
			metaKey: m,
		},
		Flags:  flags,
		Action: definitionCommandAction(d, s),
	}
}
