// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/drush-go/drush/internal/log"
	"github.com/drush-go/drush/internal/meta"
)

// DiffLayers writes the difference between two JSON documents. Top-level
// keys named in ignore are removed from both sides first.
func DiffLayers(w io.Writer, left, right []byte, ignore []string, color bool) error {
	log.Debugf("len(layers): %d %d", len(left), len(right))

	left, err := dropKeys(left, ignore)
	if err != nil {
		return err
	}
	right, err = dropKeys(right, ignore)
	if err != nil {
		return err
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return fmt.Errorf("failed to compare sources: %w", err)
	}

	if !delta.Modified() {
		_, err := fmt.Fprintln(w, "The sources are identical.")
		return err
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return fmt.Errorf("failed to unmarshal source: %w", err)
	}

	f := formatter.NewAsciiFormatter(jdoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	})
	diffString, err := f.Format(delta)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, diffString)
	return err
}

func dropKeys(raw []byte, keys []string) ([]byte, error) {
	if len(keys) == 0 {
		return raw, nil
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal source: %w", err)
	}
	for _, k := range keys {
		delete(doc, k)
	}
	return json.Marshal(doc)
}

func configDiffCommandAction(s *settings) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		m := GetMeta(cmd)
		log.Debugf("Executing action for %v", m.Args)

		names := cmd.Args().Slice()
		switch {
		case len(names) == 2:
		case len(names) == 0 && s.isTerminal():
			picked, err := SelectLayers(layerNames(m.Config), s.stdin, s.stdout)
			if err != nil {
				return err
			}
			if len(picked) != 2 {
				return nil
			}
			names = picked
		default:
			return fmt.Errorf("config:diff needs two source names, one of %v", layerNames(m.Config))
		}

		left, err := layerJSON(m.Config, names[0])
		if err != nil {
			return err
		}
		right, err := layerJSON(m.Config, names[1])
		if err != nil {
			return err
		}
		return DiffLayers(stdout(cmd), left, right, splitList(cmd.String("ignore")), cmd.Bool("color"))
	}
}

func configDiffCommandBuilder(m *meta.Meta, s *settings) *cli.Command {
	return &cli.Command{
		Name:      "config:diff",
		Aliases:   []string{"cdiff"},
		Usage:     "compare two configuration sources",
		UsageText: "drush config:diff [<source> <source>] [options]",
		ArgsUsage: "[<source> <source>]",
		Category:  "config",
		Metadata: map[string]any{
			metaKey: m,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored diff output",
			},
			&cli.StringFlag{
				Name:  "ignore",
				Usage: "comma-separated list of top-level keys to leave out of the comparison",
			},
		},
		Action: configDiffCommandAction(s),
	}
}
