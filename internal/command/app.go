// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/drush-go/drush/internal/log"
	"github.com/drush-go/drush/internal/meta"
)

// Option customizes InitApp.
type Option func(*settings)

type settings struct {
	runner     Runner
	stdout     io.Writer
	stderr     io.Writer
	stdin      io.Reader
	isTerminal func() bool
	now        func() time.Time
}

// WithRunner replaces the shell runner used by command files.
func WithRunner(r Runner) Option {
	return func(s *settings) { s.runner = r }
}

// WithIO redirects the command tree's standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(s *settings) { s.stdin, s.stdout, s.stderr = in, out, errOut }
}

// WithTerminal overrides terminal detection for the interactive commands.
func WithTerminal(isTerminal func() bool) Option {
	return func(s *settings) { s.isTerminal = isTerminal }
}

// WithClock overrides the time source, e.g. for user:login timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// InitApp builds the command tree from the preflight hand-off: the Go
// built-ins plus one command per definition in the discovered command files.
func InitApp(ctx context.Context, m *meta.Meta, opts ...Option) (*cli.Command, error) {
	s := &settings{
		runner: ShellRunner{},
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	app := &cli.Command{
		Name:      "drush",
		Usage:     "site administration shell",
		UsageText: "drush [@alias] <command> [options] [arguments]",
		Writer:    s.stdout,
		ErrWriter: s.stderr,
		Reader:    s.stdin,
		Suggest:   true,
		Metadata: map[string]any{
			metaKey: m,
		},
		Flags: NewRootFlags(m),
	}

	builtins := []*cli.Command{
		statusCommandBuilder(m),
		configGetCommandBuilder(m),
		configSourcesCommandBuilder(m),
		configDiffCommandBuilder(m, s),
		configEvalCommandBuilder(m),
		configShellCommandBuilder(m, s),
		userLoginCommandBuilder(m, s),
		completionCommandBuilder(m),
	}
	app.Commands = append(app.Commands, builtins...)

	defs, warnings := LoadDefinitions(m.Commands, m.SearchPaths)
	for _, w := range warnings {
		log.Warnf("%v", w)
	}
	for _, d := range defs {
		if taken(builtins, d.Name) {
			log.Warnf("command %s in %s is a built-in and was ignored", d.Name, d.Path)
			continue
		}
		app.Commands = append(app.Commands, definitionCommandBuilder(m, d, s))
	}

	// Make sure flags are sorted for the --help text.
	for _, cmd := range append([]*cli.Command{app}, app.Commands...) {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

func taken(cmds []*cli.Command, name string) bool {
	for _, c := range cmds {
		if c.Name == name || slices.Contains(c.Aliases, name) {
			return true
		}
	}
	return false
}
