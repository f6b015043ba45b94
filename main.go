// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/drush-go/drush/internal/aws"
	"github.com/drush-go/drush/internal/command"
	"github.com/drush-go/drush/internal/environment"
	"github.com/drush-go/drush/internal/log"
	"github.com/drush-go/drush/internal/meta"
	"github.com/drush-go/drush/internal/preflight"
	"github.com/drush-go/drush/internal/version"
)

// ExitDispatch is returned when the command itself fails.
const ExitDispatch = 2

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// realMain runs preflight and then the dispatcher. The coverage guard is
// released on every path out, including a panic.
func realMain(raw []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	env, err := environment.Detect()
	if err != nil {
		fmt.Fprintf(stderr, "drush: %v\n", err)
		return preflight.ExitFailure
	}

	pf := preflight.New(ctx, env, raw, preflight.WithFetcher(aws.NewFetcher()))
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "drush: %v\n", r)
			code = preflight.ExitFailure
		}
		if err := pf.Close(); err != nil {
			fmt.Fprintf(stderr, "drush: %v\n", err)
		}
	}()

	out, err := pf.Run()
	if err != nil {
		return exitCode(err, stderr)
	}

	if out.Target == preflight.Remote {
		fmt.Fprintf(stderr, "drush: remote dispatch to %s is not supported\n", out.Host)
		return preflight.ExitRemoteTarget
	}

	m := out.Meta
	log.InitLogger(log.Options{
		Verbose: m.Flags.Verbose,
		Debug:   m.Flags.Debug,
		Quiet:   m.Flags.Quiet,
		Writer:  stderr,
	})
	log.ReplayWarnings(m.Warnings)
	log.Debugf("args captured: args=%v root=%q", m.Args, m.Root)

	if handleVersion(m, stdout) {
		return 0
	}

	return initAndRunApp(m, stdin, stdout, stderr)
}

// exitCode prints a preflight failure as a single line and maps it to its
// exit status.
func exitCode(err error, stderr io.Writer) int {
	fmt.Fprintf(stderr, "drush: %v\n", err)
	var pe *preflight.Error
	if errors.As(err, &pe) {
		return pe.Code()
	}
	return preflight.ExitFailure
}

// handleVersion checks for --version and returns whether it was handled.
func handleVersion(m *meta.Meta, stdout io.Writer) bool {
	if m.Preflight.Has("--version") {
		fmt.Fprintln(stdout, version.String())
		return true
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(m *meta.Meta, stdin io.Reader, stdout, stderr io.Writer) int {
	app, err := command.InitApp(ctx, m, command.WithIO(stdin, stdout, stderr))
	if err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app init err: err=%v", err)
		return preflight.ExitFailure
	}

	args := handleNakedCommand(append([]string{"drush"}, m.Remainder...))
	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app run err: err=%v", err)
		return ExitDispatch
	}

	return 0
}
