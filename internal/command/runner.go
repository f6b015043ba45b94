// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes the script produced by a command file's run template.
type Runner interface {
	Run(ctx context.Context, script, dir string, stdout, stderr io.Writer) error
}

// ShellRunner runs scripts with "<Shell> -c". An empty Shell means sh.
type ShellRunner struct {
	Shell string
}

// Run implements Runner.
func (r ShellRunner) Run(ctx context.Context, script, dir string, stdout, stderr io.Writer) error {
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}
	if !pathHas(shell) {
		return fmt.Errorf("%s not found on PATH", shell)
	}

	c := exec.CommandContext(ctx, shell, "-c", script)
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to run %q: %w", script, err)
	}
	return nil
}
