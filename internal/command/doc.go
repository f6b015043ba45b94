// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command is the drush dispatcher. It turns the preflight hand-off
// into a urfave/cli command tree made of the Go built-ins (status, config:*,
// user:login, completion) and the commands declared in discovered
// *.drush.hcl files.
package command
