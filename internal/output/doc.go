// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders command results as a table, JSON or YAML, honoring
// the --format, --fields and --sort options shared by the built-in commands.
package output
