// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package expr evaluates HCL expressions and string templates against the
// drush configuration. It backs the run templates of command files as well as
// config:eval and the interactive config:shell.
package expr
