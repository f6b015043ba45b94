// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package log wraps apex/log with a compact single-letter handler. Preflight
// runs before it is initialized; the dispatcher calls InitLogger and then
// ReplayWarnings with whatever preflight collected.
package log
