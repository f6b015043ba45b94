// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package preflight sequences everything that has to happen before a command
// can be dispatched: runtime verification, argument preprocessing, layered
// configuration, site root resolution, autoloader detection and command file
// discovery. It runs before logging exists, so it never logs. Fatal problems
// are returned as *Error; degraded ones are collected as Warnings for the
// dispatcher to report.
package preflight
