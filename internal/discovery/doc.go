// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package discovery finds command-definition files beneath a list of search
// directories. It is a pure filesystem scan keyed by file name; contents are
// never opened. Turning the files into commands is the dispatcher's job.
package discovery
