// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package siteroot finds the root of a site on disk. Starting from a hint
// (--root, a path alias or an alias root) or the current directory, it walks
// up until a directory holds the root marker file. Probe failures on the way
// are returned as warnings; not finding a root is a valid answer.
package siteroot
