// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package environment captures the ambient process facts (base path, working
// directory, system and user locations) that preflight needs. The snapshot is
// taken once at startup and treated as read-only ground truth afterwards.
package environment
