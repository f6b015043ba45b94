// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config assembles drush's layered configuration. A Locator collects
// drush.yml sources from the system, user, bundled and site locations (plus an
// explicit --config override) and merges them into a read-only Config with
// the fixed precedence, highest first:
//
//	environment > site > drush > user > system
//
// The environment snapshot lives under the reserved "env" prefix and is never
// overridden by files. Lookups use dotted keys with an optional default, e.g.
// cfg.GetString("options.uri", "http://default").
package config
