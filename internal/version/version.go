// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other drush packages to avoid import cycles.

package version

import (
	"runtime"
	"runtime/debug"
)

// Version is the module version drush was built from, or "dev".
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// Commit is the VCS revision recorded at build time, shortened, or "".
var Commit = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}()

// Runtime is the Go runtime version drush is running on.
func Runtime() string {
	return runtime.Version()
}

// String combines Version and Commit for --version output.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
