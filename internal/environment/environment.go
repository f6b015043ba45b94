// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultSystemConfigDir holds the system-wide drush.yml.
	DefaultSystemConfigDir = "/etc/drush"
	// DefaultSystemCommandsDir holds system-wide command files.
	DefaultSystemCommandsDir = "/usr/share/drush/commands"
	// UserDirName is the per-user drush directory beneath $HOME.
	UserDirName = ".drush"
)

// Environment is a snapshot of the process facts preflight depends on. It is
// assembled once, before argument parsing, and never refreshed.
type Environment struct {
	// BasePath is the directory holding the drush binary and its bundled
	// drush.yml and commands/ tree.
	BasePath string
	Cwd      string
	Home     string

	SystemConfigPath   string
	UserConfigPath     string
	SystemCommandsPath string
	UserCommandsPath   string
}

// Detect builds an Environment from the running process. Each location may be
// overridden with an environment variable so tests and packagers can relocate
// the tool without rebuilding it:
//   - DRUSH_BASE_PATH: application base path
//   - DRUSH_SYSTEM_CONFIG_DIR: system config directory
//   - DRUSH_SYSTEM_COMMANDS_DIR: system command directory
//   - DRUSH_USER_DIR: per-user directory (config + commands)
func Detect() (Environment, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Environment{}, fmt.Errorf("failed to determine working directory: %w", err)
	}

	base := os.Getenv("DRUSH_BASE_PATH")
	if base == "" {
		exe, err := os.Executable()
		if err != nil {
			return Environment{}, fmt.Errorf("failed to locate drush binary: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		base = filepath.Dir(exe)
	}

	// A missing home directory is survivable. User paths are then left empty
	// and the config locator skips them.
	home, _ := os.UserHomeDir()

	userDir := os.Getenv("DRUSH_USER_DIR")
	if userDir == "" && home != "" {
		userDir = filepath.Join(home, UserDirName)
	}

	return New(base, cwd, home,
		envOr("DRUSH_SYSTEM_CONFIG_DIR", DefaultSystemConfigDir),
		envOr("DRUSH_SYSTEM_COMMANDS_DIR", DefaultSystemCommandsDir),
		userDir,
	), nil
}

// New assembles an Environment from explicit locations. userDir may be empty,
// in which case no per-user paths are set.
func New(base, cwd, home, systemConfigDir, systemCommandsDir, userDir string) Environment {
	env := Environment{
		BasePath:           base,
		Cwd:                cwd,
		Home:               home,
		SystemConfigPath:   systemConfigDir,
		SystemCommandsPath: systemCommandsDir,
	}
	if userDir != "" {
		env.UserConfigPath = userDir
		env.UserCommandsPath = filepath.Join(userDir, "commands")
	}
	return env
}

// BuiltinCommandsPath is the tool's own commands directory.
func (e Environment) BuiltinCommandsPath() string {
	return filepath.Join(e.BasePath, "commands")
}

// Export returns the snapshot as a flat key/value map. These keys are what
// the merged configuration exposes under the reserved "env" prefix.
func (e Environment) Export() map[string]any {
	return map[string]any{
		"base":            e.BasePath,
		"cwd":             e.Cwd,
		"home":            e.Home,
		"system_config":   e.SystemConfigPath,
		"user_config":     e.UserConfigPath,
		"system_commands": e.SystemCommandsPath,
		"user_commands":   e.UserCommandsPath,
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
