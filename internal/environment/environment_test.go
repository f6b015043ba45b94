// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package environment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_Overrides(t *testing.T) {
	base := t.TempDir()
	user := t.TempDir()
	t.Setenv("DRUSH_BASE_PATH", base)
	t.Setenv("DRUSH_USER_DIR", user)
	t.Setenv("DRUSH_SYSTEM_CONFIG_DIR", "/opt/etc/drush")
	t.Setenv("DRUSH_SYSTEM_COMMANDS_DIR", "/opt/share/drush/commands")

	env, err := Detect()
	require.NoError(t, err)

	cwd, _ := os.Getwd()
	assert.Equal(t, base, env.BasePath)
	assert.Equal(t, cwd, env.Cwd)
	assert.Equal(t, "/opt/etc/drush", env.SystemConfigPath)
	assert.Equal(t, "/opt/share/drush/commands", env.SystemCommandsPath)
	assert.Equal(t, user, env.UserConfigPath)
	assert.Equal(t, filepath.Join(user, "commands"), env.UserCommandsPath)
	assert.Equal(t, filepath.Join(base, "commands"), env.BuiltinCommandsPath())
}

func TestDetect_Defaults(t *testing.T) {
	t.Setenv("DRUSH_SYSTEM_CONFIG_DIR", "")
	t.Setenv("DRUSH_SYSTEM_COMMANDS_DIR", "")
	t.Setenv("DRUSH_USER_DIR", "")

	env, err := Detect()
	require.NoError(t, err)
	assert.Equal(t, DefaultSystemConfigDir, env.SystemConfigPath)
	assert.Equal(t, DefaultSystemCommandsDir, env.SystemCommandsPath)
	if env.Home != "" {
		assert.Equal(t, filepath.Join(env.Home, UserDirName), env.UserConfigPath)
	}
}

func TestNew_NoUserDir(t *testing.T) {
	env := New("/base", "/cwd", "", "/etc/drush", "/usr/share/drush/commands", "")
	assert.Empty(t, env.UserConfigPath)
	assert.Empty(t, env.UserCommandsPath)
}

func TestExport(t *testing.T) {
	env := New("/base", "/proj", "/home/u", "/etc/drush", "/usr/share/drush/commands", "/home/u/.drush")
	got := env.Export()

	assert.Equal(t, "/proj", got["cwd"])
	assert.Equal(t, "/base", got["base"])
	assert.Equal(t, "/home/u/.drush/commands", got["user_commands"])
	assert.Len(t, got, 7)
}
