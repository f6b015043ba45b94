// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package args

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name      string
		raw       []string
		remainder []string
		alias     string
		root      string
		config    string
		include   string
		coverage  string
		local     bool
	}{
		{
			name:      "empty",
			raw:       []string{},
			remainder: []string{},
		},
		{
			name:      "alias command local",
			raw:       []string{"@self", "status", "--local"},
			remainder: []string{"status"},
			alias:     "@self",
			local:     true,
		},
		{
			name:      "equals form",
			raw:       []string{"--root=/srv/site", "--config=/tmp/d.yml", "cr"},
			remainder: []string{"cr"},
			root:      "/srv/site",
			config:    "/tmp/d.yml",
		},
		{
			name:      "space form",
			raw:       []string{"--include", "/opt/cmds", "--drush-coverage", "/tmp/cov", "status"},
			remainder: []string{"status"},
			include:   "/opt/cmds",
			coverage:  "/tmp/cov",
		},
		{
			name:      "short root",
			raw:       []string{"-r", "/srv/site", "status"},
			remainder: []string{"status"},
			root:      "/srv/site",
		},
		{
			name:      "last occurrence wins",
			raw:       []string{"--root=/a", "status", "--root", "/b", "--root=/c"},
			remainder: []string{"status"},
			root:      "/c",
		},
		{
			name:      "unknown flags pass through",
			raw:       []string{"--uri=http://example.com", "-y", "status", "--format", "json"},
			remainder: []string{"--uri=http://example.com", "-y", "status", "--format", "json"},
		},
		{
			name:      "alias only as first positional",
			raw:       []string{"status", "@prod"},
			remainder: []string{"status", "@prod"},
		},
		{
			name:      "alias after leading flags",
			raw:       []string{"-v", "@prod", "status"},
			remainder: []string{"-v", "status"},
			alias:     "@prod",
		},
		{
			name:      "double dash stops scanning",
			raw:       []string{"sql:cli", "--", "--root=/x", "--local"},
			remainder: []string{"sql:cli", "--", "--root=/x", "--local"},
		},
		{
			name:      "valued option followed by flag is empty",
			raw:       []string{"--config", "--local", "status"},
			remainder: []string{"status"},
			local:     true,
		},
		{
			name:      "local false",
			raw:       []string{"--local", "--local=false", "status"},
			remainder: []string{"status"},
			local:     false,
		},
		{
			name:      "local with junk value passes through",
			raw:       []string{"--local=maybe", "status"},
			remainder: []string{"--local=maybe", "status"},
		},
		{
			name:      "bare at sign is not an alias",
			raw:       []string{"@", "status"},
			remainder: []string{"@", "status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Preprocess(tt.raw)

			assert.Equal(t, tt.remainder, a.Remainder())
			assert.Equal(t, tt.raw, a.Original())
			assert.Equal(t, tt.alias, a.Alias())
			assert.Equal(t, tt.root, a.Root())
			assert.Equal(t, tt.config, a.ConfigPath())
			assert.Equal(t, tt.include, a.IncludePath())
			assert.Equal(t, tt.coverage, a.CoverageFile())
			assert.Equal(t, tt.local, a.IsLocal())
		})
	}
}

// Every token that is not a preflight option must survive in order.
func TestPreprocess_PassthroughOrder(t *testing.T) {
	inputs := [][]string{
		{"@dev", "-v", "sql:query", "--root", "/srv", "SELECT 1", "--db-prefix", "--local"},
		{"--debug", "cr", "--config=/x.yml", "--yes", "extra", "--include", "/i", "more"},
		{"user:login", "--name", "admin", "--drush-coverage=/tmp/c", "--uri", "http://x"},
	}
	consumed := map[string]bool{
		"@dev": true, "--root": true, "/srv": true, "--local": true,
		"--config=/x.yml": true, "--include": true, "/i": true,
		"--drush-coverage=/tmp/c": true,
	}

	for _, in := range inputs {
		var want []string
		for _, tok := range in {
			if !consumed[tok] {
				want = append(want, tok)
			}
		}
		got := Preprocess(in).Remainder()
		assert.Equal(t, want, got, "input %v", in)
	}
}

func TestArgs_Immutable(t *testing.T) {
	raw := []string{"@self", "status"}
	a := Preprocess(raw)
	raw[1] = "changed"

	orig := a.Original()
	orig[0] = "@other"
	rem := a.Remainder()
	rem[0] = "other"

	assert.Equal(t, []string{"@self", "status"}, a.Original())
	assert.Equal(t, []string{"status"}, a.Remainder())
	assert.Equal(t, "@self", a.Alias())
}

func TestSelectedSite(t *testing.T) {
	assert.Equal(t, "", Preprocess([]string{"status"}).SelectedSite())
	assert.Equal(t, "@prod", Preprocess([]string{"@prod", "status"}).SelectedSite())
	assert.Equal(t, "/srv", Preprocess([]string{"@prod", "--root=/srv"}).SelectedSite())
}

func TestHas(t *testing.T) {
	a := Preprocess([]string{"-v", "status", "--simulate=1", "--", "--yes"})

	assert.True(t, a.Has("--verbose", "-v"))
	assert.True(t, a.Has("--simulate"))
	assert.False(t, a.Has("--yes", "-y"), "tokens after -- are arguments")
	assert.False(t, a.Has("--debug"))
}

func TestIsPathHint(t *testing.T) {
	tests := map[string]bool{
		"":          false,
		"@":         false,
		"@prod":     false,
		"@self":     false,
		"@/srv/web": true,
		"@./web":    true,
		"@~/site":   true,
		"/srv/web":  true,
		"web":       true,
	}
	for hint, want := range tests {
		assert.Equal(t, want, IsPathHint(hint), hint)
	}
}
