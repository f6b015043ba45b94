// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger_Level(t *testing.T) {
	tests := []struct {
		name string
		env  string
		opts Options
		want log.Level
	}{
		{name: "default", want: log.ErrorLevel},
		{name: "env warn", env: "warn", want: log.WarnLevel},
		{name: "env trace", env: "TRACE", want: log.DebugLevel},
		{name: "junk", env: "loud", want: log.ErrorLevel},
		{name: "verbose", opts: Options{Verbose: true}, want: log.InfoLevel},
		{name: "verbose does not lower debug", env: "debug", opts: Options{Verbose: true}, want: log.DebugLevel},
		{name: "debug wins", opts: Options{Debug: true, Quiet: true}, want: log.DebugLevel},
		{name: "quiet", env: "info", opts: Options{Quiet: true}, want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DRUSH_LOG", tt.env)
			tt.opts.Writer = &bytes.Buffer{}
			InitLogger(tt.opts)
			logger, ok := log.Log.(*log.Logger)
			if assert.True(t, ok) {
				assert.Equal(t, tt.want, logger.Level)
			}
		})
	}
}

func TestReplayWarnings(t *testing.T) {
	t.Setenv("DRUSH_LOG", "warn")
	var buf bytes.Buffer
	InitLogger(Options{Writer: &buf})

	ReplayWarnings([]error{errors.New("config /etc/drush/drush.yml: permission denied"), errors.New("second")})
	Infof("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], " W config /etc/drush/drush.yml: permission denied")
	assert.Contains(t, lines[1], " W second")
}

func TestCustomHandler_Trace(t *testing.T) {
	t.Setenv("DRUSH_LOG", "trace")
	var buf bytes.Buffer
	InitLogger(Options{Writer: &buf})

	Tracef("walking %s", "/srv")
	WithError(errors.New("boom")).Error("failed")

	out := buf.String()
	assert.Contains(t, out, " T walking /srv")
	assert.Contains(t, out, " E failed: boom")
}
