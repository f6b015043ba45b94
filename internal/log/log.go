// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

var traceEnabled bool

// Options adjust the level taken from DRUSH_LOG. Debug wins over Verbose,
// which wins over Quiet.
type Options struct {
	Verbose bool
	Debug   bool
	Quiet   bool
	// Writer defaults to os.Stderr so command output on stdout stays clean.
	Writer io.Writer
}

// InitLogger sets up Apex with a custom handler and a log level from the
// DRUSH_LOG env variable, adjusted by the global output flags.
func InitLogger(opts Options) {
	envLevel := strings.ToLower(os.Getenv("DRUSH_LOG"))
	if envLevel == "" {
		envLevel = "error"
	}
	traceEnabled = envLevel == "trace"
	var apexLevel log.Level
	switch envLevel {
	case "trace":
		apexLevel = log.DebugLevel // Show debug and above for trace
	case "debug":
		apexLevel = log.DebugLevel
	case "info":
		apexLevel = log.InfoLevel
	case "warn":
		apexLevel = log.WarnLevel
	case "error":
		apexLevel = log.ErrorLevel
	case "fatal":
		apexLevel = log.FatalLevel
	default:
		apexLevel = log.ErrorLevel
	}

	switch {
	case opts.Debug:
		apexLevel = log.DebugLevel
	case opts.Verbose && apexLevel > log.InfoLevel:
		apexLevel = log.InfoLevel
	case opts.Quiet && !traceEnabled:
		apexLevel = log.ErrorLevel
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	log.SetHandler(&CustomHandler{Writer: w})
	log.SetLevel(apexLevel)
}

// CustomHandler formats log messages and writes them to Writer.
type CustomHandler struct {
	Writer io.Writer
	mu     sync.Mutex
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}
	if err, ok := e.Fields["error"]; ok {
		message = fmt.Sprintf("%s: %v", message, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.Writer, "%s %s %s\n", timestamp, level, message)
	return err
}

// ReplayWarnings logs problems gathered before the logger existed.
func ReplayWarnings(warnings []error) {
	for _, w := range warnings {
		Warnf("%v", w)
	}
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
