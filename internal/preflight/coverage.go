// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package preflight

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/coverage"
	"strings"
	"sync"
)

// Coverage is the scoped guard around coverage collection. Acquire it once
// and Release it on every exit path; Release is idempotent.
type Coverage struct {
	path string
	once sync.Once
	err  error

	writeCounters func(io.Writer) error
	writeMeta     func(io.Writer) error
}

// AcquireCoverage prepares the output file so a bad path fails before any
// command runs.
func AcquireCoverage(path string) (*Coverage, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open coverage file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to open coverage file: %w", err)
	}
	return &Coverage{
		path:          path,
		writeCounters: coverage.WriteCounters,
		writeMeta:     coverage.WriteMeta,
	}, nil
}

// Path is the counters file.
func (c *Coverage) Path() string {
	return c.path
}

// Release writes the counters to Path and the meta-data to Path+".meta". A
// binary built without -cover produces empty files, not an error.
func (c *Coverage) Release() error {
	if c == nil {
		return nil
	}
	c.once.Do(func() {
		c.err = errors.Join(
			c.write(c.path, c.writeCounters),
			c.write(c.path+".meta", c.writeMeta),
		)
	})
	return c.err
}

func (c *Coverage) write(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write coverage: %w", err)
	}
	defer f.Close()

	if err := fn(f); err != nil && !isNotInstrumented(err) {
		return fmt.Errorf("failed to write coverage: %w", err)
	}
	return nil
}

// isNotInstrumented matches the runtime/coverage error for binaries built
// without -cover.
func isNotInstrumented(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "not built with -cover") || strings.Contains(msg, "no meta-data")
}
