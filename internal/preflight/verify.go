// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package preflight

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/hashicorp/go-version"
)

// DefaultMinimumVersion is the oldest Go runtime drush runs on when the
// configuration does not say otherwise.
const DefaultMinimumVersion = "1.22"

// Requirements is what Verify checks.
type Requirements struct {
	// MinimumVersion is a version constraint floor, e.g. "1.22".
	MinimumVersion string
	// Extensions are executables that must be on PATH.
	Extensions []string
}

// Verifier checks the running process against Requirements. The fields are
// swappable for tests.
type Verifier struct {
	RuntimeVersion func() string
	LookPath       func(string) (string, error)
}

// DefaultVerifier checks the real runtime and PATH.
func DefaultVerifier() Verifier {
	return Verifier{RuntimeVersion: runtime.Version, LookPath: exec.LookPath}
}

// Verify returns an EnvironmentVerificationFailure when the runtime is older
// than req.MinimumVersion or an extension is missing.
func (v Verifier) Verify(req Requirements) error {
	minimum := req.MinimumVersion
	if minimum == "" {
		minimum = DefaultMinimumVersion
	}
	want, err := version.NewVersion(minimum)
	if err != nil {
		return fail(EnvironmentVerificationFailure, "invalid minimum runtime version %q: %w", minimum, err)
	}

	raw := v.RuntimeVersion()
	if strings.HasPrefix(raw, "devel") {
		// Toolchain built from source; assume it is current.
		return v.checkExtensions(req.Extensions)
	}
	have, err := version.NewVersion(normalizeGoVersion(raw))
	if err != nil {
		return fail(EnvironmentVerificationFailure, "unrecognized runtime version %q: %w", raw, err)
	}
	if have.LessThan(want) {
		return fail(EnvironmentVerificationFailure, "runtime %s is older than the required %s", have, want)
	}

	return v.checkExtensions(req.Extensions)
}

func (v Verifier) checkExtensions(exts []string) error {
	var missing []string
	for _, ext := range exts {
		if _, err := v.LookPath(ext); err != nil {
			missing = append(missing, ext)
		}
	}
	if len(missing) > 0 {
		return fail(EnvironmentVerificationFailure, "required extensions not found: %s", strings.Join(missing, ", "))
	}
	return nil
}

// normalizeGoVersion turns "go1.24.1 X:nocoverageredesign" or "devel +abc"
// into something go-version parses.
func normalizeGoVersion(v string) string {
	v = strings.TrimPrefix(v, "go")
	if i := strings.IndexAny(v, " +"); i >= 0 {
		v = v[:i]
	}
	return v
}
