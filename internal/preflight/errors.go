// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package preflight

import "fmt"

// Kind classifies a preflight problem.
type Kind int

const (
	// EnvironmentVerificationFailure means the runtime is too old or a
	// required executable is missing. Fatal.
	EnvironmentVerificationFailure Kind = iota + 1
	// ConfigSourceUnreadable means a config file exists but could not be
	// read or parsed. The source is skipped.
	ConfigSourceUnreadable
	// SiteRootProbeFailure means a directory could not be probed for the
	// root marker. That directory is skipped.
	SiteRootProbeFailure
	// AutoloaderLoadFailure means the site's package manifest is present
	// but unusable. Fatal.
	AutoloaderLoadFailure
	// CommandDiscoveryIOFailure means a command directory could not be
	// read. It is skipped.
	CommandDiscoveryIOFailure
	// CoverageUnavailable means the coverage output file could not be
	// created. Fatal.
	CoverageUnavailable
	// InvalidState means a step was called out of order. Fatal.
	InvalidState
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case EnvironmentVerificationFailure:
		return "EnvironmentVerificationFailure"
	case ConfigSourceUnreadable:
		return "ConfigSourceUnreadable"
	case SiteRootProbeFailure:
		return "SiteRootProbeFailure"
	case AutoloaderLoadFailure:
		return "AutoloaderLoadFailure"
	case CommandDiscoveryIOFailure:
		return "CommandDiscoveryIOFailure"
	case CoverageUnavailable:
		return "CoverageUnavailable"
	case InvalidState:
		return "InvalidState"
	default:
		return "Unknown"
	}
}

// Exit codes for fatal preflight errors. Anything not listed exits with
// ExitFailure.
const (
	ExitFailure      = 1
	ExitEnvironment  = 3
	ExitAutoloader   = 4
	ExitRemoteTarget = 5
)

// Error is a fatal preflight failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code is the process exit status for the error.
func (e *Error) Code() int {
	switch e.Kind {
	case EnvironmentVerificationFailure:
		return ExitEnvironment
	case AutoloaderLoadFailure:
		return ExitAutoloader
	default:
		return ExitFailure
	}
}

func fail(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Warning is a degraded problem. The pipeline carried on without the source,
// directory or probe it refers to.
type Warning struct {
	Kind Kind
	Err  error
}

func (w Warning) Error() string {
	return w.Err.Error()
}

func (w Warning) Unwrap() error {
	return w.Err
}
