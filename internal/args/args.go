// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package args

import (
	"slices"
	"strconv"
	"strings"
)

// Field names for the preflight options we extract.
const (
	fieldRoot     = "root"
	fieldConfig   = "config"
	fieldInclude  = "include"
	fieldCoverage = "coverage"
	fieldLocal    = "local"
)

// valuedOptions maps every accepted spelling of a valued preflight option to
// the field it populates. Both --opt=value and --opt value are accepted.
var valuedOptions = map[string]string{
	"--root":           fieldRoot,
	"-r":               fieldRoot,
	"--config":         fieldConfig,
	"--include":        fieldInclude,
	"--drush-coverage": fieldCoverage,
}

// booleanOptions take no separate value token. --local=false is honored.
var booleanOptions = map[string]string{
	"--local": fieldLocal,
}

// Args is the preflight view of the command line. It is immutable after
// Preprocess returns; accessors hand out copies.
type Args struct {
	original  []string
	remainder []string
	site      string
	root      string
	config    string
	include   string
	coverage  string
	local     bool
}

// Preprocess scans raw (os.Args without the program name) for the small set
// of options preflight needs and returns them alongside the untouched
// remainder. It never fails: unknown flags and positionals pass through in
// their original relative order. When an option repeats, the last one wins.
// A bare "--" stops scanning and it, plus everything after it, is passed
// through verbatim.
func Preprocess(raw []string) Args {
	a := Args{
		original:  slices.Clone(raw),
		remainder: []string{},
	}

	positionalSeen := false
	for i := 0; i < len(raw); i++ {
		tok := raw[i]

		if tok == "--" {
			a.remainder = append(a.remainder, raw[i:]...)
			break
		}

		if strings.HasPrefix(tok, "-") && len(tok) > 1 {
			name, value, hasValue := strings.Cut(tok, "=")

			if field, ok := valuedOptions[name]; ok {
				if !hasValue {
					// The value is the next token unless that token is itself a flag,
					// in which case the option is present but empty.
					if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
						value = raw[i+1]
						i++
					}
				}
				a.set(field, value)
				continue
			}

			if field, ok := booleanOptions[name]; ok {
				on := true
				if hasValue {
					b, err := strconv.ParseBool(value)
					if err != nil {
						// Not ours to judge. Let the full grammar complain.
						a.remainder = append(a.remainder, tok)
						continue
					}
					on = b
				}
				if field == fieldLocal {
					a.local = on
				}
				continue
			}

			a.remainder = append(a.remainder, tok)
			continue
		}

		if !positionalSeen {
			positionalSeen = true
			if len(tok) > 1 && strings.HasPrefix(tok, "@") {
				a.site = tok
				continue
			}
		}

		a.remainder = append(a.remainder, tok)
	}

	return a
}

func (a *Args) set(field, value string) {
	switch field {
	case fieldRoot:
		a.root = value
	case fieldConfig:
		a.config = value
	case fieldInclude:
		a.include = value
	case fieldCoverage:
		a.coverage = value
	}
}

// Original returns the argument list exactly as it was received.
func (a Args) Original() []string { return slices.Clone(a.original) }

// Remainder returns every token preflight did not consume, in order.
func (a Args) Remainder() []string { return slices.Clone(a.remainder) }

// Alias returns the @-prefixed site selector, or "" when none was given.
func (a Args) Alias() string { return a.site }

// Root returns the --root override.
func (a Args) Root() string { return a.root }

// ConfigPath returns the --config override.
func (a Args) ConfigPath() string { return a.config }

// IncludePath returns the --include command search path.
func (a Args) IncludePath() string { return a.include }

// CoverageFile returns the --drush-coverage output file.
func (a Args) CoverageFile() string { return a.coverage }

// IsLocal reports whether --local was given.
func (a Args) IsLocal() bool { return a.local }

// SelectedSite returns the site hint: --root when present, otherwise the @
// selector.
func (a Args) SelectedSite() string {
	if a.root != "" {
		return a.root
	}
	return a.site
}

// Has reports whether any of names appears as a flag in the remainder, either
// bare or in --name=value form. Scanning stops at "--".
func (a Args) Has(names ...string) bool {
	for _, tok := range a.remainder {
		if tok == "--" {
			return false
		}
		name, _, _ := strings.Cut(tok, "=")
		if slices.Contains(names, name) {
			return true
		}
	}
	return false
}

// IsPathHint reports whether a site hint names a filesystem location rather
// than an alias. "@/srv/site", "@./web" and "/srv/site" are paths; "@prod" is
// not.
func IsPathHint(hint string) bool {
	h := strings.TrimPrefix(hint, "@")
	if h == "" {
		return false
	}
	return strings.HasPrefix(h, "/") ||
		strings.HasPrefix(h, ".") ||
		strings.HasPrefix(h, "~") ||
		!strings.HasPrefix(hint, "@")
}
