// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package preflight

import (
	"context"
	"fmt"
	"strings"

	"github.com/drush-go/drush/internal/args"
	"github.com/drush-go/drush/internal/config"
	"github.com/drush-go/drush/internal/discovery"
	"github.com/drush-go/drush/internal/environment"
	"github.com/drush-go/drush/internal/meta"
	"github.com/drush-go/drush/internal/siteroot"
)

// State is a step of the preflight pipeline. States only move forward.
type State int

const (
	Created State = iota
	EnvironmentVerified
	ArgsParsed
	ConfigAssembled
	LegacyInitialized
	SiteRootResolved
	ConfigExtended
	AutoloadReady
	CommandsDiscovered
	HandedOff
	Failed
)

var stateNames = [...]string{
	"Created",
	"EnvironmentVerified",
	"ArgsParsed",
	"ConfigAssembled",
	"LegacyInitialized",
	"SiteRootResolved",
	"ConfigExtended",
	"AutoloadReady",
	"CommandsDiscovered",
	"HandedOff",
	"Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Target says where the selected site lives.
type Target int

const (
	// Local means the command runs in this process.
	Local Target = iota
	// Remote means the alias names another host.
	Remote
)

// Outcome is the result of a successful preflight.
type Outcome struct {
	Target Target
	// Host is set for Remote.
	Host string
	Meta *meta.Meta
}

// Preflight runs the pipeline for one invocation. Each step is a method that
// must be called in order; Run calls them all. Close must be deferred by the
// caller so the coverage guard is released on every exit path, including
// after hand-off.
type Preflight struct {
	ctx   context.Context
	env   environment.Environment
	raw   []string
	state State

	verifier Verifier
	resolver *siteroot.Resolver
	fetcher  config.Fetcher

	args      args.Args
	locator   *config.Locator
	cfg       *config.Config
	cfgWarned int
	flags     meta.Flags

	site       siteroot.Location
	skipSite   bool
	remoteHost string

	packages []meta.Package
	autoload bool

	searchPaths []string
	files       discovery.Files
	coverage    *Coverage

	warnings []Warning
}

// Option customizes a Preflight.
type Option func(*Preflight)

// WithVerifier replaces the runtime verifier.
func WithVerifier(v Verifier) Option {
	return func(p *Preflight) { p.verifier = v }
}

// WithResolver replaces the site root resolver.
func WithResolver(r *siteroot.Resolver) Option {
	return func(p *Preflight) { p.resolver = r }
}

// WithFetcher enables remote --config locations.
func WithFetcher(f config.Fetcher) Option {
	return func(p *Preflight) { p.fetcher = f }
}

// New returns a Preflight in the Created state. raw is the argument list
// without the program name.
func New(ctx context.Context, env environment.Environment, raw []string, opts ...Option) *Preflight {
	p := &Preflight{
		ctx:      ctx,
		env:      env,
		raw:      raw,
		verifier: DefaultVerifier(),
		resolver: siteroot.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state.
func (p *Preflight) State() State {
	return p.state
}

// Warnings returns the degraded problems collected so far.
func (p *Preflight) Warnings() []Warning {
	return append([]Warning(nil), p.warnings...)
}

// Run executes every step and hands off. It stops at the first failure.
func (p *Preflight) Run() (Outcome, error) {
	steps := []func() error{
		p.VerifyEnvironment,
		p.ParseArgs,
		p.AssembleConfig,
		p.InitLegacy,
		p.ResolveSiteRoot,
		p.ExtendConfig,
		p.LoadAutoloader,
		p.DiscoverCommands,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return Outcome{}, err
		}
	}

	m, err := p.HandOff()
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Target: Local, Meta: m}
	if p.remoteHost != "" {
		out.Target, out.Host = Remote, p.remoteHost
	}
	return out, nil
}

// Close releases the coverage guard, if one was acquired. It is safe to call
// more than once and on any state.
func (p *Preflight) Close() error {
	return p.coverage.Release()
}

// VerifyEnvironment checks the runtime against the built-in requirements.
func (p *Preflight) VerifyEnvironment() error {
	return p.advance(Created, EnvironmentVerified, func() error {
		return p.verifier.Verify(Requirements{})
	})
}

// ParseArgs preprocesses the raw arguments.
func (p *Preflight) ParseArgs() error {
	return p.advance(EnvironmentVerified, ArgsParsed, func() error {
		p.args = args.Preprocess(p.raw)
		return nil
	})
}

// AssembleConfig loads the system, user and bundled configuration plus the
// environment snapshot, then verifies the runtime again against whatever
// requirements the configuration declares.
func (p *Preflight) AssembleConfig() error {
	return p.advance(ArgsParsed, ConfigAssembled, func() error {
		opts := []config.Option{config.WithContext(p.ctx)}
		if p.fetcher != nil {
			opts = append(opts, config.WithFetcher(p.fetcher))
		}
		p.locator = config.NewLocator(opts...)
		p.locator.SetLocal(p.args.IsLocal())
		p.locator.AddUserConfig(p.args.ConfigPath(), p.env.SystemConfigPath, p.env.UserConfigPath)
		p.locator.AddDrushConfig(p.env.BasePath)
		p.locator.AddEnvironment(p.env)
		p.refreshConfig()

		req, err := requirementsFrom(p.cfg)
		if err != nil {
			return err
		}
		return p.verifier.Verify(req)
	})
}

// InitLegacy builds the explicit flag context from the passthrough arguments
// and the options.* configuration.
func (p *Preflight) InitLegacy() error {
	return p.advance(ConfigAssembled, LegacyInitialized, func() error {
		opt := func(key string, names ...string) bool {
			if p.args.Has(names...) {
				return true
			}
			on, _ := p.cfg.GetBool("options."+key, false)
			return on
		}
		p.flags = meta.Flags{
			Verbose:  opt("verbose", "--verbose", "-v"),
			Debug:    opt("debug", "--debug", "-d"),
			Quiet:    opt("quiet", "--quiet", "-q"),
			Yes:      opt("yes", "--yes", "-y"),
			No:       opt("no", "--no", "-n"),
			Simulate: opt("simulate", "--simulate", "-s"),
			Local:    p.args.IsLocal(),
		}
		return nil
	})
}

// ResolveSiteRoot turns the site selector into a root. --root and path
// selectors are searched directly; @self means the current directory; @none
// skips resolution; any other @name is looked up under aliases.<name>. An
// alias with a host is remote and is not resolved locally.
func (p *Preflight) ResolveSiteRoot() error {
	return p.advance(LegacyInitialized, SiteRootResolved, func() error {
		hint := p.siteHint()
		if p.skipSite || p.remoteHost != "" {
			return nil
		}

		p.site = p.resolver.Locate(hint, p.env.Cwd)
		for _, w := range p.site.Warnings {
			p.warn(SiteRootProbeFailure, w)
		}
		return nil
	})
}

func (p *Preflight) siteHint() string {
	if root := p.args.Root(); root != "" {
		return root
	}

	alias := p.args.Alias()
	switch {
	case alias == "" || alias == "@self":
		return ""
	case alias == "@none":
		p.skipSite = true
		return ""
	case args.IsPathHint(alias):
		return alias
	}

	name := strings.TrimPrefix(alias, "@")
	key := "aliases." + name
	if !p.cfg.Has(key) {
		p.warn(SiteRootProbeFailure, fmt.Errorf("site alias %s is not defined", alias))
		return ""
	}
	if host, _ := p.cfg.GetString(key+".host", ""); host != "" {
		p.remoteHost = host
		return ""
	}
	root, _ := p.cfg.GetString(key+".root", "")
	return root
}

// ExtendConfig adds the site configuration once the root is known.
func (p *Preflight) ExtendConfig() error {
	return p.advance(SiteRootResolved, ConfigExtended, func() error {
		if p.site.Found {
			p.locator.AddSitewideConfig(p.site.Root)
			p.refreshConfig()
		}
		return nil
	})
}

// LoadAutoloader reads the site's package manifest. Failure here is fatal.
func (p *Preflight) LoadAutoloader() error {
	return p.advance(ConfigExtended, AutoloadReady, func() error {
		if !p.site.Found {
			return nil
		}
		pkgs, ok, err := LoadAutoloader(p.site.Root)
		if err != nil {
			return err
		}
		p.packages, p.autoload = pkgs, ok
		return nil
	})
}

// DiscoverCommands acquires the coverage guard when requested, then scans the
// command search path and drops the excluded built-ins.
func (p *Preflight) DiscoverCommands() error {
	return p.advance(AutoloadReady, CommandsDiscovered, func() error {
		if path := p.args.CoverageFile(); path != "" && p.coverage == nil {
			cov, err := AcquireCoverage(path)
			if err != nil {
				return fail(CoverageUnavailable, "%w", err)
			}
			p.coverage = cov
		}

		var siteCommands string
		if p.site.Found {
			siteCommands = SiteCommandsPath(p.site.Root)
		}
		p.searchPaths = SearchPaths(p.env, p.args, siteCommands)

		files, warnings := discovery.Discover(p.searchPaths, NamespacePrefix)
		for _, w := range warnings {
			p.warn(CommandDiscoveryIOFailure, w)
		}
		files.Exclude(ExcludedCommandFiles...)
		p.files = files
		return nil
	})
}

// HandOff packages the results for the dispatcher. Nothing in this package
// touches the pipeline after it returns.
func (p *Preflight) HandOff() (*meta.Meta, error) {
	var m *meta.Meta
	err := p.advance(CommandsDiscovered, HandedOff, func() error {
		warnings := make([]error, len(p.warnings))
		for i, w := range p.warnings {
			warnings[i] = w
		}
		m = &meta.Meta{
			Args:      p.args.Original(),
			Remainder: p.args.Remainder(),
			Preflight: p.args,
			Config:    p.cfg,
			Context:   p.ctx,
			Env:       p.env,
			SiteSpec: meta.SiteSpec{
				Root:  p.site.Root,
				Found: p.site.Found,
				Alias: p.args.Alias(),
			},
			StartingDir: p.env.Cwd,
			Commands:    p.files,
			SearchPaths: append([]string(nil), p.searchPaths...),
			Flags:       p.flags,
			Autoloaded:  p.autoload,
			Packages:    p.packages,
			Warnings:    warnings,
		}
		return nil
	})
	return m, err
}

// advance runs fn when the pipeline is in from and moves it to to. Calling a
// step out of order, or a failing step, leaves the pipeline in Failed.
func (p *Preflight) advance(from, to State, fn func() error) error {
	if p.state != from {
		was := p.state
		p.state = Failed
		return fail(InvalidState, "preflight: cannot enter %s from %s", to, was)
	}
	if err := fn(); err != nil {
		p.state = Failed
		return err
	}
	p.state = to
	return nil
}

func (p *Preflight) refreshConfig() {
	p.cfg = p.locator.Config()
	all := p.locator.Warnings()
	for _, w := range all[p.cfgWarned:] {
		p.warn(ConfigSourceUnreadable, w)
	}
	p.cfgWarned = len(all)
}

func (p *Preflight) warn(kind Kind, err error) {
	p.warnings = append(p.warnings, Warning{Kind: kind, Err: err})
}

// requirementsFrom reads runtime.minimum_version and runtime.extensions.
func requirementsFrom(cfg *config.Config) (Requirements, error) {
	var req Requirements
	// YAML reads an unquoted 1.30 as the number 1.3, so only strings are
	// accepted.
	if v := cfg.Get("runtime.minimum_version", nil); v != nil {
		s, ok := v.(string)
		if !ok {
			return req, fail(EnvironmentVerificationFailure, "runtime.minimum_version must be a quoted string, e.g. \"%v\"", v)
		}
		req.MinimumVersion = s
	}
	ext, err := cfg.GetStringSlice("runtime.extensions", nil)
	if err != nil {
		return req, fail(EnvironmentVerificationFailure, "runtime.extensions: %w", err)
	}
	req.Extensions = ext
	return req, nil
}
