// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/drush-go/drush/internal/environment"
)

// FileName is the configuration file looked for in every config directory.
const FileName = "drush.yml"

// SiteConfigPath is where a site keeps its own configuration, relative to the
// site root.
var SiteConfigPath = filepath.Join("drush", FileName)

// Tier orders file sources. Higher tiers override lower ones regardless of
// the order they were added in; within a tier, the later addition wins. The
// environment sits above every tier in its own namespace.
type Tier int

const (
	TierSystem Tier = iota
	TierUser
	TierDrush
	TierSite
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierSystem:
		return "system"
	case TierUser:
		return "user"
	case TierDrush:
		return "drush"
	case TierSite:
		return "site"
	default:
		return "unknown"
	}
}

// Provenance tags used as source names.
const (
	SourceSystem   = "system-config"
	SourceUser     = "user-config"
	SourceExplicit = "explicit-config"
	SourceDrush    = "drush-config"
	SourceSite     = "site-config"
)

// Source is one named configuration layer.
type Source struct {
	Name string
	Path string
	Tier Tier
	Data map[string]any
}

// Fetcher retrieves a remote configuration document, e.g. s3://bucket/key.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// Locator accumulates configuration sources in precedence order and produces
// the merged Config.
type Locator struct {
	ctx      context.Context
	fetcher  Fetcher
	local    bool
	sources  []Source
	env      map[string]any
	warnings []error
}

// Option customizes a Locator.
type Option func(*Locator)

// WithFetcher enables remote (scheme://) explicit config paths.
func WithFetcher(f Fetcher) Option {
	return func(l *Locator) { l.fetcher = f }
}

// WithContext sets the context handed to the Fetcher.
func WithContext(ctx context.Context) Option {
	return func(l *Locator) { l.ctx = ctx }
}

// NewLocator returns an empty Locator.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{ctx: context.Background()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetLocal toggles local mode. In local mode the system and user locations
// are never consulted, so only the project tree influences the result.
func (l *Locator) SetLocal(local bool) {
	l.local = local
}

// IsLocal reports whether local mode is on.
func (l *Locator) IsLocal() bool {
	return l.local
}

// AddUserConfig adds the explicit override when one is given and readable.
// Otherwise it adds the system and then the user drush.yml, each if present.
// In local mode the system and user locations are skipped.
func (l *Locator) AddUserConfig(explicit, systemPath, userPath string) {
	if explicit != "" {
		if l.addExplicit(explicit) {
			return
		}
	}

	if l.local {
		return
	}

	if systemPath != "" {
		l.addFile(SourceSystem, TierSystem, configFile(systemPath))
	}
	if userPath != "" {
		l.addFile(SourceUser, TierUser, configFile(userPath))
	}
}

// AddDrushConfig adds the drush.yml bundled next to the binary.
func (l *Locator) AddDrushConfig(basePath string) {
	if basePath == "" {
		return
	}
	l.addFile(SourceDrush, TierDrush, configFile(basePath))
}

// AddEnvironment exposes the environment snapshot under EnvPrefix. A second
// call replaces the first.
func (l *Locator) AddEnvironment(env environment.Environment) {
	l.env = env.Export()
}

// AddSitewideConfig adds <root>/drush/drush.yml. It must only be called once
// the site root is known.
func (l *Locator) AddSitewideConfig(root string) {
	if root == "" {
		return
	}
	l.addFile(SourceSite, TierSite, filepath.Join(root, SiteConfigPath))
}

// Warnings returns the problems met while reading sources. Each one caused a
// source to be skipped (or, for the reserved key, trimmed).
func (l *Locator) Warnings() []error {
	return append([]error(nil), l.warnings...)
}

// Config merges the collected sources into a read-only view. It may be
// called at any time, including before anything has been added.
func (l *Locator) Config() *Config {
	ordered := make([]Source, len(l.sources))
	copy(ordered, l.sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Tier < ordered[j].Tier
	})

	merged := map[string]any{}
	for _, s := range ordered {
		mergeInto(merged, s.Data)
	}

	cfg := &Config{data: merged, sources: ordered}
	if l.env != nil {
		cfg.env = deepCopy(l.env)
	}
	return cfg
}

// addExplicit loads the --config override into the user tier. It returns
// false when the override could not be used, so the caller falls back to the
// standard locations.
func (l *Locator) addExplicit(explicit string) bool {
	if scheme, _, ok := strings.Cut(explicit, "://"); ok && scheme != "file" {
		if l.fetcher == nil {
			l.warn(fmt.Errorf("config %s: no fetcher for scheme %s", explicit, scheme))
			return false
		}
		raw, err := l.fetcher.Fetch(l.ctx, explicit)
		if err != nil {
			l.warn(fmt.Errorf("config %s: %w", explicit, err))
			return false
		}
		return l.addBytes(SourceExplicit, TierUser, explicit, raw)
	}

	explicit = strings.TrimPrefix(explicit, "file://")
	if info, err := os.Stat(explicit); err == nil && info.IsDir() {
		explicit = filepath.Join(explicit, FileName)
	}
	return l.addFile(SourceExplicit, TierUser, explicit)
}

// addFile reads and registers a YAML file. Missing files are skipped
// silently; unreadable or malformed ones are skipped with a warning.
func (l *Locator) addFile(name string, tier Tier, path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.warn(fmt.Errorf("config %s: %w", path, err))
		}
		return false
	}
	return l.addBytes(name, tier, path, raw)
}

func (l *Locator) addBytes(name string, tier Tier, path string, raw []byte) bool {
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		l.warn(fmt.Errorf("config %s: %w", path, err))
		return false
	}
	if data == nil {
		data = map[string]any{}
	}
	data = deepCopy(data)
	if _, ok := data[EnvPrefix]; ok {
		delete(data, EnvPrefix)
		l.warn(fmt.Errorf("config %s: top-level key %q is reserved and was ignored", path, EnvPrefix))
	}

	l.sources = append(l.sources, Source{Name: name, Path: path, Tier: tier, Data: data})
	return true
}

func (l *Locator) warn(err error) {
	l.warnings = append(l.warnings, err)
}

// configFile maps a config directory to its drush.yml. A path that already
// names a .yml/.yaml file is used as-is.
func configFile(path string) string {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return path
	}
	return filepath.Join(path, FileName)
}
