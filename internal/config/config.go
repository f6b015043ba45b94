// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/tidwall/gjson"
)

// EnvPrefix is the reserved top-level key under which the environment
// snapshot is exposed. File-based sources can never populate it.
const EnvPrefix = "env"

// Config is the merged, read-only view over every source the Locator
// collected. File sources are merged by tier (see Tier) with the environment
// kept in its own namespace. The zero value, and a nil *Config, are empty but
// valid: every lookup falls through to the caller's default.
type Config struct {
	data    map[string]any
	env     map[string]any
	sources []Source
}

// Get returns the value at the dotted key path, or defaultValue when the key
// is absent. Keys beginning with "env." are answered from the environment
// snapshot only.
func (c *Config) Get(key string, defaultValue any) any {
	if v, err := c.get(key); err == nil {
		return v
	}
	return defaultValue
}

// Has reports whether key resolves to a value.
func (c *Config) Has(key string) bool {
	_, err := c.get(key)
	return err == nil
}

// GetString returns the string value for the given dotted key path. If the key
// is not found and a single defaultValue is provided, the default is returned.
// Returns an error if the value exists but is not a string.
func (c *Config) GetString(key string, defaultValue ...string) (string, error) {
	val, err := c.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("value at %s is not a string", key)
	}

	return s, nil
}

// GetInt returns the integer value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
// YAML numbers may decode as int, int64, or float64; common cases are handled.
func (c *Config) GetInt(key string, defaultValue ...int) (int, error) {
	val, err := c.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("value at %s is not an int", key)
	}
}

// GetBool returns the boolean value for the given dotted key path, or the
// single defaultValue when the key is missing.
func (c *Config) GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := c.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("value at %s is not a bool", key)
	}
	return b, nil
}

// GetStringSlice returns the string slice value for the given dotted key path.
// If the key is not found and a single default slice is provided, that default
// is returned. Returns an error if the value exists but is not a string slice.
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := c.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("slice element is not a string")
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("value at %s is not a slice", key)
	}
}

// Env returns a copy of the environment namespace.
func (c *Config) Env() map[string]any {
	if c == nil {
		return nil
	}
	return maps.Clone(c.env)
}

// Sources returns the file sources in merge order, lowest precedence first.
// The environment is not listed; it is not a file.
func (c *Config) Sources() []Source {
	if c == nil {
		return nil
	}
	out := make([]Source, len(c.sources))
	for i, s := range c.sources {
		out[i] = s
		out[i].Data = deepCopy(s.Data)
	}
	return out
}

// Layer returns the data contributed by the named source. When several
// sources share a name (same tier, added repeatedly) the last one is returned.
func (c *Config) Layer(name string) (map[string]any, bool) {
	if c == nil {
		return nil, false
	}
	if name == EnvPrefix {
		return c.Env(), true
	}
	for i := len(c.sources) - 1; i >= 0; i-- {
		if c.sources[i].Name == name {
			return deepCopy(c.sources[i].Data), true
		}
	}
	return nil, false
}

// JSON renders the merged file namespace plus the environment namespace as a
// JSON document.
func (c *Config) JSON() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	doc := deepCopy(c.data)
	if doc == nil {
		doc = map[string]any{}
	}
	if c.env != nil {
		doc[EnvPrefix] = maps.Clone(c.env)
	}
	return json.Marshal(doc)
}

// Query evaluates a gjson path (e.g. "aliases.prod.root" or
// "aliases.@keys") against JSON().
func (c *Config) Query(path string) gjson.Result {
	raw, err := c.JSON()
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(raw, path)
}

// get traverses the configuration tree using a dotted key path (e.g.
// "options.uri"). The "env" prefix is routed to the environment snapshot so
// file data can never shadow it.
func (c *Config) get(kspec string) (any, error) {
	if c == nil || kspec == "" {
		return nil, errors.New("empty key")
	}

	keys := strings.Split(kspec, ".")
	var current any = c.data
	if keys[0] == EnvPrefix {
		if c.env == nil {
			return nil, fmt.Errorf("no value at %s", kspec)
		}
		current = c.env
		keys = keys[1:]
	}

	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("no value at %s", kspec)
		}
		current, ok = m[key]
		if !ok {
			return nil, fmt.Errorf("no value at %s", kspec)
		}
	}

	return current, nil
}

// mergeInto deep-merges src over dst. Nested maps merge key by key; any other
// value (including lists) replaces what was there.
func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if sm, ok := v.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				mergeInto(dm, sm)
				continue
			}
			dst[k] = deepCopy(sm)
			continue
		}
		dst[k] = deepCopyValue(v)
	}
}

func deepCopy(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

// deepCopyValue copies maps and lists. Mappings with non-string keys, which
// YAML allows (e.g. "80: http"), come back with their keys stringified so the
// tree stays JSON-encodable.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopy(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = deepCopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
