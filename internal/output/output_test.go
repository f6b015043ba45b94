// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func sources() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "site-config", "tier": "site", "keys": 3},
		{"name": "drush-config", "tier": "drush", "keys": 10},
		{"name": "user-config", "tier": "user", "keys": 1},
	}
}

var sourceColumns = []Column{
	{Key: "name", Title: "Source"},
	{Key: "tier", Title: "Tier"},
	{Key: "keys", Title: "Keys"},
}

func TestSortDataset(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "none", spec: "", wantOrder: []string{"site-config", "drush-config", "user-config"}},
		{name: "ascending by name", spec: "name", wantOrder: []string{"drush-config", "site-config", "user-config"}},
		{name: "descending by name", spec: "-name", wantOrder: []string{"user-config", "site-config", "drush-config"}},
		{name: "ints", spec: "keys", wantOrder: []string{"user-config", "site-config", "drush-config"}},
		{name: "ints descending", spec: "-keys", wantOrder: []string{"drush-config", "site-config", "user-config"}},
		{name: "multiple", spec: "tier,name", wantOrder: []string{"drush-config", "site-config", "user-config"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sources()
			SortDataset(rows, tt.spec)
			var got []string
			for _, r := range rows {
				got = append(got, r["name"].(string))
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestSortDataset_CaseSensitive(t *testing.T) {
	rows := []map[string]interface{}{{"n": "b"}, {"n": "B"}, {"n": "a"}}
	SortDataset(rows, "!n")
	assert.Equal(t, "B", rows[0]["n"])

	rows = []map[string]interface{}{{"n": "b"}, {"n": "C"}, {"n": "a"}}
	SortDataset(rows, "n")
	assert.Equal(t, "C", rows[2]["n"])
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "nil custom", value: nil, empty: []string{"-"}, want: "-"},
		{name: "string", value: "x", want: "x"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(7), want: "7"},
		{name: "float", value: 1.5, want: "1.5"},
		{name: "true", value: true, want: "true"},
		{name: "false", value: false, want: "false"},
		{name: "strings", value: []string{"a", "b"}, want: "a,b"},
		{name: "map", value: map[string]interface{}{"a": 1}, want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sources(), sourceColumns, Options{Titles: true, Padding: 2, Sort: "name", Header: "Sources"})
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], "Sources")
	assert.Contains(t, out, "Source")
	assert.Contains(t, out, "Tier")
	assert.Less(t, strings.Index(out, "drush-config"), strings.Index(out, "user-config"))
}

func TestRender_Fields(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sources(), sourceColumns, Options{Format: FormatJSON, Fields: []string{"tier"}})
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, map[string]interface{}{"tier": "site"}, got[0])

	err = Render(&buf, sources(), sourceColumns, Options{Fields: []string{"nope"}})
	assert.ErrorContains(t, err, "unknown field")
}

func TestRender_Filter(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sources(), sourceColumns, Options{Format: FormatJSON, Filter: "keys>2", Sort: "name"})
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "drush-config", got[0]["name"])
	assert.Equal(t, "site-config", got[1]["name"])
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sources(), sourceColumns, Options{Format: FormatYAML, Sort: "-keys"}))

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "drush-config", got[0]["name"])
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, sources(), sourceColumns, Options{Format: "xml"})
	assert.ErrorContains(t, err, "unknown format")
	assert.Error(t, RenderValue(&bytes.Buffer{}, "x", "xml"))
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, sourceColumns, Options{Titles: true}))
	assert.Empty(t, buf.String())
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		format string
		want   string
	}{
		{name: "scalar", value: "http://site.example", want: "http://site.example\n"},
		{name: "json scalar", value: "x", format: FormatJSON, want: "\"x\"\n"},
		{name: "map as yaml", value: map[string]interface{}{"uri": "x"}, want: "uri: x\n"},
		{name: "yaml list", value: []interface{}{"a"}, format: FormatYAML, want: "- a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderValue(&buf, tt.value, tt.format))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
