// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testVars() Vars {
	return Vars{
		"site": ToCty(map[string]interface{}{
			"root": "/srv/site",
			"uri":  "example.com",
		}),
		"config": ToCty(map[string]interface{}{
			"aliases": map[string]interface{}{
				"prod":  map[string]interface{}{"root": "/var/www/prod", "host": "prod.example.com"},
				"stage": map[string]interface{}{"root": "/var/www/stage"},
			},
			"options": map[string]interface{}{"verbose": true, "retries": 3},
			"modules": []interface{}{"node", "user"},
		}),
		"args": ToCty([]string{"one", "two"}),
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"attribute", "site.root", "/srv/site"},
		{"function", "upper(site.uri)", "EXAMPLE.COM"},
		{"nested", "config.aliases.prod.host", "prod.example.com"},
		{"bool", "config.options.verbose", "true"},
		{"number", "config.options.retries + 1", "4"},
		{"float", "10 / 4", "2.5"},
		{"tuple", "config.modules", `["node","user"]`},
		{"keys", "keys(config.aliases)", `["prod","stage"]`},
		{"index", "args[1]", "two"},
		{"try", `try(config.aliases.dev.root, "none")`, "none"},
		{"can", "can(config.aliases.dev.root)", "false"},
		{"conditional", `site.uri == "example.com" ? "yes" : "no"`, "yes"},
		{"null", "null", "null"},
		{"join", `join(",", args)`, "one,two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := Eval(tt.src, testVars())
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(val))
		})
	}
}

func TestEval_Errors(t *testing.T) {
	_, err := Eval("upper(", testVars())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")

	_, err = Eval("nosuch.thing", testVars())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluate")

	_, err = Eval("nosuchfunc(1)", testVars())
	require.Error(t, err)
}

func TestEvalTemplate(t *testing.T) {
	got, err := EvalTemplate("cd ${site.root} && echo ${upper(args[0])}", testVars())
	require.NoError(t, err)
	assert.Equal(t, "cd /srv/site && echo ONE", got)

	got, err = EvalTemplate("plain text", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text", got)

	got, err = EvalTemplate("retries=${config.options.retries}", testVars())
	require.NoError(t, err)
	assert.Equal(t, "retries=3", got)

	_, err = EvalTemplate("${", testVars())
	require.Error(t, err)

	_, err = EvalTemplate("${config.modules}", testVars())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a string")
}

func TestToCtyFromCty(t *testing.T) {
	in := map[string]interface{}{
		"s":     "x",
		"i":     7,
		"f":     1.5,
		"b":     false,
		"n":     nil,
		"list":  []interface{}{"a", 1},
		"empty": []interface{}{},
		"m":     map[string]string{"k": "v"},
	}
	out := FromCty(ToCty(in))
	assert.Equal(t, map[string]interface{}{
		"s":     "x",
		"i":     int64(7),
		"f":     1.5,
		"b":     false,
		"n":     nil,
		"list":  []interface{}{"a", int64(1)},
		"empty": []interface{}{},
		"m":     map[string]interface{}{"k": "v"},
	}, out)

	assert.True(t, ToCty(struct{ A string }{"struct"}).RawEquals(cty.StringVal("{struct}")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "(unknown)", Format(cty.UnknownVal(cty.String)))
	assert.Equal(t, "null", Format(cty.NullVal(cty.String)))
	assert.Equal(t, `{"a":"b"}`, Format(cty.MapVal(map[string]cty.Value{"a": cty.StringVal("b")})))
	assert.Equal(t, `["x"]`, Format(cty.ListVal([]cty.Value{cty.StringVal("x")})))
}

func TestFunctionNames(t *testing.T) {
	names := FunctionNames()
	assert.Contains(t, names, "upper")
	assert.Contains(t, names, "try")
	assert.Contains(t, names, "can")
	assert.IsIncreasing(t, names)
}
