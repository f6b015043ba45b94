// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package expr

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Vars are the top-level variables of an evaluation, e.g. "site", "env",
// "config", "option" and "args".
type Vars map[string]cty.Value

// Context returns an EvalContext over vars with the standard function table.
func Context(vars Vars) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: vars,
		Functions: Functions(),
	}
}

// Eval parses and evaluates a single expression such as
// `upper(site.uri)` or `config.aliases.prod.root`.
func Eval(src string, vars Vars) (cty.Value, error) {
	e, diags := hclsyntax.ParseExpression([]byte(src), "<expr>", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to parse expression: %w", diags)
	}
	return Value(e, vars)
}

// EvalTemplate renders a string template such as "cd ${site.root} && ls".
func EvalTemplate(src string, vars Vars) (string, error) {
	e, diags := hclsyntax.ParseTemplate([]byte(src), "<template>", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to parse template: %w", diags)
	}
	return String(e, vars)
}

// Value evaluates an already parsed expression.
func Value(e hcl.Expression, vars Vars) (cty.Value, error) {
	val, diags := e.Value(Context(vars))
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to evaluate expression: %w", diags)
	}
	return val, nil
}

// String evaluates e and converts the result to a string.
func String(e hcl.Expression, vars Vars) (string, error) {
	val, err := Value(e, vars)
	if err != nil {
		return "", err
	}
	if !val.IsWhollyKnown() || val.IsNull() {
		return "", errors.New("expression has no value")
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("expression is not a string: %w", err)
	}
	return str.AsString(), nil
}
