// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package expr

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// ToCty converts decoded YAML/JSON data to a cty value. Maps become objects
// and slices become tuples so mixed element types survive.
func ToCty(val interface{}) cty.Value {
	switch v := val.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case cty.Value:
		return v
	case bool:
		return cty.BoolVal(v)
	case int:
		return cty.NumberIntVal(int64(v))
	case int64:
		return cty.NumberIntVal(v)
	case uint64:
		return cty.NumberUIntVal(v)
	case float64:
		return cty.NumberFloatVal(v)
	case string:
		return cty.StringVal(v)
	case []string:
		vals := make([]cty.Value, len(v))
		for i, item := range v {
			vals[i] = cty.StringVal(item)
		}
		return cty.TupleVal(vals)
	case []interface{}:
		vals := make([]cty.Value, len(v))
		for i, item := range v {
			vals[i] = ToCty(item)
		}
		return cty.TupleVal(vals)
	case map[string]string:
		vals := make(map[string]cty.Value, len(v))
		for key, item := range v {
			vals[key] = cty.StringVal(item)
		}
		return cty.ObjectVal(vals)
	case map[string]interface{}:
		vals := make(map[string]cty.Value, len(v))
		for key, item := range v {
			vals[key] = ToCty(item)
		}
		return cty.ObjectVal(vals)
	default:
		return cty.StringVal(fmt.Sprintf("%v", v))
	}
}

// FromCty converts a cty value back to plain Go data.
func FromCty(val cty.Value) interface{} {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}

	ty := val.Type()
	switch {
	case ty == cty.Bool:
		return val.True()
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return i
		}
		f, _ := bf.Float64()
		return f
	case ty == cty.String:
		return val.AsString()
	case ty.IsTupleType(), ty.IsListType(), ty.IsSetType():
		result := make([]interface{}, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			result = append(result, FromCty(elem))
		}
		return result
	case ty.IsObjectType(), ty.IsMapType():
		result := make(map[string]interface{}, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			result[key.AsString()] = FromCty(elem)
		}
		return result
	default:
		return fmt.Sprintf("%#v", val)
	}
}

// Format renders a value for display. Scalars print plainly; collections
// print as JSON.
func Format(val cty.Value) string {
	if !val.IsKnown() {
		return "(unknown)"
	}
	if val.IsNull() {
		return "null"
	}

	switch val.Type() {
	case cty.Bool:
		return fmt.Sprintf("%t", val.True())
	case cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return fmt.Sprintf("%d", i)
		}
		f, _ := bf.Float64()
		return fmt.Sprintf("%g", f)
	case cty.String:
		return val.AsString()
	default:
		goVal := FromCty(val)
		if jsonBytes, err := json.Marshal(goVal); err == nil {
			return string(jsonBytes)
		}
		return fmt.Sprintf("%#v", goVal)
	}
}
