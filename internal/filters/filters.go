// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/drush-go/drush/internal/log"
)

// filterRegex splits a filter expression into key, operator (with optional
// negation) and target. "name" is key only, "name=" has an empty target.
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification. Malformed entries are logged
// and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Allow an override for values that contain commas.
	delim := ","
	if d, ok := os.LookupEnv("DRUSH_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	return filters
}

// FilterRows returns the rows that match every filter in spec. The rows
// themselves are not copied.
func FilterRows(rows []map[string]interface{}, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	kept := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if Match(row, filters) {
			kept = append(kept, row)
		}
	}
	return kept
}

// Match reports whether row satisfies all filters.
func Match(row map[string]interface{}, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}

	raw, err := json.Marshal(row)
	if err != nil {
		log.Errorf("filter: %v", err)
		return false
	}
	doc := gjson.ParseBytes(raw)

	for _, filter := range filters {
		res := doc.Get(filter.Key)

		// A bare key tests for presence.
		if filter.Operand == "" {
			if res.Exists() == filter.Negate {
				return false
			}
			continue
		}

		if !res.Exists() || res.Type == gjson.Null {
			if !filter.Negate {
				return false
			}
			continue
		}

		var ok bool
		switch value := res.Value().(type) {
		case string:
			ok = checkStringOperand(value, filter)
		case bool:
			ok = checkStringOperand(fmt.Sprintf("%v", value), filter)
		case float64:
			ok = checkNumericOperand(value, filter)
		default:
			ok = checkContainsOperand(value, filter)
		}
		if !ok {
			return false
		}
	}

	return true
}

// checkContainsOperand evaluates a membership filter (operand '@') against
// list and map values. Other operands never match a collection.
func checkContainsOperand(value interface{}, filter Filter) bool {
	if filter.Operand != "@" {
		return filter.Negate
	}

	switch val := value.(type) {
	case []interface{}:
		for _, item := range val {
			if fmt.Sprintf("%v", item) == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]interface{}:
		_, found := val[filter.Value]
		return found != filter.Negate
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
}

// checkNumericOperand compares numerically when the target parses as a number
// and falls back to a string comparison otherwise.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}
}

// checkStringOperand evaluates a string comparison against value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return (value == filter.Value) == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return (value > filter.Value) == !filter.Negate
	case "<":
		return (value < filter.Value) == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}
