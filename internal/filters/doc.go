// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters implements the --filter flag of the listing commands.
//
// A filter spec is a delimited list (default ",", override with
// DRUSH_FILTER_DELIM) of key-operator-target expressions. A row is kept only
// when every expression matches.
//
// Operators:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : substring, or membership for lists and maps
//   - / : regular expression match
//
// Any operator may be negated with a leading "!", e.g. "name!^user".
//
// Keys are gjson paths into the row, so "value.0" reaches the first element of
// a list value. A key with no operator keeps rows where the key is present.
//
// Examples:
//
//   - "name=root" : the status entry named root
//   - "tier!=system" : every source outside the system tier
//   - "keys>2" : sources defining more than two top-level keys
//   - "path/\.yml$" : sources read from a .yml file
package filters
