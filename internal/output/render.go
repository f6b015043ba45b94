// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/drush-go/drush/internal/config"
	"github.com/drush-go/drush/internal/filters"
)

// Formats accepted by Render.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Column is one renderable field of a row.
type Column struct {
	Key   string
	Title string
}

// Options control Render.
type Options struct {
	Format string
	// Fields restricts and orders the columns by key. Empty means all.
	Fields []string
	// Filter is a --filter spec applied before sorting.
	Filter string
	Sort   string
	Titles bool
	Color  bool
	// Padding is the gap between table columns.
	Padding int
	Header  string
	Footer  string
	// Config supplies colors.title, colors.even and colors.odd.
	Config *config.Config
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		if b, ok := value.(bool); ok && !b {
			return "false"
		}
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case []string:
		return strings.Join(value, ",")
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Render writes rows to w in opts.Format. Table output shows only the
// selected columns; JSON and YAML carry the selected keys of each row.
func Render(w io.Writer, rows []map[string]interface{}, cols []Column, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	cols, err := selectColumns(cols, opts.Fields)
	if err != nil {
		return err
	}
	rows = filters.FilterRows(rows, opts.Filter)
	SortDataset(rows, opts.Sort)

	switch opts.Format {
	case FormatJSON, FormatYAML:
		projected := make([]map[string]interface{}, len(rows))
		for i, row := range rows {
			projected[i] = make(map[string]interface{}, len(cols))
			for _, c := range cols {
				projected[i][c.Key] = row[c.Key]
			}
		}
		var out []byte
		if opts.Format == FormatJSON {
			out, err = json.MarshalIndent(projected, "", "  ")
			out = append(out, '\n')
		} else {
			out, err = yaml.Marshal(projected)
		}
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", opts.Format, err)
		}
		_, err = w.Write(out)
		return err
	case "", FormatTable:
		TableWriter(rows, cols, opts, w)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", opts.Format)
	}
}

// RenderValue writes a single value. Tables and scalars print plainly.
func RenderValue(w io.Writer, v interface{}, format string) error {
	if w == nil {
		w = os.Stdout
	}
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to render yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", FormatTable:
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			out, err := yaml.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to render value: %w", err)
			}
			_, err = w.Write(out)
			return err
		}
		_, err := fmt.Fprintln(w, InterfaceToString(v))
		return err
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

func selectColumns(cols []Column, fields []string) ([]Column, error) {
	if len(fields) == 0 {
		return cols, nil
	}
	selected := make([]Column, 0, len(fields))
	for _, f := range fields {
		i := slices.IndexFunc(cols, func(c Column) bool { return c.Key == f })
		if i < 0 {
			return nil, fmt.Errorf("unknown field %q", f)
		}
		selected = append(selected, cols[i])
	}
	return selected, nil
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. Output is written to w. If w is nil, os.Stdout
// is used.
func TableWriter(resultSet []map[string]interface{}, cols []Column, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	// We return early if there are no results to display.
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors(opts.Config, "colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			row = append(row, InterfaceToString(result[c.Key], "-"))
		}
		rows = append(rows, row)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(cols))
		for _, c := range cols {
			title := c.Title
			if title == "" {
				title = c.Key
			}
			headers = append(headers, title)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns configured color values for table rendering. Defaults
// depend on the terminal background so output stays readable on light and
// dark themes.
func getColors(cfg *config.Config, key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		if s, err := cfg.GetString(key); err == nil {
			return lipgloss.Color(s)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
