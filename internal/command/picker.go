// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pickerKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Go     key.Binding
	Quit   key.Binding
}

var defaultPickerKeys = pickerKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Go:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
}

// SelectLayers lets the user pick two source names. It returns nil when the
// user quits.
func SelectLayers(names []string, in io.Reader, out io.Writer) ([]string, error) {
	p := tea.NewProgram(pickerModel{items: names, keys: defaultPickerKeys}, tea.WithInput(in), tea.WithOutput(out))
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}
	return m.(pickerModel).selected, nil
}

type pickerModel struct {
	items    []string
	cursor   int
	selected []string
	keys     pickerKeys
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		m.selected = nil
		return m, tea.Quit
	case key.Matches(k, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(k, m.keys.Toggle):
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if i := slices.Index(m.selected, item); i >= 0 {
			m.selected = slices.Delete(slices.Clone(m.selected), i, i+1)
		} else if len(m.selected) < 2 {
			m.selected = append(slices.Clone(m.selected), item)
		}
	case key.Matches(k, m.keys.Go):
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	pickerCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0678be")).Bold(true)
	pickerHelpStyle   = lipgloss.NewStyle().Faint(true)
)

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString("Select two configuration sources:\n\n")
	for i, name := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = pickerCursorStyle.Render(">")
		}
		mark := " "
		if slices.Contains(m.selected, name) {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, name)
	}

	help := make([]string, 0, 3)
	for _, k := range []key.Binding{m.keys.Toggle, m.keys.Go, m.keys.Quit} {
		help = append(help, k.Help().Key+": "+k.Help().Desc)
	}
	return b.String() + "\n" + pickerHelpStyle.Render(strings.Join(help, ", ")) + "\n"
}
