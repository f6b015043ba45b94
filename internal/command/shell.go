// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/drush-go/drush/internal/command/expr"
	"github.com/drush-go/drush/internal/log"
	"github.com/drush-go/drush/internal/meta"
)

const maxShellHistory = 1000

// evalLine evaluates one console entry and returns what to print.
func evalLine(vars expr.Vars, line string) string {
	val, err := expr.Eval(line, vars)
	if err != nil {
		return err.Error()
	}
	return expr.Format(val)
}

func configShellCommandAction(s *settings) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		m := GetMeta(cmd)
		log.Debugf("Executing action for %v", m.Args)

		vars := variables(cmd, m)
		if !s.isTerminal() {
			return runShellLines(vars, s.stdin, stdout(cmd))
		}

		p := tea.NewProgram(initialShellModel(vars, shellHistoryFile(m)), tea.WithInput(s.stdin), tea.WithOutput(s.stdout))
		_, err := p.Run()
		return err
	}
}

// runShellLines evaluates one expression per input line, for piped input.
func runShellLines(vars expr.Vars, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if _, err := fmt.Fprintln(out, evalLine(vars, line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// shellModel is the Bubble Tea model for config:shell.
type shellModel struct {
	input          textinput.Model
	history        []string // Full history for navigation, including the file.
	sessionHistory []string // Entries from this session, paired with outputs.
	histIndex      int
	output         []string
	vars           expr.Vars
	historyFile    string
}

func initialShellModel(vars expr.Vars, historyFile string) shellModel {
	ti := textinput.New()
	ti.Placeholder = ""
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 999
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorBlink)

	return shellModel{
		input:          ti,
		history:        loadShellHistory(historyFile),
		sessionHistory: []string{},
		histIndex:      -1,
		output:         []string{"Type 'help' for syntax, 'exit' or Ctrl+C to quit."},
		vars:           vars,
		historyFile:    historyFile,
	}
}

func (m shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			entry := strings.TrimSpace(m.input.Value())
			if entry == "" {
				return m, nil
			}
			if entry == "exit" || entry == "quit" {
				return m, tea.Quit
			}

			result := shellHelp()
			if entry != "help" {
				result = evalLine(m.vars, entry)
			}
			m.history = append(m.history, entry)
			m.sessionHistory = append(m.sessionHistory, entry)
			m.histIndex = -1
			m.output = append(m.output, result)
			saveShellHistory(m.historyFile, m.history)
			m.input.SetValue("")
			return m, nil

		case "up":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex == -1 {
				m.histIndex = len(m.history) - 1
			} else if m.histIndex > 0 {
				m.histIndex--
			}
			m.input.SetValue(m.history[m.histIndex])
			m.input.CursorEnd()
			return m, nil

		case "down":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex >= 0 && m.histIndex < len(m.history)-1 {
				m.histIndex++
				m.input.SetValue(m.history[m.histIndex])
				m.input.CursorEnd()
			} else {
				m.histIndex = -1
				m.input.SetValue("")
			}
			return m, nil

		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

var shellPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0678be"))

func (m shellModel) View() string {
	lines := []string{m.output[0]}

	// Pair each entry from this session with its output.
	for i, entry := range m.sessionHistory {
		lines = append(lines, shellPromptStyle.Render("> ")+entry)
		if i+1 < len(m.output) {
			lines = append(lines, m.output[i+1])
		}
	}

	lines = append(lines, shellPromptStyle.Render("> ")+m.input.View())
	return strings.Join(lines, "\n")
}

func shellHelp() string {
	return `Enter an expression to evaluate it.

  Variables:
     site.root, site.uri, site.alias, site.found
     config.<key>                     - merged configuration, e.g. config.options.uri
     env.<key>                        - environment, e.g. env.home

  Examples:
     keys(config.aliases)             - list the alias names
     upper(site.uri)                  - call a function
     try(config.aliases.dev.root, "") - fall back when a key is missing

  Functions:
     ` + strings.Join(expr.FunctionNames(), ", ") + `

  Navigation:
     ↑/↓ arrows                       - navigate history
     Ctrl+C                           - exit`
}

// shellHistoryFile is kept next to the user's drush.yml.
func shellHistoryFile(m *meta.Meta) string {
	dir := m.Env.UserConfigPath
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".drush_shell_history"
		}
		dir = filepath.Join(home, ".drush")
	}
	return filepath.Join(dir, "shell_history")
}

func loadShellHistory(filename string) []string {
	var history []string

	file, err := os.Open(filename)
	if err != nil {
		return history
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			history = append(history, line)
		}
	}
	return history
}

func saveShellHistory(filename string, history []string) {
	start := 0
	if len(history) > maxShellHistory {
		start = len(history) - maxShellHistory
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		log.Debugf("history dir: %v", err)
		return
	}
	file, err := os.Create(filename)
	if err != nil {
		log.Debugf("history file: %v", err)
		return
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, h := range history[start:] {
		fmt.Fprintln(writer, h)
	}
	writer.Flush()
}

func configShellCommandBuilder(m *meta.Meta, s *settings) *cli.Command {
	return &cli.Command{
		Name:      "config:shell",
		Aliases:   []string{"shell"},
		Usage:     "interactive expression console over the site and configuration",
		UsageText: "drush config:shell",
		Category:  "config",
		Metadata: map[string]any{
			metaKey: m,
		},
		Action: configShellCommandAction(s),
	}
}
