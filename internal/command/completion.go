// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/drush-go/drush/internal/meta"
)

const bashCompletionScript = `# bash completion for drush
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_drush()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local common="--root -r --config --include --local --uri -l --verbose -v --debug -d --quiet -q --yes -y --no -n --simulate -s --help -h"

    if [[ "$prev" == "--root" || "$prev" == "-r" || "$prev" == "--include" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--format" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "table json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$common" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "__COMMANDS__" -- "$cur") )
    return 0
}

complete -F _drush drush
`

const zshCompletionScript = `#compdef drush

_drush() {
  local -a cmds
  cmds=(
__COMMANDS__
  )

  local -a common
  common=(
  '(-r --root)'{-r,--root}'[site root]:root:_directories'
  '--config[configuration file]:config:_files'
  '--include[additional command path]:include:_directories'
  '--local[ignore system and user configuration]'
  '(-l --uri)'{-l,--uri}'[site URI]:uri'
  '(-v --verbose)'{-v,--verbose}'[display extra information]'
  '(-d --debug)'{-d,--debug}'[display debug information]'
  '(-q --quiet)'{-q,--quiet}'[suppress non-error messages]'
  '(-y --yes)'{-y,--yes}'[accept all prompts]'
  '(-n --no)'{-n,--no}'[decline all prompts]'
  '(-s --simulate)'{-s,--simulate}'[print commands instead of running them]'
  )

  _arguments -C \
    $common \
    '1: :->command' \
    '*::arg:->args'

  case $state in
    command)
      _describe -t commands 'drush commands' cmds
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _drush drush
`

// commandNames lists every visible command name and alias of root, sorted.
func commandNames(root *cli.Command) []string {
	var names []string
	for _, c := range root.Commands {
		if c.Hidden {
			continue
		}
		names = append(names, c.Name)
		names = append(names, c.Aliases...)
	}
	sort.Strings(names)
	return names
}

// BashCompletion renders the bash script for root's commands.
func BashCompletion(root *cli.Command) string {
	return strings.Replace(bashCompletionScript, "__COMMANDS__", strings.Join(commandNames(root), " "), 1)
}

// ZshCompletion renders the zsh script for root's commands.
func ZshCompletion(root *cli.Command) string {
	var lines []string
	for _, c := range root.Commands {
		if c.Hidden {
			continue
		}
		// zsh _describe uses ":" as the separator, so names need escaping.
		name := strings.ReplaceAll(c.Name, ":", `\:`)
		usage := strings.ReplaceAll(c.Usage, "'", "")
		lines = append(lines, fmt.Sprintf("    '%s:%s'", name, usage))
	}
	sort.Strings(lines)
	return strings.Replace(zshCompletionScript, "__COMMANDS__", strings.Join(lines, "\n"), 1)
}

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	root := cmd.Root()
	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), BashCompletion(root))
	case "zsh":
		fmt.Fprint(stdout(cmd), ZshCompletion(root))
	default:
		fmt.Fprintln(stderr(cmd), "usage: drush completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(m *meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "drush completion [bash|zsh]",
		Category:  "core",
		Metadata: map[string]any{
			metaKey: m,
		},
		Action: completionCommandAction,
	}
}
