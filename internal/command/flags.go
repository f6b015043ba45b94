// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/drush-go/drush/internal/meta"
	"github.com/drush-go/drush/internal/output"
)

// DefaultURI is the site URI used when neither --uri nor options.uri is set.
const DefaultURI = "default"

// NewRootFlags returns the process-wide flags. Preflight has already acted
// on most of them; they are declared here so the grammar accepts them and
// --help lists them. Root flags are inherited by every subcommand.
func NewRootFlags(m *meta.Meta) []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "display extra information"},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "display debug information"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress non-error messages"},
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "auto-accept the default for all prompts"},
		&cli.BoolFlag{Name: "no", Aliases: []string{"n"}, Usage: "auto-decline all prompts"},
		&cli.BoolFlag{Name: "simulate", Aliases: []string{"s"}, Usage: "print commands instead of running them"},
		&cli.BoolFlag{
			Name:        "version",
			Usage:       "drush version info",
			HideDefault: true,
		},
		NewURIFlag(m),
	}
	return flags
}

// NewGlobalFlags returns the output flags shared by listing commands.
func NewGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:  "fields",
			Usage: "comma-separated list of fields to include in results",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   output.FormatTable,
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "comma-separated list of fields to sort the results by, prefix with - to reverse",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with table output",
			Value:   false,
		},
	}
}

// NewURIFlag constructs the --uri flag. Its value comes from DRUSH_URI, then
// options.uri in each local configuration file, highest precedence first. The
// merged configuration supplies the default, which also covers remote
// sources.
func NewURIFlag(m *meta.Meta) *cli.StringFlag {
	def, _ := m.Config.GetString("options.uri", DefaultURI)
	flag := &cli.StringFlag{
		Name:    "uri",
		Aliases: []string{"l"},
		Usage:   "URI of the site to use",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("DRUSH_URI"),
		),
		Value: def,
	}

	sources := m.Config.Sources()
	paths := make([]string, 0, len(sources))
	for i := len(sources) - 1; i >= 0; i-- {
		if strings.Contains(sources[i].Path, "://") {
			continue
		}
		paths = append(paths, sources[i].Path)
	}
	return ValueChainFlagFromConfigFiles("options", paths, flag)
}

// ValueChainFlagFromConfigFiles adds <ns>.<flag> from each config file to the
// flag's Sources chain, in the order given.
func ValueChainFlagFromConfigFiles(ns string, paths []string, flag *cli.StringFlag) *cli.StringFlag {
	for _, path := range paths {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}
	return flag
}

// pathHas checks if the given executable is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
