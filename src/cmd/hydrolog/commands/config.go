// FILE: hydrolog/src/cmd/hydrolog/commands/config.go
package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"hydrolog/src/internal/config"
)

// ConfigCommand writes and checks configuration files
type ConfigCommand struct {
	boot   Bootstrapper
	output io.Writer
}

// NewConfigCommand creates the config command
func NewConfigCommand(boot Bootstrapper, output io.Writer) *ConfigCommand {
	return &ConfigCommand{boot: boot, output: output}
}

func (c *ConfigCommand) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: config requires a subcommand: init, check", ErrUsage)
	}

	switch args[0] {
	case "init":
		return c.runInit(args[1:])
	case "check":
		return c.runCheck(args[1:])
	default:
		return fmt.Errorf("%w: unknown config subcommand: %s", ErrUsage, args[0])
	}
}

func (c *ConfigCommand) runInit(args []string) error {
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite an existing file")

	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	path := config.GetConfigPath()
	if len(rest) > 0 {
		path = rest[0]
	}

	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := config.Default().SaveToFile(path); err != nil {
		return err
	}
	fmt.Fprintf(c.output, "Wrote default configuration to %s\n", path)
	return nil
}

func (c *ConfigCommand) runCheck(args []string) error {
	fs := flag.NewFlagSet("config check", flag.ContinueOnError)

	var global globalFlags
	global.bind(fs)

	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 && global.configPath == "" {
		global.configPath = rest[0]
	}

	rt, err := c.boot(global.boot())
	if err != nil {
		return err
	}
	cfg := rt.Config

	path := global.configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	renderSection(c.output, "Configuration", [][2]string{
		{"File", path},
		{"Log output", fmt.Sprintf("%s (%s)", cfg.Logging.Output, cfg.Logging.Level)},
		{"Progress", cfg.Progress},
	})
	renderSection(c.output, "Export", [][2]string{
		{"Mode", cfg.Export.Mode},
		{"Format", cfg.Export.OutputFormat},
		{"Headers", fmt.Sprintf("%t", cfg.Export.IncludeHeaders)},
		{"Output", coalesceString(cfg.Export.OutputPath, cfg.Export.OutputDir)},
		{"Time zone", coalesceString(cfg.Export.TimezoneTarget, "source")},
		{"Inputs", strings.Join(cfg.Export.Inputs, ", ")},
	})

	overrides := cfg.Overrides.Map()
	if len(overrides) > 0 {
		var rows [][2]string
		for _, key := range sortedKeys(overrides) {
			rows = append(rows, [2]string{key, overrides[key]})
		}
		renderSection(c.output, "Overrides", rows)
	}

	fmt.Fprintln(c.output, styleOK.Render("configuration is valid"))
	return nil
}

func (c *ConfigCommand) Description() string {
	return "Create or check a configuration file"
}

func (c *ConfigCommand) Help() string {
	return `Config Command - Create or check a configuration file

Usage:
  hydrolog config init [--force] [path]   Write the default configuration
  hydrolog config check [path]            Load, validate and summarize

Without a path the default location is used:
  $HYDROLOG_CONFIG_FILE, $HYDROLOG_CONFIG_DIR/hydrolog.toml,
  ~/.config/hydrolog.toml

Configuration sources (precedence: flags > environment > file > defaults).
Environment variables use the HYDROLOG_ prefix with dots as underscores,
e.g. HYDROLOG_EXPORT_MODE=individual, HYDROLOG_OVERRIDES_CLIENT=Acme.
HYDROLOG_EXPORT_INPUTS takes a comma-separated list.
`
}

// coalesceString returns the first non-empty string from a list of arguments.
func coalesceString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
