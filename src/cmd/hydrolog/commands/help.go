// FILE: hydrolog/src/cmd/hydrolog/commands/help.go
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// generalHelpTemplate is the default help message shown when no specific command is requested.
const generalHelpTemplate = `hydrolog: merge, correct and re-export hydrophone sensor logs.

Usage:
  hydrolog <command> [options]

Commands:
%s

Common Options:
  -c, --config <path>      Path to configuration file
  -q, --quiet              Suppress all console output, including errors
  --log-level <level>      debug, info, warn, error
  -h, --help               Display help and exit
  -v, --version            Display version information and exit

For command-specific help:
  hydrolog help <command>
  hydrolog <command> --help

Configuration Sources (Precedence: CLI > Env > File > Defaults):
  - CLI flags override all other settings
  - HYDROLOG_* environment variables and a .env file override file settings
  - TOML configuration file, see 'hydrolog config init'

Examples:
  # Merge all logs of a deployment into one chronological file
  hydrolog export -o merged.txt 'deploy/*.txt'

  # Check what the parser sees in a file
  hydrolog inspect deploy/20240115_0001.txt
`

// HelpCommand handles the display of general or command-specific help messages.
type HelpCommand struct {
	router *CommandRouter
	output io.Writer
}

// NewHelpCommand creates a new help command handler.
func NewHelpCommand(router *CommandRouter, output io.Writer) *HelpCommand {
	return &HelpCommand{router: router, output: output}
}

// Execute displays the appropriate help message based on the provided arguments.
func (c *HelpCommand) Execute(args []string) error {
	if len(args) > 0 && args[0] != "" {
		cmdName := args[0]

		if handler, exists := c.router.GetCommand(cmdName); exists {
			fmt.Fprint(c.output, handler.Help())
			return nil
		}

		return fmt.Errorf("%w: unknown command: %s", ErrUsage, cmdName)
	}

	fmt.Fprintf(c.output, generalHelpTemplate, c.formatCommandList())
	return nil
}

// Description returns a brief one-line description of the command.
func (c *HelpCommand) Description() string {
	return "Display help information"
}

// Help returns the detailed help text for the 'help' command itself.
func (c *HelpCommand) Help() string {
	return `Help Command - Display help information

Usage:
  hydrolog help              Show general help
  hydrolog help <command>    Show help for a specific command

Examples:
  hydrolog help export       # Show export command help
  hydrolog export --help     # Alternative way to get command help
`
}

// formatCommandList creates a formatted and aligned list of all available commands.
func (c *HelpCommand) formatCommandList() string {
	commands := c.router.GetCommands()

	names := make([]string, 0, len(commands))
	maxLen := 0
	for name := range commands {
		names = append(names, name)
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		handler := commands[name]
		padding := strings.Repeat(" ", maxLen-len(name)+2)
		lines = append(lines, fmt.Sprintf("  %s%s%s", name, padding, handler.Description()))
	}

	return strings.Join(lines, "\n")
}
