// FILE: hydrolog/src/cmd/hydrolog/commands/router.go
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrUsage marks command line mistakes; main exits with status 2
var ErrUsage = errors.New("usage error")

// Handler defines the interface required for all subcommands.
type Handler interface {
	Execute(args []string) error
	Description() string
	Help() string
}

// CommandRouter handles the routing of CLI arguments to the appropriate subcommand handler.
type CommandRouter struct {
	commands map[string]Handler
	out      io.Writer
	errOut   io.Writer
}

// NewCommandRouter creates the router with all available commands.
// Commands that need a runtime call boot lazily, after their own flags
// are parsed.
func NewCommandRouter(ctx context.Context, boot Bootstrapper) *CommandRouter {
	return newCommandRouter(ctx, boot, os.Stdout, os.Stderr)
}

func newCommandRouter(ctx context.Context, boot Bootstrapper, out, errOut io.Writer) *CommandRouter {
	router := &CommandRouter{
		commands: make(map[string]Handler),
		out:      out,
		errOut:   errOut,
	}

	router.commands["export"] = NewExportCommand(boot, out, errOut)
	router.commands["inspect"] = NewInspectCommand(boot, out)
	router.commands["watch"] = NewWatchCommand(ctx, boot, out, errOut)
	router.commands["config"] = NewConfigCommand(boot, out)
	router.commands["version"] = NewVersionCommand(out)
	router.commands["help"] = NewHelpCommand(router, out)

	return router
}

// Route executes the subcommand named by args[1]. It reports false when
// no command was given.
func (r *CommandRouter) Route(args []string) (bool, error) {
	if len(args) < 2 {
		return false, nil
	}

	cmdName := args[1]

	switch cmdName {
	case "-v", "--version":
		return true, r.commands["version"].Execute(nil)
	case "-h", "--help":
		return true, r.commands["help"].Execute(nil)
	}

	handler, exists := r.commands[cmdName]
	if !exists {
		return false, fmt.Errorf("%w: unknown command: %s\n\nRun 'hydrolog help' for usage", ErrUsage, cmdName)
	}

	// Help flag anywhere after a command shows that command's help
	for _, arg := range args[2:] {
		if arg == "-h" || arg == "--help" {
			fmt.Fprint(r.out, handler.Help())
			return true, nil
		}
		if arg == "--" {
			break
		}
	}

	return true, handler.Execute(args[2:])
}

// GetCommand returns a specific command handler by its name.
func (r *CommandRouter) GetCommand(name string) (Handler, bool) {
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommands returns a map of all registered commands.
func (r *CommandRouter) GetCommands() map[string]Handler {
	return r.commands
}

// ShowCommands displays a list of available subcommands to stderr.
func (r *CommandRouter) ShowCommands() {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(r.errOut, "  %-10s %s\n", name, r.commands[name].Description())
	}
	fmt.Fprintln(r.errOut, "\nUse 'hydrolog <command> --help' for command-specific help")
}
