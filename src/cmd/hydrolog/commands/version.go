// FILE: hydrolog/src/cmd/hydrolog/commands/version.go
package commands

import (
	"fmt"
	"io"

	"hydrolog/src/internal/version"
)

// VersionCommand handles version display
type VersionCommand struct {
	output io.Writer
}

// NewVersionCommand creates a new version command
func NewVersionCommand(output io.Writer) *VersionCommand {
	return &VersionCommand{output: output}
}

func (c *VersionCommand) Execute(args []string) error {
	if len(args) > 0 && (args[0] == "--short" || args[0] == "-s") {
		fmt.Fprintln(c.output, version.Short())
		return nil
	}
	fmt.Fprintln(c.output, version.String())
	return nil
}

func (c *VersionCommand) Description() string {
	return "Show version information"
}

func (c *VersionCommand) Help() string {
	return `Version Command - Show hydrolog version information

Usage:
  hydrolog version [--short]
  hydrolog -v
  hydrolog --version

Output includes the version tag, git commit, build time and the Go
version used for compilation. --short prints the tag only.
`
}
