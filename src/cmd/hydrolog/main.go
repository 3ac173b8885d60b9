// FILE: hydrolog/src/cmd/hydrolog/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"slices"
	"time"

	"hydrolog/src/cmd/hydrolog/commands"

	"github.com/joho/godotenv"
	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	// Quiet must apply before the config is loaded
	InitOutputHandler(slices.Contains(os.Args[1:], "-q") || slices.Contains(os.Args[1:], "--quiet"))

	// A .env file in the working directory feeds HYDROLOG_* variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		Error("Failed to read .env: %v\n", err)
	}

	sh, ctx := NewSignalHandler(context.Background())
	defer sh.Stop()

	router := commands.NewCommandRouter(ctx, bootstrap)
	handled, err := router.Route(os.Args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			Exit(0)
		}
		FatalError(exitCode(err), "Error: %v\n", err)
	}
	if !handled {
		router.GetCommands()["help"].Execute(nil)
		Exit(2)
	}

	shutdownLogger()
}

// exitCode maps command errors onto process status
func exitCode(err error) int {
	switch {
	case errors.Is(err, commands.ErrUsage), errors.Is(err, errConfigNotFound):
		return 2
	default:
		return 1
	}
}

func shutdownLogger() {
	if logger == nil {
		return
	}
	if err := logger.Shutdown(2 * time.Second); err != nil {
		Error("Logger shutdown error: %v\n", err)
	}
	logger = nil
}
