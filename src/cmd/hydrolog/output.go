// FILE: hydrolog/src/cmd/hydrolog/output.go
package main

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// OutputHandler writes process-level messages, honoring quiet mode
type OutputHandler struct {
	quiet  bool
	mu     sync.RWMutex
	stdout io.Writer
	stderr io.Writer
}

var output *OutputHandler

// InitOutputHandler initializes the global output handler
func InitOutputHandler(quiet bool) {
	output = &OutputHandler{
		quiet:  quiet,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Print writes to stdout unless quiet
func (o *OutputHandler) Print(format string, args ...any) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if !o.quiet {
		fmt.Fprintf(o.stdout, format, args...)
	}
}

// Error writes to stderr unless quiet
func (o *OutputHandler) Error(format string, args ...any) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if !o.quiet {
		fmt.Fprintf(o.stderr, format, args...)
	}
}

// SetQuiet switches quiet mode once the configuration is known
func (o *OutputHandler) SetQuiet(quiet bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.quiet = quiet
}

func Print(format string, args ...any) {
	if output != nil {
		output.Print(format, args...)
	}
}

func Error(format string, args ...any) {
	if output != nil {
		output.Error(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// Exit flushes the logger and terminates with code
func Exit(code int) {
	shutdownLogger()
	os.Exit(code)
}

// FatalError reports a message and exits
func FatalError(code int, format string, args ...any) {
	Error(format, args...)
	Exit(code)
}
