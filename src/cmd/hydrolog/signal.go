// FILE: hydrolog/src/cmd/hydrolog/signal.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalHandler cancels the run context on the first interrupt and
// exits on the second
type SignalHandler struct {
	sigChan chan os.Signal
	cancel  context.CancelFunc
}

// NewSignalHandler registers for termination signals and returns the
// context they cancel
func NewSignalHandler(parent context.Context) (*SignalHandler, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	sh := &SignalHandler{
		sigChan: make(chan os.Signal, 2),
		cancel:  cancel,
	}
	signal.Notify(sh.sigChan, syscall.SIGINT, syscall.SIGTERM)

	go sh.handle()
	return sh, ctx
}

func (sh *SignalHandler) handle() {
	sig, ok := <-sh.sigChan
	if !ok {
		return
	}
	if logger != nil {
		logger.Info("msg", "Shutdown signal received", "signal", sig.String())
	}
	sh.cancel()

	if _, ok := <-sh.sigChan; ok {
		Error("Interrupted\n")
		Exit(130)
	}
}

// Stop cleans up signal handling
func (sh *SignalHandler) Stop() {
	signal.Stop(sh.sigChan)
	sh.cancel()
	close(sh.sigChan)
}
