// FILE: hydrolog/src/cmd/hydrolog/commands/runtime.go
package commands

import (
	"hydrolog/src/internal/config"
	"hydrolog/src/internal/export"
	"hydrolog/src/internal/header"
	"hydrolog/src/internal/sink"
	"hydrolog/src/internal/source"
	"hydrolog/src/internal/tz"

	"github.com/lixenwraith/log"
)

// BootOptions carries the global flags every runtime command accepts
type BootOptions struct {
	ConfigPath string
	Quiet      bool
	LogLevel   string
}

// Bootstrapper loads configuration and starts the logger
type Bootstrapper func(opts BootOptions) (*Runtime, error)

// Runtime holds the components shared by the export commands
type Runtime struct {
	Config    *config.Config
	Logger    *log.Logger
	Loader    *source.Loader
	Engine    *header.OverrideEngine
	Converter *tz.LocationConverter
	Merger    *export.Merger
}

// NewRuntime wires the export pipeline from cfg
func NewRuntime(cfg *config.Config, logger *log.Logger) *Runtime {
	loader := source.NewLoader(LoaderOptions(cfg.Input), logger)
	engine := header.NewOverrideEngine(logger)
	converter := tz.NewLocationConverter(logger)

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		Loader:    loader,
		Engine:    engine,
		Converter: converter,
		Merger:    export.NewMerger(loader, engine, converter, sink.FileOpener(logger), logger),
	}
}

// LoaderOptions maps the input section onto loader options
func LoaderOptions(in config.InputConfig) source.Options {
	opts := source.DefaultOptions()
	if len(in.Extensions) > 0 {
		opts.Extensions = in.Extensions
	}
	if in.MaxSizeMB > 0 {
		opts.MaxSizeBytes = in.MaxSizeMB * 1024 * 1024
	}
	if in.BinaryThreshold > 0 {
		opts.BinaryThreshold = in.BinaryThreshold
	}
	return opts
}

// GetStats collects component statistics for status logging
func (rt *Runtime) GetStats() map[string]any {
	return map[string]any{
		"loader":    rt.Loader.GetStats(),
		"overrides": rt.Engine.GetStats(),
		"merger":    rt.Merger.GetStats(),
	}
}
