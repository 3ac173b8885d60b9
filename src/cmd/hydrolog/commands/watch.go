// FILE: hydrolog/src/cmd/hydrolog/commands/watch.go
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"hydrolog/src/internal/export"
	"hydrolog/src/internal/watch"
)

// WatchCommand re-exports whenever the inputs change
type WatchCommand struct {
	ctx    context.Context
	boot   Bootstrapper
	output io.Writer
	errOut io.Writer
}

// NewWatchCommand creates the watch command
func NewWatchCommand(ctx context.Context, boot Bootstrapper, output, errOut io.Writer) *WatchCommand {
	return &WatchCommand{ctx: ctx, boot: boot, output: output, errOut: errOut}
}

func (c *WatchCommand) Execute(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(c.errOut)

	var global globalFlags
	var ef exportFlags
	global.bind(fs)
	ef.bind(fs)

	inputs, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	rt, err := c.boot(global.boot())
	if err != nil {
		return err
	}
	ef.apply(fs, rt.Config)

	if len(inputs) == 0 {
		inputs = rt.Config.Export.Inputs
	}
	chain, err := inputFilters(rt, &ef)
	if err != nil {
		return err
	}
	files, err := resolveInputs(rt, inputs, chain)
	if err != nil {
		return err
	}

	w, err := watch.New(watch.Options{
		Patterns:    inputs,
		Debounce:    time.Duration(rt.Config.Watch.DebounceMs) * time.Millisecond,
		MinInterval: time.Duration(rt.Config.Watch.MinIntervalMs) * time.Millisecond,
		Ignore:      plannedOutputs(files, exportOptions(rt.Config.Export, ef.dryRun)),
	}, rt.Logger)
	if err != nil {
		return err
	}

	onChange := func(ctx context.Context, paths []string) error {
		paths, _ = chain.Select(paths)
		if len(paths) == 0 {
			rt.Logger.Warn("msg", "No inputs left after change",
				"component", "watch_command")
			return nil
		}
		w.Ignore(plannedOutputs(paths, exportOptions(rt.Config.Export, ef.dryRun))...)

		rep, err := runExport(rt, paths, &ef, c.output, c.errOut)
		if rep != nil {
			for _, out := range rep.Outputs {
				w.Ignore(out.Path)
			}
		}
		logStatus(rt, w)
		return err
	}

	// An initial failure is reported but does not stop watching
	if err := onChange(c.ctx, files); err != nil && !rt.Config.Quiet {
		fmt.Fprintln(c.errOut, styleError.Render(err.Error()))
	}

	if !rt.Config.Quiet {
		dirs := "directories"
		if len(w.Directories()) == 1 {
			dirs = "directory"
		}
		fmt.Fprintln(c.output, styleDim.Render(fmt.Sprintf("watching %d %s, press Ctrl+C to stop",
			len(w.Directories()), dirs)))
	}

	return w.Run(c.ctx, onChange)
}

// plannedOutputs returns the paths an export of files would write
func plannedOutputs(files []string, opts export.Options) []string {
	if opts.Mode.Single() {
		return []string{export.MergedPath(opts)}
	}
	out := make([]string, 0, len(files))
	for i, f := range files {
		out = append(out, export.OutputPath(f, i, opts))
	}
	return out
}

// logStatus records component statistics after each run
func logStatus(rt *Runtime, w *watch.Watcher) {
	stats := rt.GetStats()
	merger, _ := stats["merger"].(map[string]any)
	loader, _ := stats["loader"].(map[string]any)

	rt.Logger.Debug("msg", "Watch status",
		"component", "watch_command",
		"exports", merger["total_exports"],
		"failed", merger["total_failed"],
		"records", merger["total_records"],
		"files_loaded", loader["total_loaded"],
		"events", w.GetStats()["total_events"])
}

func (c *WatchCommand) Description() string {
	return "Re-export whenever input files change"
}

func (c *WatchCommand) Help() string {
	return `Watch Command - Re-export whenever input files change

Usage:
  hydrolog watch [export options] <file|glob>...

Runs one export immediately, then watches the directories holding the
inputs. Changes are debounced ([watch] debounce_ms) and exports are
spaced at least [watch] min_interval_ms apart. New files matching a glob
are picked up on the next run; written outputs are never treated as
inputs.

Accepts every option of 'hydrolog export'. Stop with Ctrl+C.

Example:
  hydrolog watch -m individual -d exported 'incoming/*.txt'
`
}
