// FILE: hydrolog/src/cmd/hydrolog/commands/export.go
package commands

import (
	"flag"
	"fmt"
	"io"

	"hydrolog/src/internal/config"
	"hydrolog/src/internal/export"
	"hydrolog/src/internal/filter"
	"hydrolog/src/internal/source"
)

// ExportCommand merges or re-exports sensor log files
type ExportCommand struct {
	boot   Bootstrapper
	output io.Writer
	errOut io.Writer
}

// NewExportCommand creates the export command
func NewExportCommand(boot Bootstrapper, output, errOut io.Writer) *ExportCommand {
	return &ExportCommand{boot: boot, output: output, errOut: errOut}
}

func (c *ExportCommand) Execute(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
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

	chain, err := inputFilters(rt, &ef)
	if err != nil {
		return err
	}
	files, err := resolveInputs(rt, inputs, chain)
	if err != nil {
		return err
	}

	_, err = runExport(rt, files, &ef, c.output, c.errOut)
	return err
}

// runExport builds overrides, runs one export and prints its report
func runExport(rt *Runtime, files []string, ef *exportFlags, output, errOut io.Writer) (*export.Report, error) {
	cfg := rt.Config

	overrides, err := buildOverrides(cfg.Overrides, ef.set, ef.fileSet, files)
	if err != nil {
		return nil, err
	}

	var progress export.ProgressSink
	if !cfg.Quiet && !ef.jsonReport {
		progress = newProgress(cfg.Progress, errOut)
	}

	opts := exportOptions(cfg.Export, ef.dryRun)
	rep, err := rt.Merger.Export(files, overrides, opts, progress)

	switch {
	case ef.jsonReport:
		if jerr := renderJSON(output, rep); jerr != nil && err == nil {
			err = jerr
		}
	case !cfg.Quiet:
		renderReport(output, rep)
		if ef.dryRun && rep.Succeeded() {
			fmt.Fprintln(output, styleDim.Render("dry run: no files written"))
		}
	}

	return rep, err
}

// resolveInputs expands command line inputs, falling back to the
// configured input list, and applies the path filters
func resolveInputs(rt *Runtime, inputs []string, chain *filter.Chain) ([]string, error) {
	if len(inputs) == 0 {
		inputs = rt.Config.Export.Inputs
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no input files given", ErrUsage)
	}

	files, err := source.Expand(inputs)
	if err != nil {
		return nil, err
	}

	kept, dropped := chain.Select(files)
	if len(dropped) > 0 {
		rt.Logger.Info("msg", "Inputs excluded by filters",
			"component", "export_command",
			"excluded", len(dropped),
			"kept", len(kept))
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no input files match %v", inputs)
	}
	return kept, nil
}

// inputFilters builds the path filter chain from [[input.filters]] and
// the --include and --exclude flags
func inputFilters(rt *Runtime, ef *exportFlags) (*filter.Chain, error) {
	configs := append([]config.FilterConfig(nil), rt.Config.Input.Filters...)
	if len(ef.include) > 0 {
		configs = append(configs, config.FilterConfig{Type: config.FilterTypeInclude, Patterns: ef.include})
	}
	if len(ef.exclude) > 0 {
		configs = append(configs, config.FilterConfig{Type: config.FilterTypeExclude, Patterns: ef.exclude})
	}

	chain, err := filter.NewChain(configs, rt.Logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return chain, nil
}

func (c *ExportCommand) Description() string {
	return "Merge or re-export sensor log files"
}

func (c *ExportCommand) Help() string {
	return `Export Command - Merge or re-export sensor log files

Usage:
  hydrolog export [options] <file|glob>...

Modes (-m, --mode):
  single-chronological  One output, all rows sorted by timestamp (default)
  single-ordered        One output, files concatenated in argument order
  individual            One output per input file

Output:
  -o, --output <file>       Merged output file
  -d, --output-dir <dir>    Output directory (default: .)
  --format <tab|colon>      Header layout (default: tab)
  --no-headers              Write data rows only
  --no-suffix               Individual outputs keep the input name
                            instead of <name>_edited
  --numbered                Individual outputs are named exported_001, ...
  --tz <zone>               Convert data timestamps, e.g. UTC, AEST, Australia/Perth
  --dry-run                 Run everything except writing files
  --json                    Print the report as JSON
  --progress <mode>         auto, always, never

Header overrides:
  --set key=value           Override an editable field in every file
  --file-set path:key=value Override an editable field in one file
  --fill-start-date         Take a missing start date from the file name

Input selection:
  --include <regex>         Keep only inputs whose path matches (repeatable)
  --exclude <regex>         Drop inputs whose path matches (repeatable)

  Editable fields: client, job, project, personnel, site, location,
  start_date, timezone. Overrides of any other field are rejected and
  reported; protected values are never changed.

Global:
  -c, --config <path>       Config file (default: ~/.config/hydrolog.toml)
  -q, --quiet               Suppress console output
  --log-level <level>       debug, info, warn, error

Examples:
  # Merge a deployment chronologically
  hydrolog export -o site_a.txt 'data/site_a/**/*.txt'

  # Re-export each file with a corrected client and UTC timestamps
  hydrolog export -m individual -d out --set client="Acme Marine" --tz UTC data/*.txt
`
}
