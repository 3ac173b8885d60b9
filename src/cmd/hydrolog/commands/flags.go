// FILE: hydrolog/src/cmd/hydrolog/commands/flags.go
package commands

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"hydrolog/src/internal/config"
	"hydrolog/src/internal/core"
	"hydrolog/src/internal/export"
	"hydrolog/src/internal/header"
)

// stringList is a repeatable string flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// globalFlags are accepted by every command that loads configuration
type globalFlags struct {
	configPath string
	quiet      bool
	logLevel   string
}

func (g *globalFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&g.configPath, "c", "", "Config file path")
	fs.StringVar(&g.configPath, "config", "", "Config file path")
	fs.BoolVar(&g.quiet, "q", false, "Suppress console output")
	fs.BoolVar(&g.quiet, "quiet", false, "Suppress console output")
	fs.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func (g *globalFlags) boot() BootOptions {
	return BootOptions{
		ConfigPath: g.configPath,
		Quiet:      g.quiet,
		LogLevel:   g.logLevel,
	}
}

// exportFlags override the [export] section for one run
type exportFlags struct {
	mode          string
	output        string
	outputDir     string
	format        string
	tzTarget      string
	progress      string
	noHeaders     bool
	noSuffix      bool
	numbered      bool
	fillStartDate bool
	dryRun        bool
	jsonReport    bool
	set           stringList
	fileSet       stringList
	include       stringList
	exclude       stringList
}

func (f *exportFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&f.mode, "m", "", "Export mode")
	fs.StringVar(&f.mode, "mode", "", "Export mode: single-chronological, single-ordered, individual")
	fs.StringVar(&f.output, "o", "", "Merged output file")
	fs.StringVar(&f.output, "output", "", "Merged output file")
	fs.StringVar(&f.outputDir, "d", "", "Output directory")
	fs.StringVar(&f.outputDir, "output-dir", "", "Output directory")
	fs.StringVar(&f.format, "format", "", "Header format: tab, colon")
	fs.StringVar(&f.tzTarget, "tz", "", "Convert data timestamps to this zone")
	fs.StringVar(&f.progress, "progress", "", "Progress display: auto, always, never")
	fs.BoolVar(&f.noHeaders, "no-headers", false, "Write data rows only")
	fs.BoolVar(&f.noSuffix, "no-suffix", false, "Do not add _edited to individual output names")
	fs.BoolVar(&f.numbered, "numbered", false, "Name individual outputs exported_001, exported_002, ...")
	fs.BoolVar(&f.fillStartDate, "fill-start-date", false, "Add a missing start date from the file name")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Run the export without writing files")
	fs.BoolVar(&f.jsonReport, "json", false, "Print the report as JSON")
	fs.Var(&f.set, "set", "Override a header field for all files, key=value (repeatable)")
	fs.Var(&f.fileSet, "file-set", "Override a header field for one file, path:key=value (repeatable)")
	fs.Var(&f.include, "include", "Keep inputs whose path matches this regex (repeatable)")
	fs.Var(&f.exclude, "exclude", "Drop inputs whose path matches this regex (repeatable)")
}

// apply copies the flags given on the command line onto cfg
func (f *exportFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "m", "mode":
			cfg.Export.Mode = f.mode
		case "o", "output":
			cfg.Export.OutputPath = f.output
		case "d", "output-dir":
			cfg.Export.OutputDir = f.outputDir
		case "format":
			cfg.Export.OutputFormat = f.format
		case "tz":
			cfg.Export.TimezoneTarget = f.tzTarget
		case "progress":
			cfg.Progress = f.progress
		case "no-headers":
			cfg.Export.IncludeHeaders = !f.noHeaders
		case "no-suffix":
			cfg.Export.AddSuffix = !f.noSuffix
		case "numbered":
			cfg.Export.PreserveFilenames = !f.numbered
		case "fill-start-date":
			cfg.Export.FillStartDate = f.fillStartDate
		}
	})
}

// exportOptions maps the [export] section onto merger options
func exportOptions(cfg config.ExportConfig, dryRun bool) export.Options {
	return export.Options{
		Mode:              export.Mode(cfg.Mode),
		IncludeHeaders:    cfg.IncludeHeaders,
		AddSuffix:         cfg.AddSuffix,
		PreserveFilenames: cfg.PreserveFilenames,
		OutputFormat:      cfg.OutputFormat,
		TimezoneTarget:    cfg.TimezoneTarget,
		OutputPath:        cfg.OutputPath,
		OutputDir:         cfg.OutputDir,
		FillStartDate:     cfg.FillStartDate,
		DryRun:            dryRun,
	}
}

// buildOverrides layers --set over the [overrides] section and resolves
// --file-set entries against the expanded input list
func buildOverrides(base config.OverrideConfig, set, fileSet []string, files []string) (export.Overrides, error) {
	global := header.Override{}
	for k, v := range base.Map() {
		global[k] = v
	}

	for _, s := range set {
		key, value, err := parseAssignment(s)
		if err != nil {
			return export.Overrides{}, err
		}
		global[key] = value
	}

	perFile := make(map[string]header.Override)
	for _, s := range fileSet {
		path, assignment, err := splitFileAssignment(s)
		if err != nil {
			return export.Overrides{}, err
		}
		key, value, err := parseAssignment(assignment)
		if err != nil {
			return export.Overrides{}, err
		}

		matched := matchInputs(path, files)
		if len(matched) == 0 {
			return export.Overrides{}, fmt.Errorf("%w: --file-set %q matches no input file", ErrUsage, path)
		}
		for _, m := range matched {
			if perFile[m] == nil {
				perFile[m] = header.Override{}
			}
			perFile[m][key] = value
		}
	}

	return export.Overrides{Global: global, PerFile: perFile}, nil
}

// parseAssignment splits key=value, canonicalizes the key and cleans a
// start date value
func parseAssignment(s string) (string, string, error) {
	rawKey, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(rawKey) == "" {
		return "", "", fmt.Errorf("%w: expected key=value, got %q", ErrUsage, s)
	}

	key, _ := header.CanonicalKey(rawKey)
	value = strings.TrimSpace(value)

	if key == core.KeyStartDate.String() && value != "" {
		cleaned, ok := header.CleanDate(value)
		if !ok {
			return "", "", fmt.Errorf("%w: unrecognized start date %q", ErrUsage, value)
		}
		value = cleaned
	}

	return key, value, nil
}

// splitFileAssignment splits path:key=value at the last colon before the
// first equals sign, so drive letters and colons in values survive
func splitFileAssignment(s string) (string, string, error) {
	eq := strings.Index(s, "=")
	if eq < 0 {
		return "", "", fmt.Errorf("%w: expected path:key=value, got %q", ErrUsage, s)
	}
	colon := strings.LastIndex(s[:eq], ":")
	if colon <= 0 {
		return "", "", fmt.Errorf("%w: expected path:key=value, got %q", ErrUsage, s)
	}
	return s[:colon], s[colon+1:], nil
}

func matchInputs(path string, files []string) []string {
	want := absOrSelf(path)
	var out []string
	for _, f := range files {
		if absOrSelf(f) == want {
			out = append(out, f)
		}
	}
	return out
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// parseArgs parses flags interleaved with positional arguments
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		rest := fs.Args()
		// Everything after a "--" terminator is positional
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		args = rest
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
