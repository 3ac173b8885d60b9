// FILE: hydrolog/src/internal/export/options.go
package export

import (
	"fmt"

	"hydrolog/src/internal/header"
)

// Mode selects how inputs are combined
type Mode string

const (
	ModeChronological Mode = "single-chronological"
	ModeOrdered       Mode = "single-ordered"
	ModeIndividual    Mode = "individual"
)

// Single reports whether the mode produces one output
func (m Mode) Single() bool {
	return m == ModeChronological || m == ModeOrdered
}

// Name used for merged output when only a directory is given
const defaultMergedName = "merged_export.txt"

// Options controls one export call
type Options struct {
	Mode           Mode
	IncludeHeaders bool
	AddSuffix      bool
	// PreserveFilenames keeps input base names in individual mode;
	// otherwise outputs are numbered exported_001, exported_002, ...
	PreserveFilenames bool
	OutputFormat      string
	// TimezoneTarget converts data timestamps when set
	TimezoneTarget string
	// OutputPath is the merged output file; OutputDir the directory for
	// individual outputs, or for the merged file when OutputPath is empty
	OutputPath string
	OutputDir  string
	// FillStartDate adds start_date from the filename when absent
	FillStartDate bool
	// DryRun produces outputs in memory only
	DryRun bool
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Mode:              ModeChronological,
		IncludeHeaders:    true,
		AddSuffix:         true,
		PreserveFilenames: true,
		OutputFormat:      "tab",
	}
}

// Validate checks option consistency
func (o Options) Validate() error {
	switch o.Mode {
	case ModeChronological, ModeOrdered:
		if o.OutputPath == "" && o.OutputDir == "" {
			return fmt.Errorf("mode %s requires an output path or directory", o.Mode)
		}
	case ModeIndividual:
	default:
		return fmt.Errorf("invalid mode: %q", o.Mode)
	}

	switch o.OutputFormat {
	case "", "tab", "colon":
	default:
		return fmt.Errorf("invalid output format: %q", o.OutputFormat)
	}

	return nil
}

// Overrides carries a global override and per-file layers on top of it
type Overrides struct {
	Global  header.Override
	PerFile map[string]header.Override
}

// For returns the effective override for one input path
func (o Overrides) For(path string) header.Override {
	if layer, ok := o.PerFile[path]; ok {
		return header.Merge(o.Global, layer)
	}
	return header.Merge(o.Global)
}
