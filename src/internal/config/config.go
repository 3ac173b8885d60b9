// FILE: hydrolog/src/internal/config/config.go
package config

// Config is the complete hydrolog configuration
type Config struct {
	// Suppress non-error console output
	Quiet bool `toml:"quiet"`

	// Progress display: "auto", "always", "never"
	Progress string `toml:"progress"`

	Logging   *LogConfig     `toml:"logging"`
	Input     InputConfig    `toml:"input"`
	Export    ExportConfig   `toml:"export"`
	Overrides OverrideConfig `toml:"overrides"`
	Watch     WatchConfig    `toml:"watch"`
}

// InputConfig controls input file validation
type InputConfig struct {
	// Accepted extensions; others load with a warning
	Extensions []string `toml:"extensions"`

	// Files above this size load with a warning
	MaxSizeMB int64 `toml:"max_size_mb"`

	// Share of non-printable bytes in the sample that marks a file binary
	BinaryThreshold float64 `toml:"binary_threshold"`

	// Path filters applied to the expanded input list, all must pass
	Filters []FilterConfig `toml:"filters"`
}

// FilterType selects whether matching paths are kept or dropped
type FilterType string

const (
	FilterTypeInclude FilterType = "include"
	FilterTypeExclude FilterType = "exclude"
)

// FilterLogic combines multiple patterns of one filter
type FilterLogic string

const (
	FilterLogicOr  FilterLogic = "or"
	FilterLogicAnd FilterLogic = "and"
)

// FilterConfig is one regular expression filter over input paths
type FilterConfig struct {
	Type     FilterType  `toml:"type"`
	Logic    FilterLogic `toml:"logic"`
	Patterns []string    `toml:"patterns"`
}

// ExportConfig holds export defaults; command flags override them
type ExportConfig struct {
	// "single-chronological", "single-ordered" or "individual"
	Mode string `toml:"mode"`

	IncludeHeaders    bool `toml:"include_headers"`
	AddSuffix         bool `toml:"add_suffix"`
	PreserveFilenames bool `toml:"preserve_filenames"`
	FillStartDate     bool `toml:"fill_start_date"`

	// "tab" or "colon"
	OutputFormat string `toml:"output_format"`

	// Zone to convert data timestamps to, empty to keep source time
	TimezoneTarget string `toml:"timezone_target"`

	OutputPath string `toml:"output_path"`
	OutputDir  string `toml:"output_dir"`

	// Input files or glob patterns used when none are given on the command line
	Inputs []string `toml:"inputs"`
}

// OverrideConfig holds global values for the editable header fields
type OverrideConfig struct {
	Client    string `toml:"client"`
	Job       string `toml:"job"`
	Project   string `toml:"project"`
	Personnel string `toml:"personnel"`
	Site      string `toml:"site"`
	Location  string `toml:"location"`
	StartDate string `toml:"start_date"`
	Timezone  string `toml:"timezone"`
}

// Map returns the non-empty overrides keyed by field key
func (o OverrideConfig) Map() map[string]string {
	out := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set("client", o.Client)
	set("job", o.Job)
	set("project", o.Project)
	set("personnel", o.Personnel)
	set("site", o.Site)
	set("location", o.Location)
	set("start_date", o.StartDate)
	set("timezone", o.Timezone)
	return out
}

// WatchConfig controls re-export on input changes
type WatchConfig struct {
	// Quiet period after the last change before exporting
	DebounceMs int64 `toml:"debounce_ms"`

	// Minimum time between two exports
	MinIntervalMs int64 `toml:"min_interval_ms"`
}
