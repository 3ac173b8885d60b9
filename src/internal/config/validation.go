// FILE: hydrolog/src/internal/config/validation.go
package config

import (
	"fmt"
	"regexp"
	"strings"

	"hydrolog/src/internal/header"
	"hydrolog/src/internal/tz"

	lconfig "github.com/lixenwraith/config"
)

// validate checks the whole configuration, reporting the first failure
// prefixed with its section.
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	validProgress := map[string]bool{
		"auto": true, "always": true, "never": true,
	}
	if !validProgress[c.Progress] {
		return fmt.Errorf("invalid progress mode: %s", c.Progress)
	}

	if err := validateLogConfig(c.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := validateInput(&c.Input); err != nil {
		return fmt.Errorf("input config: %w", err)
	}
	if err := validateExport(&c.Export); err != nil {
		return fmt.Errorf("export config: %w", err)
	}
	if err := validateOverrides(&c.Overrides); err != nil {
		return fmt.Errorf("overrides config: %w", err)
	}
	if err := validateWatch(&c.Watch); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	return nil
}

// Validate checks a configuration built or modified outside Load
func (c *Config) Validate() error {
	return c.validate()
}

func validateInput(cfg *InputConfig) error {
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension must start with a dot: %q", ext)
		}
	}
	if cfg.MaxSizeMB < 0 {
		return fmt.Errorf("max_size_mb cannot be negative: %d", cfg.MaxSizeMB)
	}
	if cfg.BinaryThreshold <= 0 || cfg.BinaryThreshold > 1 {
		return fmt.Errorf("binary_threshold must be in (0, 1]: %g", cfg.BinaryThreshold)
	}
	for i, f := range cfg.Filters {
		if err := ValidateFilter(f); err != nil {
			return fmt.Errorf("filter[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateFilter checks a filter type, logic and patterns
func ValidateFilter(cfg FilterConfig) error {
	switch cfg.Type {
	case FilterTypeInclude, FilterTypeExclude, "":
	default:
		return fmt.Errorf("invalid filter type: %s", cfg.Type)
	}

	switch cfg.Logic {
	case FilterLogicOr, FilterLogicAnd, "":
	default:
		return fmt.Errorf("invalid filter logic: %s", cfg.Logic)
	}

	for i, pattern := range cfg.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid regex pattern[%d] '%s': %w", i, pattern, err)
		}
	}
	return nil
}

func validateExport(cfg *ExportConfig) error {
	validModes := map[string]bool{
		"single-chronological": true, "single-ordered": true, "individual": true,
	}
	if !validModes[cfg.Mode] {
		return fmt.Errorf("invalid mode: %s", cfg.Mode)
	}

	validFormats := map[string]bool{
		"tab": true, "colon": true,
	}
	if !validFormats[cfg.OutputFormat] {
		return fmt.Errorf("invalid output format: %s", cfg.OutputFormat)
	}

	if cfg.TimezoneTarget != "" {
		if _, err := tz.Load(cfg.TimezoneTarget); err != nil {
			return fmt.Errorf("timezone_target: %w", err)
		}
	}

	if cfg.Mode != "individual" && cfg.OutputPath == "" {
		if err := lconfig.NonEmpty(cfg.OutputDir); err != nil {
			return fmt.Errorf("output_path or output_dir required for %s: %w", cfg.Mode, err)
		}
	}

	return nil
}

func validateOverrides(cfg *OverrideConfig) error {
	if cfg.StartDate != "" {
		if _, ok := header.CleanDate(cfg.StartDate); !ok {
			return fmt.Errorf("start_date is not a recognizable date: %q", cfg.StartDate)
		}
	}
	if cfg.Timezone != "" {
		if _, err := tz.Load(cfg.Timezone); err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
	}
	return nil
}

func validateWatch(cfg *WatchConfig) error {
	if cfg.DebounceMs < 10 {
		return fmt.Errorf("debounce too small: %d ms", cfg.DebounceMs)
	}
	if cfg.MinIntervalMs < 0 {
		return fmt.Errorf("min_interval_ms cannot be negative: %d", cfg.MinIntervalMs)
	}
	return nil
}
