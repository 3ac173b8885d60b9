// FILE: hydrolog/src/internal/filter/filter.go
package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sync/atomic"

	"hydrolog/src/internal/config"

	"github.com/lixenwraith/log"
)

// Filter selects input files by regular expressions matched against
// their slash-separated path
type Filter struct {
	config   config.FilterConfig
	patterns []*regexp.Regexp
	logger   *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalMatched   atomic.Uint64
	totalDropped   atomic.Uint64
}

// New creates a new filter from configuration
func New(cfg config.FilterConfig, logger *log.Logger) (*Filter, error) {
	if cfg.Type == "" {
		cfg.Type = config.FilterTypeInclude
	}
	if cfg.Logic == "" {
		cfg.Logic = config.FilterLogicOr
	}
	if err := config.ValidateFilter(cfg); err != nil {
		return nil, err
	}

	f := &Filter{
		config:   cfg,
		patterns: make([]*regexp.Regexp, 0, len(cfg.Patterns)),
		logger:   logger,
	}
	for _, pattern := range cfg.Patterns {
		f.patterns = append(f.patterns, regexp.MustCompile(pattern))
	}

	logger.Debug("msg", "Filter created",
		"component", "filter",
		"type", cfg.Type,
		"logic", cfg.Logic,
		"pattern_count", len(cfg.Patterns))

	return f, nil
}

// Apply reports whether path passes the filter
func (f *Filter) Apply(path string) bool {
	f.totalProcessed.Add(1)

	// No patterns means pass everything
	if len(f.patterns) == 0 {
		return true
	}

	matched := f.matches(filepath.ToSlash(path))
	if matched {
		f.totalMatched.Add(1)
	}

	pass := matched
	if f.config.Type == config.FilterTypeExclude {
		pass = !matched
	}
	if !pass {
		f.totalDropped.Add(1)
	}
	return pass
}

func (f *Filter) matches(text string) bool {
	if f.config.Logic == config.FilterLogicAnd {
		for _, re := range f.patterns {
			if !re.MatchString(text) {
				return false
			}
		}
		return true
	}

	for _, re := range f.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// GetStats returns filter statistics
func (f *Filter) GetStats() map[string]any {
	return map[string]any{
		"type":            string(f.config.Type),
		"logic":           string(f.config.Logic),
		"pattern_count":   len(f.patterns),
		"total_processed": f.totalProcessed.Load(),
		"total_matched":   f.totalMatched.Load(),
		"total_dropped":   f.totalDropped.Load(),
	}
}

// Describe returns a short form such as "exclude(or): _edited, ^tmp/"
func (f *Filter) Describe() string {
	return fmt.Sprintf("%s(%s): %v", f.config.Type, f.config.Logic, f.config.Patterns)
}
