// FILE: hydrolog/src/internal/filter/chain.go
package filter

import (
	"fmt"
	"sync/atomic"

	"hydrolog/src/internal/config"

	"github.com/lixenwraith/log"
)

// Chain applies filters in order; a path must pass all of them
type Chain struct {
	filters []*Filter
	logger  *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalPassed    atomic.Uint64
}

// NewChain creates a filter chain from configurations
func NewChain(configs []config.FilterConfig, logger *log.Logger) (*Chain, error) {
	chain := &Chain{
		filters: make([]*Filter, 0, len(configs)),
		logger:  logger,
	}

	for i, cfg := range configs {
		f, err := New(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("filter[%d]: %w", i, err)
		}
		chain.filters = append(chain.filters, f)
	}

	return chain, nil
}

// Apply reports whether path passes every filter
func (c *Chain) Apply(path string) bool {
	c.totalProcessed.Add(1)

	for i, f := range c.filters {
		if !f.Apply(path) {
			c.logger.Debug("msg", "Input filtered out",
				"component", "filter_chain",
				"path", path,
				"filter_index", i,
				"filter", f.Describe())
			return false
		}
	}

	c.totalPassed.Add(1)
	return true
}

// Select returns the paths that pass, in input order
func (c *Chain) Select(paths []string) (kept, dropped []string) {
	for _, p := range paths {
		if c.Apply(p) {
			kept = append(kept, p)
		} else {
			dropped = append(dropped, p)
		}
	}
	return kept, dropped
}

// Len returns the number of filters
func (c *Chain) Len() int {
	return len(c.filters)
}

// GetStats returns aggregated statistics for the entire chain
func (c *Chain) GetStats() map[string]any {
	filterStats := make([]map[string]any, len(c.filters))
	for i, f := range c.filters {
		filterStats[i] = f.GetStats()
	}

	return map[string]any{
		"filter_count":    len(c.filters),
		"total_processed": c.totalProcessed.Load(),
		"total_passed":    c.totalPassed.Load(),
		"filters":         filterStats,
	}
}
