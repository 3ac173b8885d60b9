// FILE: hydrolog/src/internal/header/override.go
package header

import (
	"sort"
	"sync/atomic"

	"hydrolog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Override maps field keys (raw or normalized) to replacement values.
// It is owned by the caller and never modified.
type Override map[string]string

// Rejection records an override aimed at a protected field
type Rejection struct {
	Key     string
	Value   string
	Current string
}

// OverrideEngine applies operator edits to parsed headers
type OverrideEngine struct {
	logger *log.Logger

	// Statistics
	totalApplied  atomic.Uint64
	totalAdded    atomic.Uint64
	totalRejected atomic.Uint64
}

// NewOverrideEngine creates an override engine
func NewOverrideEngine(logger *log.Logger) *OverrideEngine {
	return &OverrideEngine{logger: logger}
}

// Apply returns a copy of h with editable overrides replaced or added.
// Overrides on protected keys are rejected, logged and returned.
func (e *OverrideEngine) Apply(h core.ParsedHeader, o Override) (core.ParsedHeader, []Rejection) {
	out := Classify(h)
	if len(o) == 0 {
		return out, nil
	}

	// Normalize keys, sorted so colliding spellings resolve deterministically
	raw := make([]string, 0, len(o))
	for k := range o {
		raw = append(raw, k)
	}
	sort.Strings(raw)

	edits := make(map[string]string, len(o))
	var protectedKeys []string
	for _, k := range raw {
		key, _ := CanonicalKey(k)
		if key == "" {
			key = NormalizeKey(k)
		}
		if key == "" {
			continue
		}
		if _, seen := edits[key]; !seen && ClassOf(key) == core.Protected {
			protectedKeys = append(protectedKeys, key)
		}
		edits[key] = o[k]
	}

	for _, ek := range core.EditableKeys() {
		key := ek.String()
		value, ok := edits[key]
		if !ok {
			continue
		}
		if out.Has(key) {
			e.totalApplied.Add(1)
		} else {
			e.totalAdded.Add(1)
		}
		out = out.With(core.Field{
			Key:     key,
			Label:   LabelFor(key, key),
			Value:   value,
			Section: SectionFile,
			Class:   core.Editable,
		})
	}

	var rejections []Rejection
	for _, key := range protectedKeys {
		r := Rejection{Key: key, Value: edits[key], Current: out.Value(key)}
		rejections = append(rejections, r)
		e.totalRejected.Add(1)
		e.logger.Warn("msg", "Override rejected for protected field",
			"component", "override_engine",
			"key", key,
			"value", r.Value)
	}

	return out, rejections
}

// ApplyAll applies the same override independently to every header
func (e *OverrideEngine) ApplyAll(headers []core.ParsedHeader, o Override) ([]core.ParsedHeader, []Rejection) {
	out := make([]core.ParsedHeader, len(headers))
	var rejections []Rejection
	for i, h := range headers {
		var rej []Rejection
		out[i], rej = e.Apply(h, o)
		rejections = append(rejections, rej...)
	}
	return out, rejections
}

// Merge layers overrides left to right; later maps win per key
func Merge(layers ...Override) Override {
	out := make(Override)
	for _, layer := range layers {
		for k, v := range layer {
			key, _ := CanonicalKey(k)
			if key == "" {
				key = NormalizeKey(k)
			}
			out[key] = v
		}
	}
	return out
}

// GetStats returns override statistics
func (e *OverrideEngine) GetStats() map[string]any {
	return map[string]any{
		"total_applied":  e.totalApplied.Load(),
		"total_added":    e.totalAdded.Load(),
		"total_rejected": e.totalRejected.Load(),
	}
}
