// FILE: hydrolog/src/internal/format/format.go
package format

import (
	"fmt"

	"hydrolog/src/internal/core"
	"hydrolog/src/internal/header"

	"github.com/lixenwraith/log"
)

// Formatter renders a parsed header as the text block written ahead of
// the data rows.
type Formatter interface {
	// FormatHeader returns the header block, ending with a newline
	FormatHeader(h core.ParsedHeader) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a Formatter for an output format name
func New(name string, options map[string]any, logger *log.Logger) (Formatter, error) {
	// Default to the instrument tab layout
	if name == "" {
		name = "tab"
	}

	switch name {
	case "tab":
		return NewTabFormatter(options, logger), nil
	case "colon":
		return NewColonFormatter(options, logger), nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}

type entry struct {
	label string
	value string
}

// arrange groups fields into the canonical sections. Known fields follow
// the canonical order; unrecognized fields follow in header order.
func arrange(h core.ParsedHeader) map[string][]entry {
	out := make(map[string][]entry)

	for _, def := range header.Definitions() {
		if f, ok := h.Get(def.Key); ok {
			out[def.Section] = append(out[def.Section], entry{label: def.Label, value: f.Value})
		}
	}

	for _, f := range h.Fields {
		if _, known := header.Lookup(f.Key); known {
			continue
		}
		section := header.SectionFor(f.Key, f.Section)
		out[section] = append(out[section], entry{label: header.LabelFor(f.Key, f.Label), value: f.Value})
	}

	return out
}

func boolOption(options map[string]any, key string, def bool) bool {
	if v, ok := options[key].(bool); ok {
		return v
	}
	return def
}
