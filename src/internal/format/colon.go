// FILE: hydrolog/src/internal/format/colon.go
package format

import (
	"bytes"

	"hydrolog/src/internal/core"
	"hydrolog/src/internal/header"

	"github.com/lixenwraith/log"
)

// Writes the comment layout: "# Label: value" lines under "# Section:" titles
type ColonFormatter struct {
	columnLine bool
	logger     *log.Logger
}

// Creates a new colon formatter
func NewColonFormatter(options map[string]any, logger *log.Logger) *ColonFormatter {
	return &ColonFormatter{
		columnLine: boolOption(options, "column_line", true),
		logger:     logger,
	}
}

// Formats the header block
func (f *ColonFormatter) FormatHeader(h core.ParsedHeader) ([]byte, error) {
	var buf bytes.Buffer
	sections := arrange(h)

	for _, name := range header.Sections() {
		buf.WriteString("# " + name + ":\n")
		for _, e := range sections[name] {
			buf.WriteString("# " + e.label + ": " + e.value + "\n")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("# " + header.SectionData + ":\n")
	if f.columnLine && h.ColumnLine != "" {
		buf.WriteString("# " + h.ColumnLine + "\n")
	}

	return buf.Bytes(), nil
}

// Returns the formatter name
func (f *ColonFormatter) Name() string {
	return "colon"
}
