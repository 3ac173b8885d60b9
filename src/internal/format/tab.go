// FILE: hydrolog/src/internal/format/tab.go
package format

import (
	"bytes"

	"hydrolog/src/internal/core"
	"hydrolog/src/internal/header"

	"github.com/lixenwraith/log"
)

// Writes the instrument export layout: section titles, Label<TAB>value
// lines and a blank line after each section.
type TabFormatter struct {
	columnLine bool
	logger     *log.Logger
}

// Creates a new tab formatter
func NewTabFormatter(options map[string]any, logger *log.Logger) *TabFormatter {
	return &TabFormatter{
		columnLine: boolOption(options, "column_line", true),
		logger:     logger,
	}
}

// Formats the header block
func (f *TabFormatter) FormatHeader(h core.ParsedHeader) ([]byte, error) {
	var buf bytes.Buffer
	sections := arrange(h)

	for _, name := range header.Sections() {
		buf.WriteString(name + ":\n")
		for _, e := range sections[name] {
			buf.WriteString(e.label + "\t" + e.value + "\n")
		}
		buf.WriteString("\n")
	}

	buf.WriteString(header.SectionData + ":\n")
	if f.columnLine && h.ColumnLine != "" {
		buf.WriteString(h.ColumnLine + "\n")
	}

	return buf.Bytes(), nil
}

// Returns the formatter name
func (f *TabFormatter) Name() string {
	return "tab"
}
