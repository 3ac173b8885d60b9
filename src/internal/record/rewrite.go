// FILE: hydrolog/src/internal/record/rewrite.go
package record

import (
	"strings"
	"time"

	"hydrolog/src/internal/core"
)

// Rewrite replaces the timestamp text at the start of rec.Line with t
// formatted in the layout the timestamp was read with. Everything after the
// timestamp is kept byte for byte. Unparsed records are returned unchanged.
func Rewrite(rec core.DataRecord, t time.Time) string {
	ts := rec.Timestamp
	if !ts.Parsed || len(rec.Columns) < ts.Width {
		return rec.Line
	}

	start, end, seps, ok := locate(rec)
	if !ok {
		return rec.Line
	}

	text := t.Format(FormatLayout(ts))
	// Restore the original separators between the timestamp columns
	var b strings.Builder
	rest := text
	for _, sep := range seps {
		i := strings.IndexByte(rest, ' ')
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(sep)
		rest = rest[i+1:]
	}
	b.WriteString(rest)
	text = b.String()

	return rec.Line[:start] + text + rec.Line[end:]
}

// locate finds the byte span of the timestamp columns in the line and the
// separators between them for multi-column stamps.
func locate(rec core.DataRecord) (start, end int, seps []string, ok bool) {
	line := rec.Line
	first := strings.TrimSpace(rec.Columns[0])

	start = strings.Index(line, first)
	if start < 0 || first == "" {
		return 0, 0, nil, false
	}
	end = start + len(first)

	for _, col := range rec.Columns[1:rec.Timestamp.Width] {
		next := strings.TrimSpace(col)
		off := strings.Index(line[end:], next)
		if off < 0 {
			return 0, 0, nil, false
		}
		seps = append(seps, line[end:end+off])
		end = end + off + len(next)
	}
	return start, end, seps, true
}
