// FILE: hydrolog/src/internal/record/stream.go
package record

import (
	"iter"
	"regexp"
	"strings"
	"time"

	"hydrolog/src/internal/core"
)

// Backward jump in time of day treated as crossing midnight
const rolloverThreshold = 12 * time.Hour

// Options carries per-file context for timestamp parsing
type Options struct {
	// Date anchors time-of-day stamps when HasDate is set
	Date    time.Time
	HasDate bool
	// FirstLine is the zero-based file index of the first line given
	FirstLine int
}

// Stream lazily parses the data body of one file
type Stream struct {
	lines []string
	opts  Options
}

// NewStream creates a data stream over lines
func NewStream(lines []string, opts Options) *Stream {
	return &Stream{lines: lines, opts: opts}
}

// All yields records in file order. Each call starts again from the first
// line; blank lines are skipped and no row is ever dropped.
func (s *Stream) All() iter.Seq[core.DataRecord] {
	return func(yield func(core.DataRecord) bool) {
		anchor := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
		if s.opts.HasDate {
			y, m, d := s.opts.Date.Date()
			anchor = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}

		var prevClock time.Duration
		seenClock := false
		days := 0

		for i, line := range s.lines {
			if strings.TrimSpace(line) == "" {
				continue
			}

			cols := SplitColumns(line)
			ts := parseLeading(cols)

			if ts.Parsed && IsClock(ts) {
				clock := sinceMidnight(ts.Time)
				if seenClock && clock < prevClock-rolloverThreshold {
					days++
				}
				prevClock, seenClock = clock, true
				ts.Time = anchor.AddDate(0, 0, days).Add(clock)
			}

			rec := core.DataRecord{
				Timestamp: ts,
				Columns:   cols,
				Line:      line,
				LineNo:    s.opts.FirstLine + i + 1,
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Collect drains the stream into a slice
func (s *Stream) Collect() []core.DataRecord {
	var out []core.DataRecord
	for rec := range s.All() {
		out = append(out, rec)
	}
	return out
}

// SplitColumns splits a row on tabs, else on runs of spaces, else on
// commas, else on any whitespace. Commas left inside a cell are a further
// delimiter unless the cell is a decimal-comma number.
func SplitColumns(line string) []string {
	var cells []string
	switch {
	case strings.ContainsRune(line, '\t'):
		for _, c := range strings.Split(line, "\t") {
			cells = append(cells, splitCommas(strings.TrimSpace(c))...)
		}
		return cells
	case strings.Contains(line, "  "), !strings.ContainsRune(line, ','):
		for _, c := range strings.Fields(line) {
			cells = append(cells, splitCommas(c)...)
		}
		return cells
	default:
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
}

var decimalComma = regexp.MustCompile(`^[-+]?\d+,\d+$`)

func splitCommas(cell string) []string {
	if !strings.ContainsRune(cell, ',') || decimalComma.MatchString(cell) {
		return []string{cell}
	}
	parts := strings.Split(cell, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	// A comma next to another delimiter does not open an empty column
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for len(parts) > 1 && parts[0] == "" {
		parts = parts[1:]
	}
	return parts
}

// parseLeading tries the first three columns as date, time and meridiem,
// then the first two as a date and time pair, then the first column alone.
func parseLeading(cols []string) core.Timestamp {
	if len(cols) == 0 {
		return core.Timestamp{}
	}
	first := strings.TrimSpace(cols[0])

	if len(cols) > 1 {
		second := strings.TrimSpace(cols[1])
		if first != "" && looksLikeClock(second) {
			if len(cols) > 2 {
				if meridiem := strings.ToUpper(strings.TrimSpace(cols[2])); meridiem == "AM" || meridiem == "PM" {
					ts := ParseTimestamp(first + " " + second + " " + meridiem)
					if ts.Parsed {
						ts.Width = 3
						return ts
					}
				}
			}
			ts := ParseTimestamp(first + " " + second)
			if ts.Parsed {
				ts.Width = 2
				return ts
			}
		}
	}

	return ParseTimestamp(first)
}

func looksLikeClock(s string) bool {
	return len(s) >= 4 && s[0] >= '0' && s[0] <= '9' && strings.ContainsRune(s, ':')
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
