// FILE: hydrolog/src/internal/record/timestamp.go
package record

import (
	"regexp"
	"strings"
	"time"

	"hydrolog/src/internal/core"
)

type layout struct {
	value    string
	zoned    bool
	timeOnly bool
}

// Layout groups in match order: ISO 8601, instrument time of day,
// US month/day/year, European day/month/year.
var (
	isoLayouts = []layout{
		{value: time.RFC3339, zoned: true},
		{value: "2006-01-02 15:04:05Z07:00", zoned: true},
		{value: "2006-01-02T15:04:05"},
		{value: "2006-01-02 15:04:05"},
		{value: "2006-01-02T15:04"},
		{value: "2006-01-02 15:04"},
		{value: "20060102_150405"},
		{value: "20060102T150405"},
		{value: "2006-01-02"},
	}

	clockLayouts = []layout{
		{value: "15:04:05", timeOnly: true},
	}

	usLayouts = []layout{
		{value: "1/2/2006 15:04:05"},
		{value: "1/2/2006 15:04"},
		{value: "1/2/2006 3:04:05 PM"},
		{value: "1/2/2006 3:04 PM"},
		{value: "1/2/2006"},
	}

	euLayouts = []layout{
		{value: "2/1/2006 15:04:05"},
		{value: "2/1/2006 15:04"},
		{value: "2/1/2006"},
		{value: "2.1.2006 15:04:05"},
		{value: "2.1.2006 15:04"},
		{value: "2.1.2006"},
	}

	allLayouts = concat(isoLayouts, clockLayouts, usLayouts, euLayouts)
)

var fractionPattern = regexp.MustCompile(`\d{2}:\d{2}:\d{2}[.,](\d{1,9})`)

func concat(groups ...[]layout) []layout {
	var out []layout
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// ParseTimestamp matches text against the ordered layout list. Time-of-day
// values are returned on the zero date; callers anchor them.
func ParseTimestamp(text string) core.Timestamp {
	text = strings.TrimSpace(text)
	ts := core.Timestamp{Raw: text, Width: 1}
	if text == "" {
		return ts
	}

	for _, l := range allLayouts {
		t, err := time.Parse(l.value, text)
		if err != nil {
			continue
		}
		ts.Time = t
		ts.Parsed = true
		ts.Zoned = l.zoned
		ts.Layout = withFraction(l.value, text)
		if l.timeOnly {
			ts.Layout = "clock:" + ts.Layout
		}
		return ts
	}
	return ts
}

// IsClock reports whether ts was a bare time of day
func IsClock(ts core.Timestamp) bool {
	return strings.HasPrefix(ts.Layout, "clock:")
}

// FormatLayout returns the Go layout ts was parsed with
func FormatLayout(ts core.Timestamp) string {
	return strings.TrimPrefix(ts.Layout, "clock:")
}

// withFraction extends a layout with the fractional-second width seen in text
// so rewritten timestamps keep their precision.
func withFraction(layout, text string) string {
	m := fractionPattern.FindStringSubmatch(text)
	if m == nil || !strings.Contains(layout, "05") {
		return layout
	}
	sep := text[strings.Index(text, m[0])+8 : strings.Index(text, m[0])+9]
	return strings.Replace(layout, "05", "05"+sep+strings.Repeat("0", len(m[1])), 1)
}
