// FILE: hydrolog/src/internal/header/clean.go
package header

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the normalized start_date layout
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"20060102",
	"02-01-2006",
	"01-02-2006",
	"02.01.2006",
}

var embeddedISODate = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// CleanDate normalizes a date string to YYYY-MM-DD. Ambiguous numeric dates
// resolve month-first.
func CleanDate(s string) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(DateLayout), true
}

// ParseDate parses a header date value in any supported layout, UTC midnight
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), true
		}
	}
	if m := embeddedISODate.FindString(s); m != "" {
		if t, err := time.Parse(DateLayout, m); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var filenameDatePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`(?:^|[^0-9])(\d{8})(?:[^0-9]|$)`), "20060102"},
	{regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), "2006-01-02"},
	{regexp.MustCompile(`(\d{4}_\d{2}_\d{2})`), "2006_01_02"},
	{regexp.MustCompile(`(\d{2}-\d{2}-\d{4})`), "01-02-2006"},
}

// DateFromFilename extracts a recording date embedded in a file name
func DateFromFilename(path string) (time.Time, bool) {
	name := filepath.Base(path)
	for _, p := range filenameDatePatterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if t, err := time.Parse(p.layout, m[1]); err == nil {
			return t, true
		}
		// Day-first fallback for dd-mm-yyyy names
		if p.layout == "01-02-2006" {
			if t, err := time.Parse("02-01-2006", m[1]); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
