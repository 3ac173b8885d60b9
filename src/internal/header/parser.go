// FILE: hydrolog/src/internal/header/parser.go
package header

import (
	"strings"

	"hydrolog/src/internal/core"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineSection
	lineField
	lineNone
)

type parsedLine struct {
	kind  lineKind
	key   string
	label string
	value string
}

// Region is a file split into its header and data bodies
type Region struct {
	Header     []string
	Data       []string
	DataStart  int // index of Data[0] in the file
	ColumnLine string
}

var timeColumns = map[string]bool{
	"time":      true,
	"timestamp": true,
	"date":      true,
	"datetime":  true,
	"date/time": true,
}

// Parse turns header lines into an ordered, classified field set. Lines that
// match no delimiter rule are counted as anomalies and skipped.
func Parse(lines []string) core.ParsedHeader {
	h := core.ParsedHeader{}
	section := ""

	for _, raw := range lines {
		if isColumnLine(raw) {
			if h.ColumnLine == "" {
				h.ColumnLine = cleanColumnLine(raw)
			}
			continue
		}

		pl := classifyLine(raw)
		switch pl.kind {
		case lineSection:
			section = pl.label
			h.Sections = append(h.Sections, pl.label)
		case lineField:
			h = store(h, core.Field{
				Key:     pl.key,
				Label:   pl.label,
				Value:   pl.value,
				Section: section,
				Class:   ClassOf(pl.key),
			})
		case lineNone:
			h.Anomalies++
		}
	}

	return h
}

// ParseFile splits a whole file and parses its header region
func ParseFile(lines []string) (core.ParsedHeader, Region) {
	region := Split(lines)
	h := Parse(region.Header)
	if region.ColumnLine != "" {
		h.ColumnLine = region.ColumnLine
	}
	return h, region
}

// Split finds where the header region ends. The header ends at a Data
// marker, at the first row starting with a digit, or at the first
// non-comment line that is neither metadata nor a section title.
func Split(lines []string) Region {
	end, dataStart := len(lines), len(lines)

	for i, raw := range lines {
		t := strings.TrimSpace(raw)
		switch {
		case t == "":
			continue
		case isDataMarker(t):
			end, dataStart = i+1, i+1
		case startsWithDigit(t):
			end, dataStart = i, i
		case strings.HasPrefix(t, "#"), isColumnLine(raw):
			continue
		case classifyLine(raw).kind == lineNone:
			end, dataStart = i, i
		default:
			continue
		}
		break
	}

	r := Region{Header: lines[:end]}

	// Column header line directly after the marker
	i := dataStart
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i < len(lines) && isDataColumnLine(lines[i]) {
		r.ColumnLine = cleanColumnLine(lines[i])
		dataStart = i + 1
	}

	r.Data = lines[dataStart:]
	r.DataStart = dataStart
	return r
}

func classifyLine(raw string) parsedLine {
	t := strings.TrimSpace(raw)
	if t == "" {
		return parsedLine{kind: lineBlank}
	}

	comment := strings.HasPrefix(t, "#")
	body := strings.TrimSpace(strings.TrimLeft(t, "#"))
	if body == "" {
		return parsedLine{kind: lineComment}
	}

	if title, ok := sectionTitle(body); ok {
		return parsedLine{kind: lineSection, label: title}
	}

	label, value, ok := splitKeyValue(body)
	if ok {
		label = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), ":"))
		if key, _ := CanonicalKey(label); key != "" {
			return parsedLine{
				kind:  lineField,
				key:   key,
				label: label,
				value: strings.TrimSpace(value),
			}
		}
	}

	if comment {
		return parsedLine{kind: lineComment}
	}
	return parsedLine{kind: lineNone}
}

// splitKeyValue applies the delimiter priority: tab, a run of two or more
// spaces, then colon. A space run only delimits when no colon precedes it,
// so "Client: Acme  Marine" keeps its value whole.
func splitKeyValue(body string) (string, string, bool) {
	if i := strings.IndexByte(body, '\t'); i >= 0 {
		return body[:i], body[i+1:], true
	}
	if i := strings.Index(body, "  "); i >= 0 && !strings.ContainsRune(body[:i], ':') {
		return body[:i], body[i:], true
	}
	if i := strings.IndexByte(body, ':'); i >= 0 {
		return body[:i], body[i+1:], true
	}
	return "", "", false
}

func sectionTitle(body string) (string, bool) {
	if !strings.HasSuffix(body, ":") || strings.ContainsRune(body, '\t') {
		return "", false
	}
	title := strings.TrimSpace(strings.TrimSuffix(body, ":"))
	if title == "" || strings.ContainsRune(title, ':') {
		return "", false
	}
	// "Start Date:" is an empty field, not a title
	if _, known := CanonicalKey(title); known {
		return "", false
	}
	return title, true
}

func store(h core.ParsedHeader, f core.Field) core.ParsedHeader {
	for i := range h.Fields {
		if h.Fields[i].Key == f.Key {
			h.Fields[i].Value = f.Value
			return h
		}
	}
	h.Fields = append(h.Fields, f)
	return h
}

func isDataMarker(t string) bool {
	return NormalizeKey(t) == "data"
}

func startsWithDigit(t string) bool {
	return t != "" && t[0] >= '0' && t[0] <= '9'
}

// isColumnLine recognizes a data column header inside the header region.
func isColumnLine(raw string) bool {
	body := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "#"))
	parts := strings.Split(body, "\t")
	if len(parts) < 3 || !timeColumns[strings.ToLower(strings.TrimSpace(parts[0]))] {
		return false
	}
	return true
}

// isDataColumnLine recognizes a column header at the head of the data region.
func isDataColumnLine(raw string) bool {
	body := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "#"))
	if body == "" {
		return false
	}
	if strings.Contains(strings.ToLower(body), "data points") {
		return true
	}
	return timeColumns[strings.ToLower(firstField(body))]
}

func firstField(body string) string {
	if i := strings.IndexByte(body, '\t'); i >= 0 {
		return strings.TrimSpace(body[:i])
	}
	if f := strings.Fields(body); len(f) > 1 {
		return f[0]
	}
	if i := strings.IndexByte(body, ','); i >= 0 {
		return strings.TrimSpace(body[:i])
	}
	return body
}

func cleanColumnLine(raw string) string {
	t := strings.TrimSpace(raw)
	if strings.HasPrefix(t, "#") {
		t = strings.TrimSpace(strings.TrimPrefix(t, "#"))
	}
	return t
}
