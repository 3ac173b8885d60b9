// FILE: hydrolog/src/internal/core/record.go
package core

import "time"

// Timestamp is the parsed first column of a data row. When Parsed is false
// Time is zero and Raw carries the original text.
type Timestamp struct {
	Time   time.Time
	Raw    string
	Parsed bool
	Zoned  bool   // text carried its own offset
	Layout string // layout that matched, reused when rewriting the column
	Width  int    // number of columns consumed by the timestamp
}

// Before orders parsed timestamps ahead of unparsed ones
func (t Timestamp) Before(o Timestamp) bool {
	switch {
	case t.Parsed && o.Parsed:
		return t.Time.Before(o.Time)
	case t.Parsed:
		return true
	default:
		return false
	}
}

// DataRecord is one row of the data body
type DataRecord struct {
	Timestamp Timestamp
	Columns   []string
	Line      string
	LineNo    int
}

// SourceFile is a decoded input file held for the duration of one export
type SourceFile struct {
	Path     string
	Lines    []string
	Encoding string
	Size     int64
	ModTime  time.Time
}
