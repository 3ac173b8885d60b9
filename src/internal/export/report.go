// FILE: hydrolog/src/internal/export/report.go
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IssueKind classifies report entries
type IssueKind string

const (
	KindFileAccess       IssueKind = "FileAccessError"
	KindHeaderAnomaly    IssueKind = "HeaderParseAnomaly"
	KindDataAnomaly      IssueKind = "DataParseAnomaly"
	KindOverrideRejected IssueKind = "OverrideRejected"
	KindExportWrite      IssueKind = "ExportWriteError"
	KindHeaderValidation IssueKind = "HeaderValidation"
	KindTimezone         IssueKind = "Timezone"
	KindDuplicateInput   IssueKind = "DuplicateInput"
	KindInvalidOptions   IssueKind = "InvalidOptions"
	KindInternal         IssueKind = "InternalError"
)

// Issue is one warning or error recorded during an export
type Issue struct {
	Kind    IssueKind
	File    string
	Key     string
	Line    int
	Count   int
	Message string
}

func (i Issue) String() string {
	var b strings.Builder
	b.WriteString(string(i.Kind))
	if i.File != "" {
		b.WriteString(" " + i.File)
		if i.Line > 0 {
			fmt.Fprintf(&b, ":%d", i.Line)
		}
	}
	if i.Key != "" {
		b.WriteString(" [" + i.Key + "]")
	}
	b.WriteString(": " + i.Message)
	return b.String()
}

// OutputFile describes one written output
type OutputFile struct {
	Path    string
	Sources []string
	Records int
	Bytes   int64
	Digest  string
	// DST is set when converted timestamps fall in daylight saving time
	DST bool
}

// Report is the structured result of one export call. It is returned for
// every call, including failed ones.
type Report struct {
	RunID      string
	Mode       Mode
	State      State
	History    []State
	StartedAt  time.Time
	FinishedAt time.Time

	FilesTotal   int
	FilesRead    int
	FilesSkipped int

	RecordsWritten     int
	UnparsedTimestamps int
	HeaderAnomalies    int

	Outputs  []OutputFile
	Warnings []Issue
	Errors   []Issue

	// Err is the call-level failure, nil on success
	Err error
}

func newReport(mode Mode, total int) *Report {
	return &Report{
		RunID:      uuid.NewString(),
		Mode:       mode,
		State:      StateCollecting,
		StartedAt:  time.Now(),
		FilesTotal: total,
	}
}

func (r *Report) warn(i Issue) {
	r.Warnings = append(r.Warnings, i)
}

func (r *Report) fail(i Issue) {
	r.Errors = append(r.Errors, i)
}

// Succeeded reports whether the export completed
func (r *Report) Succeeded() bool {
	return r.State == StateDone
}

// WarningsOf returns warnings of one kind
func (r *Report) WarningsOf(kind IssueKind) []Issue {
	var out []Issue
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// ErrorsOf returns errors of one kind
func (r *Report) ErrorsOf(kind IssueKind) []Issue {
	var out []Issue
	for _, e := range r.Errors {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Duration returns the wall time of the export
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary returns a one-line outcome for the operator
func (r *Report) Summary() string {
	if r.Succeeded() {
		s := fmt.Sprintf("export succeeded with %d %s: %d %s, %d %s written",
			len(r.Warnings), plural(len(r.Warnings), "warning"),
			r.FilesRead, plural(r.FilesRead, "file"),
			r.RecordsWritten, plural(r.RecordsWritten, "record"))
		if r.FilesSkipped > 0 {
			s += fmt.Sprintf(", %d skipped", r.FilesSkipped)
		}
		return s
	}

	reason := "unknown error"
	if r.Err != nil {
		reason = r.Err.Error()
	}
	return fmt.Sprintf("export failed: %s (%d %s, %d skipped)",
		reason, len(r.Errors), plural(len(r.Errors), "error"), r.FilesSkipped)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
