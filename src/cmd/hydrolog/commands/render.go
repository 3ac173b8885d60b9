// FILE: hydrolog/src/cmd/hydrolog/commands/render.go
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"hydrolog/src/internal/export"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

// renderReport prints an export report for the operator
func renderReport(w io.Writer, rep *export.Report) {
	if rep.Succeeded() {
		fmt.Fprintln(w, styleOK.Render(rep.Summary()))
	} else {
		fmt.Fprintln(w, styleError.Render(rep.Summary()))
	}

	for _, out := range rep.Outputs {
		fmt.Fprintf(w, "  %s %s\n", styleKey.Render(out.Path),
			styleDim.Render(fmt.Sprintf("(%d %s from %d %s, %d bytes)",
				out.Records, pluralize(out.Records, "record"),
				len(out.Sources), pluralize(len(out.Sources), "file"),
				out.Bytes)))
	}

	if len(rep.Warnings) > 0 {
		fmt.Fprintln(w, styleTitle.Render("Warnings:"))
		for _, issue := range rep.Warnings {
			fmt.Fprintf(w, "  %s\n", styleWarn.Render(issue.String()))
		}
	}
	if len(rep.Errors) > 0 {
		fmt.Fprintln(w, styleTitle.Render("Errors:"))
		for _, issue := range rep.Errors {
			fmt.Fprintf(w, "  %s\n", styleError.Render(issue.String()))
		}
	}
}

type jsonIssue struct {
	Kind    string `json:"kind"`
	File    string `json:"file,omitempty"`
	Key     string `json:"key,omitempty"`
	Line    int    `json:"line,omitempty"`
	Count   int    `json:"count,omitempty"`
	Message string `json:"message"`
}

type jsonOutput struct {
	Path    string   `json:"path"`
	Sources []string `json:"sources"`
	Records int      `json:"records"`
	Bytes   int64    `json:"bytes"`
	Digest  string   `json:"digest"`
	DST     bool     `json:"dst"`
}

type jsonReport struct {
	RunID              string       `json:"run_id"`
	Mode               string       `json:"mode"`
	State              string       `json:"state"`
	History            []string     `json:"history"`
	StartedAt          time.Time    `json:"started_at"`
	DurationMs         int64        `json:"duration_ms"`
	FilesTotal         int          `json:"files_total"`
	FilesRead          int          `json:"files_read"`
	FilesSkipped       int          `json:"files_skipped"`
	RecordsWritten     int          `json:"records_written"`
	UnparsedTimestamps int          `json:"unparsed_timestamps"`
	HeaderAnomalies    int          `json:"header_anomalies"`
	Outputs            []jsonOutput `json:"outputs"`
	Warnings           []jsonIssue  `json:"warnings"`
	Errors             []jsonIssue  `json:"errors"`
	Error              string       `json:"error,omitempty"`
}

// renderJSON prints the report as one indented JSON document
func renderJSON(w io.Writer, rep *export.Report) error {
	view := jsonReport{
		RunID:              rep.RunID,
		Mode:               string(rep.Mode),
		State:              rep.State.String(),
		StartedAt:          rep.StartedAt,
		DurationMs:         rep.Duration().Milliseconds(),
		FilesTotal:         rep.FilesTotal,
		FilesRead:          rep.FilesRead,
		FilesSkipped:       rep.FilesSkipped,
		RecordsWritten:     rep.RecordsWritten,
		UnparsedTimestamps: rep.UnparsedTimestamps,
		HeaderAnomalies:    rep.HeaderAnomalies,
		Outputs:            []jsonOutput{},
		Warnings:           issuesJSON(rep.Warnings),
		Errors:             issuesJSON(rep.Errors),
	}
	for _, s := range rep.History {
		view.History = append(view.History, s.String())
	}
	for _, o := range rep.Outputs {
		view.Outputs = append(view.Outputs, jsonOutput(o))
	}
	if rep.Err != nil {
		view.Error = rep.Err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func issuesJSON(issues []export.Issue) []jsonIssue {
	out := make([]jsonIssue, 0, len(issues))
	for _, i := range issues {
		out = append(out, jsonIssue{
			Kind:    string(i.Kind),
			File:    i.File,
			Key:     i.Key,
			Line:    i.Line,
			Count:   i.Count,
			Message: i.Message,
		})
	}
	return out
}

// renderSection prints a bold title followed by aligned key/value rows
func renderSection(w io.Writer, title string, rows [][2]string) {
	fmt.Fprintln(w, styleTitle.Render(title))
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len(r[0]))
		fmt.Fprintf(w, "  %s%s  %s\n", styleKey.Render(r[0]), pad, r[1])
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
