// FILE: hydrolog/src/cmd/hydrolog/commands/inspect.go
package commands

import (
	"flag"
	"fmt"
	"io"
	"time"

	"hydrolog/src/internal/core"
	"hydrolog/src/internal/header"
	"hydrolog/src/internal/record"
	"hydrolog/src/internal/source"
	"hydrolog/src/internal/tz"
)

// InspectCommand shows how files are parsed without exporting them
type InspectCommand struct {
	boot   Bootstrapper
	output io.Writer
}

// NewInspectCommand creates the inspect command
func NewInspectCommand(boot Bootstrapper, output io.Writer) *InspectCommand {
	return &InspectCommand{boot: boot, output: output}
}

// Inspection summarizes one parsed input file
type Inspection struct {
	Path         string
	Encoding     string
	Size         int64
	Header       core.ParsedHeader
	Records      int
	Unparsed     int
	First        time.Time
	Last         time.Time
	FilenameDate time.Time
	HasFileDate  bool
	ZoneValid    bool
	LoadWarnings []string
	Validation   []error
}

func (c *InspectCommand) Execute(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)

	var global globalFlags
	global.bind(fs)

	inputs, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no input files given", ErrUsage)
	}

	rt, err := c.boot(global.boot())
	if err != nil {
		return err
	}

	files, err := source.Expand(inputs)
	if err != nil {
		return err
	}

	failed := 0
	for i, path := range files {
		if i > 0 {
			fmt.Fprintln(c.output)
		}
		in, err := Inspect(rt, path)
		if err != nil {
			failed++
			fmt.Fprintln(c.output, styleError.Render(err.Error()))
			continue
		}
		renderInspection(c.output, in)
	}

	if failed == len(files) {
		return fmt.Errorf("no readable input files")
	}
	return nil
}

// Inspect loads and parses one file the way an export would
func Inspect(rt *Runtime, path string) (*Inspection, error) {
	file, warnings, err := rt.Loader.Load(path)
	if err != nil {
		return nil, err
	}

	h, region := header.ParseFile(file.Lines)
	in := &Inspection{
		Path:         path,
		Encoding:     file.Encoding,
		Size:         file.Size,
		Header:       h,
		LoadWarnings: warnings,
		Validation:   header.Validate(h),
	}

	in.FilenameDate, in.HasFileDate = header.DateFromFilename(path)
	date, hasDate := header.ParseDate(h.Value(core.KeyStartDate.String()))
	if !hasDate {
		date, hasDate = in.FilenameDate, in.HasFileDate
	}

	zone := tz.Canonical(h.Value(core.KeyTimezone.String()))
	in.ZoneValid = rt.Converter.Valid(zone)

	stream := record.NewStream(region.Data, record.Options{
		Date:      date,
		HasDate:   hasDate,
		FirstLine: region.DataStart,
	})
	for rec := range stream.All() {
		in.Records++
		ts := rec.Timestamp
		if !ts.Parsed {
			in.Unparsed++
			continue
		}
		if in.First.IsZero() || ts.Time.Before(in.First) {
			in.First = ts.Time
		}
		if ts.Time.After(in.Last) {
			in.Last = ts.Time
		}
	}

	return in, nil
}

func renderInspection(w io.Writer, in *Inspection) {
	renderSection(w, in.Path, [][2]string{
		{"Encoding", in.Encoding},
		{"Size", fmt.Sprintf("%d bytes", in.Size)},
		{"Header anomalies", fmt.Sprintf("%d", in.Header.Anomalies)},
	})

	for _, section := range header.Sections() {
		var rows [][2]string
		for _, f := range in.Header.Fields {
			if header.SectionFor(f.Key, f.Section) != section {
				continue
			}
			marker := styleDim.Render("protected")
			if f.Class == core.Editable {
				marker = styleOK.Render("editable")
			}
			rows = append(rows, [2]string{f.Label, fmt.Sprintf("%s  %s", f.Value, marker)})
		}
		if len(rows) > 0 {
			renderSection(w, section, rows)
		}
	}

	zone := tz.Canonical(in.Header.Value(core.KeyTimezone.String()))
	zoneText := zone
	if !in.ZoneValid {
		zoneText = styleWarn.Render(zone + " (unknown, read as UTC)")
	}

	data := [][2]string{
		{"Columns", in.Header.ColumnLine},
		{"Records", fmt.Sprintf("%d", in.Records)},
		{"Time zone", zoneText},
	}
	if in.Unparsed > 0 {
		data = append(data, [2]string{"Unparsed", styleWarn.Render(fmt.Sprintf("%d", in.Unparsed))})
	}
	if !in.First.IsZero() {
		data = append(data,
			[2]string{"First", in.First.Format(time.RFC3339)},
			[2]string{"Last", in.Last.Format(time.RFC3339)})
	}
	if in.HasFileDate {
		data = append(data, [2]string{"Filename date", in.FilenameDate.Format(header.DateLayout)})
	}
	renderSection(w, header.SectionData, data)

	for _, warn := range in.LoadWarnings {
		fmt.Fprintf(w, "  %s\n", styleWarn.Render(warn))
	}
	for _, verr := range in.Validation {
		fmt.Fprintf(w, "  %s\n", styleWarn.Render(verr.Error()))
	}
}

func (c *InspectCommand) Description() string {
	return "Show how files are parsed"
}

func (c *InspectCommand) Help() string {
	return `Inspect Command - Show how sensor log files are parsed

Usage:
  hydrolog inspect [options] <file|glob>...

Prints, per file: detected encoding, header fields by section with their
editable/protected class, the data column line, record count, unparsed
timestamps, time span and the date found in the file name.

Options:
  -c, --config <path>   Config file
  --log-level <level>   debug, info, warn, error
`
}
