// FILE: hydrolog/src/internal/export/merger.go
package export

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"hydrolog/src/internal/core"
	"hydrolog/src/internal/format"
	"hydrolog/src/internal/header"
	"hydrolog/src/internal/record"
	"hydrolog/src/internal/sink"
	"hydrolog/src/internal/source"
	"hydrolog/src/internal/tz"

	"github.com/lixenwraith/log"
)

// Merger runs export calls. It holds no per-call state; concurrent calls
// share only the statistics counters.
type Merger struct {
	loader    *source.Loader
	engine    *header.OverrideEngine
	converter tz.Converter
	opener    sink.Opener
	logger    *log.Logger

	// Statistics
	totalExports atomic.Uint64
	totalFailed  atomic.Uint64
	totalRecords atomic.Uint64
	totalOutputs atomic.Uint64
}

// NewMerger creates an export merger
func NewMerger(loader *source.Loader, engine *header.OverrideEngine, converter tz.Converter, opener sink.Opener, logger *log.Logger) *Merger {
	return &Merger{
		loader:    loader,
		engine:    engine,
		converter: converter,
		opener:    opener,
		logger:    logger,
	}
}

// Export combines files according to opts. A report is returned for every
// call; the error is non-nil only when the requested output could not be
// produced.
func (m *Merger) Export(files []string, overrides Overrides, opts Options, progress ProgressSink) (*Report, error) {
	if progress == nil {
		progress = nopProgress{}
	}

	r := &run{
		m:         m,
		opts:      opts,
		overrides: overrides,
		progress:  progress,
		report:    newReport(opts.Mode, len(files)),
		state:     newMachine(),
		open:      m.opener,
	}
	if opts.DryRun {
		r.open = sink.NewMemoryStore().Opener()
	}

	m.logger.Info("msg", "Export started",
		"component", "export_merger",
		"run_id", r.report.RunID,
		"mode", string(opts.Mode),
		"files", len(files))

	err := r.execute(files)

	rep := r.report
	rep.State = r.state.current
	rep.History = r.state.history
	rep.FinishedAt = time.Now()
	rep.Err = err

	m.totalExports.Add(1)
	if err != nil {
		m.totalFailed.Add(1)
		m.logger.Error("msg", "Export failed",
			"component", "export_merger",
			"run_id", rep.RunID,
			"error", err)
	} else {
		m.logger.Info("msg", "Export completed",
			"component", "export_merger",
			"run_id", rep.RunID,
			"outputs", len(rep.Outputs),
			"records", rep.RecordsWritten,
			"warnings", len(rep.Warnings),
			"skipped", rep.FilesSkipped)
	}

	progress.Finished(rep)
	return rep, err
}

// GetStats returns merger statistics
func (m *Merger) GetStats() map[string]any {
	return map[string]any{
		"total_exports": m.totalExports.Load(),
		"total_failed":  m.totalFailed.Load(),
		"total_records": m.totalRecords.Load(),
		"total_outputs": m.totalOutputs.Load(),
	}
}

// run is the state of one export call
type run struct {
	m         *Merger
	opts      Options
	overrides Overrides
	progress  ProgressSink
	report    *Report
	state     *machine
	open      sink.Opener
	formatter format.Formatter
	sources   *sourceSet
	readable  []string
	total     int
}

// input is one readable file, parsed and overridden
type input struct {
	index  int
	path   string
	header core.ParsedHeader
	stream *record.Stream
	zone   string
}

// item is one data row on its way to an output
type item struct {
	line      string
	lineNo    int
	parsed    bool
	clock     bool
	at        time.Time // absolute instant
	local     time.Time // converted wall time when a target zone is set
	converted bool
	dst       bool
}

func (r *run) execute(files []string) error {
	if err := r.opts.Validate(); err != nil {
		return r.fail(Issue{Kind: KindInvalidOptions, Message: err.Error()}, err)
	}

	formatter, err := format.New(r.opts.OutputFormat, nil, r.m.logger)
	if err != nil {
		return r.fail(Issue{Kind: KindInvalidOptions, Message: err.Error()}, err)
	}
	r.formatter = formatter

	if target := r.opts.TimezoneTarget; target != "" {
		if _, _, err := r.m.converter.Convert(time.Now().UTC(), "UTC", target); err != nil {
			return r.fail(Issue{Kind: KindTimezone, Key: "timezone", Message: err.Error()}, err)
		}
	}

	paths := r.dedupe(files)
	r.sources = newSourceSet(paths)
	r.total = len(paths)
	r.report.FilesTotal = len(paths)

	if r.opts.Mode.Single() {
		dest := MergedPath(r.opts)
		if r.sources.contains(dest) {
			err := &sink.ExportWriteError{Path: dest, Op: "resolve", Err: ErrOverwriteSource}
			return r.fail(Issue{Kind: KindExportWrite, File: dest, Message: err.Error()}, err)
		}
	}

	switch r.opts.Mode {
	case ModeChronological:
		return r.chronological(paths)
	case ModeOrdered:
		return r.ordered(paths)
	default:
		return r.individual(paths)
	}
}

// chronological buffers every row, sorts on the absolute instant and
// writes one output. Unparsed rows sort after parsed ones in input order.
func (r *run) chronological(paths []string) error {
	var items []item
	var first *input

	for i, path := range paths {
		in, err := r.prepare(i, path)
		if err == nil {
			if first == nil {
				first = in
			}
			_ = r.collect(in, func(it item) error {
				items = append(items, it)
				return nil
			})
		}
		r.fileDone(i, path, err)
	}

	if err := r.advance(StateMerging); err != nil {
		return err
	}
	if first == nil {
		return r.fail(Issue{Kind: KindFileAccess, Message: ErrNoReadableFiles.Error()}, ErrNoReadableFiles)
	}

	slices.SortStableFunc(items, compareItems)

	if err := r.advance(StateWriting); err != nil {
		return err
	}

	var head *item
	if len(items) > 0 {
		head = &items[0]
	}
	out, err := r.openOutput(MergedPath(r.opts), r.outputHeader(first.header, head))
	if err != nil {
		return r.writeFailed(err)
	}
	out.sources = r.readable
	for _, it := range items {
		if err := out.write(it); err != nil {
			out.sink.Abort()
			return r.writeFailed(err)
		}
	}
	if err := r.commit(out); err != nil {
		return r.writeFailed(err)
	}

	return r.advance(StateDone)
}

// ordered streams file by file in input order. The output is opened with
// the header of the first readable file.
func (r *run) ordered(paths []string) error {
	if err := r.advance(StateMerging); err != nil {
		return err
	}
	if err := r.advance(StateWriting); err != nil {
		return err
	}

	var out *output
	for i, path := range paths {
		in, err := r.prepare(i, path)
		if err != nil {
			r.fileDone(i, path, err)
			continue
		}

		if out == nil {
			out, err = r.openOutput(MergedPath(r.opts), r.outputHeader(in.header, r.peek(in)))
			if err != nil {
				return r.writeFailed(err)
			}
		}
		out.sources = append(out.sources, path)
		if err := r.collect(in, out.write); err != nil {
			out.sink.Abort()
			return r.writeFailed(err)
		}
		r.fileDone(i, path, nil)
	}

	if out == nil {
		return r.fail(Issue{Kind: KindFileAccess, Message: ErrNoReadableFiles.Error()}, ErrNoReadableFiles)
	}
	if err := r.commit(out); err != nil {
		return r.writeFailed(err)
	}

	return r.advance(StateDone)
}

// individual writes one output per input with that file's own header
func (r *run) individual(paths []string) error {
	if err := r.advance(StateMerging); err != nil {
		return err
	}
	if err := r.advance(StateWriting); err != nil {
		return err
	}

	for i, path := range paths {
		in, err := r.prepare(i, path)
		if err != nil {
			r.fileDone(i, path, err)
			continue
		}

		if err := r.writeIndividual(i, path, in); err != nil {
			r.fileDone(i, path, err)
			return r.writeFailed(err)
		}
		r.fileDone(i, path, nil)
	}

	if r.report.FilesRead == 0 {
		return r.fail(Issue{Kind: KindFileAccess, Message: ErrNoReadableFiles.Error()}, ErrNoReadableFiles)
	}

	return r.advance(StateDone)
}

// writeIndividual writes the output of one prepared input
func (r *run) writeIndividual(index int, path string, in *input) error {
	dest := OutputPath(path, index, r.opts)
	if r.sources.contains(dest) {
		return &sink.ExportWriteError{Path: dest, Op: "resolve", Err: ErrOverwriteSource}
	}

	out, err := r.openOutput(dest, r.outputHeader(in.header, r.peek(in)))
	if err != nil {
		return err
	}
	out.sources = []string{path}
	if err := r.collect(in, out.write); err != nil {
		out.sink.Abort()
		return err
	}
	return r.commit(out)
}

// dedupe drops repeated inputs, keeping the first occurrence
func (r *run) dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		key := absPath(f)
		if seen[key] {
			r.report.warn(Issue{Kind: KindDuplicateInput, File: f, Message: "duplicate input skipped"})
			r.m.logger.Warn("msg", "Duplicate input skipped",
				"component", "export_merger",
				"path", f)
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

// prepare loads one file, parses its header and applies overrides
func (r *run) prepare(index int, path string) (*input, error) {
	file, warnings, err := r.m.loader.Load(path)
	if err != nil {
		r.report.FilesSkipped++
		r.report.fail(Issue{Kind: KindFileAccess, File: path, Message: err.Error()})
		r.m.logger.Warn("msg", "Input skipped",
			"component", "export_merger",
			"path", path,
			"error", err)
		return nil, err
	}
	r.report.FilesRead++
	r.readable = append(r.readable, path)
	for _, w := range warnings {
		r.report.warn(Issue{Kind: KindFileAccess, File: path, Message: w})
	}

	h, region := header.ParseFile(file.Lines)
	r.report.HeaderAnomalies += h.Anomalies

	h, rejected := r.m.engine.Apply(h, r.overrides.For(path))
	for _, rej := range rejected {
		r.report.warn(Issue{
			Kind:    KindOverrideRejected,
			File:    path,
			Key:     rej.Key,
			Message: fmt.Sprintf("protected field kept %q, override %q not applied", rej.Current, rej.Value),
		})
	}

	startKey := core.KeyStartDate.String()
	date, hasDate := header.ParseDate(h.Value(startKey))
	if !hasDate {
		date, hasDate = header.DateFromFilename(path)
		if hasDate && r.opts.FillStartDate && !h.Has(startKey) {
			h = h.With(core.Field{
				Key:     startKey,
				Label:   header.LabelFor(startKey, ""),
				Value:   date.Format(header.DateLayout),
				Section: header.SectionFile,
				Class:   core.Editable,
			})
		}
	}

	for _, verr := range header.Validate(h) {
		r.report.warn(Issue{Kind: KindHeaderValidation, File: path, Message: verr.Error()})
	}

	zone := tz.Canonical(h.Value(core.KeyTimezone.String()))

	return &input{
		index:  index,
		path:   path,
		header: h,
		zone:   zone,
		stream: record.NewStream(region.Data, record.Options{
			Date:      date,
			HasDate:   hasDate,
			FirstLine: region.DataStart,
		}),
	}, nil
}

// collect resolves every row of one input and passes it to emit
func (r *run) collect(in *input, emit func(item) error) error {
	unparsed, firstUnparsed := 0, 0
	var zoneErr error

	for rec := range in.stream.All() {
		it, err := r.resolve(rec, in.zone)
		if err != nil && zoneErr == nil {
			zoneErr = err
		}
		if !it.parsed {
			if unparsed == 0 {
				firstUnparsed = rec.LineNo
			}
			unparsed++
		}
		if err := emit(it); err != nil {
			return err
		}
	}

	if zoneErr != nil {
		r.report.warn(Issue{
			Kind:    KindTimezone,
			File:    in.path,
			Key:     core.KeyTimezone.String(),
			Message: fmt.Sprintf("%v; timestamps read as UTC", zoneErr),
		})
	}
	if unparsed > 0 {
		r.report.UnparsedTimestamps += unparsed
		r.report.warn(Issue{
			Kind:    KindDataAnomaly,
			File:    in.path,
			Line:    firstUnparsed,
			Count:   unparsed,
			Message: fmt.Sprintf("%d %s with unparsed timestamps kept verbatim", unparsed, plural(unparsed, "row")),
		})
	}
	return nil
}

// resolve computes the absolute instant of a row and, with a target zone,
// rewrites its timestamp column.
func (r *run) resolve(rec core.DataRecord, zone string) (item, error) {
	ts := rec.Timestamp
	it := item{
		line:   rec.Line,
		lineNo: rec.LineNo,
		parsed: ts.Parsed,
		clock:  record.IsClock(ts),
	}
	if !ts.Parsed {
		return it, nil
	}

	from, wall := zone, ts.Time
	if ts.Zoned {
		from, wall = "UTC", ts.Time.UTC()
	}

	at, _, err := r.m.converter.Convert(wall, from, "UTC")
	if err != nil {
		// Unknown source zone, keep the wall clock as UTC
		it.at = time.Date(wall.Year(), wall.Month(), wall.Day(),
			wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), time.UTC)
	} else {
		it.at = at
	}

	target := r.opts.TimezoneTarget
	if target == "" {
		return it, err
	}

	local, dst, cerr := r.m.converter.Convert(it.at, "UTC", target)
	if cerr != nil {
		return it, cerr
	}
	it.local, it.dst, it.converted = local, dst, true
	it.line = record.Rewrite(rec, local)
	return it, err
}

// peek resolves the first row of an input
func (r *run) peek(in *input) *item {
	for rec := range in.stream.All() {
		it, _ := r.resolve(rec, in.zone)
		return &it
	}
	return nil
}

// outputHeader adjusts a header for the target zone. Time-of-day data
// moves start_date (and start_time when present) with the first row.
func (r *run) outputHeader(h core.ParsedHeader, first *item) core.ParsedHeader {
	target := r.opts.TimezoneTarget
	if target == "" {
		return h
	}

	tzKey := core.KeyTimezone.String()
	h = h.With(core.Field{
		Key:     tzKey,
		Label:   header.LabelFor(tzKey, ""),
		Value:   target,
		Section: header.SectionFile,
		Class:   core.Editable,
	})

	if first == nil || !first.converted || !first.clock {
		return h
	}

	dateKey := core.KeyStartDate.String()
	h = h.With(core.Field{
		Key:     dateKey,
		Label:   header.LabelFor(dateKey, ""),
		Value:   first.local.Format(header.DateLayout),
		Section: header.SectionFile,
		Class:   core.Editable,
	})
	if f, ok := h.Get("start_time"); ok {
		f.Value = first.local.Format(time.TimeOnly)
		h = h.With(f)
	}
	return h
}

// output is one destination being written
type output struct {
	sink    sink.Sink
	path    string
	sources []string
	records int
	dst     bool
	seen    bool
}

func (o *output) write(it item) error {
	if err := o.sink.WriteLine(it.line); err != nil {
		return writeError(o.path, "write", err)
	}
	o.records++
	if it.converted && !o.seen {
		o.dst, o.seen = it.dst, true
	}
	return nil
}

func (r *run) openOutput(path string, h core.ParsedHeader) (*output, error) {
	s, err := r.open(path)
	if err != nil {
		return nil, writeError(path, "open", err)
	}

	if r.opts.IncludeHeaders {
		block, err := r.formatter.FormatHeader(h)
		if err != nil {
			s.Abort()
			return nil, writeError(path, "format", err)
		}
		if _, err := s.Write(block); err != nil {
			s.Abort()
			return nil, writeError(path, "write", err)
		}
	}

	return &output{sink: s, path: path}, nil
}

func (r *run) commit(out *output) error {
	res, err := out.sink.Commit()
	if err != nil {
		return writeError(out.path, "commit", err)
	}

	r.report.Outputs = append(r.report.Outputs, OutputFile{
		Path:    res.Path,
		Sources: out.sources,
		Records: out.records,
		Bytes:   res.Bytes,
		Digest:  res.Digest,
		DST:     out.dst,
	})
	r.report.RecordsWritten += out.records
	r.m.totalOutputs.Add(1)
	r.m.totalRecords.Add(uint64(out.records))

	r.m.logger.Debug("msg", "Output written",
		"component", "export_merger",
		"path", res.Path,
		"records", out.records,
		"bytes", res.Bytes)
	return nil
}

// fileDone reports progress for one input
func (r *run) fileDone(index int, path string, err error) {
	r.progress.FileProcessed(Progress{
		Count: index + 1,
		Total: r.total,
		Path:  path,
		Err:   err,
	})
}

func (r *run) advance(next State) error {
	if err := r.state.to(next); err != nil {
		return r.fail(Issue{Kind: KindInternal, Message: err.Error()}, err)
	}
	return nil
}

// fail records a call-level failure and moves to the failed state
func (r *run) fail(issue Issue, err error) error {
	r.report.fail(issue)
	if !r.state.current.Terminal() {
		_ = r.state.to(StateFailed)
	}
	return err
}

func (r *run) writeFailed(err error) error {
	path := ""
	var werr *sink.ExportWriteError
	if errors.As(err, &werr) {
		path = werr.Path
	}
	return r.fail(Issue{Kind: KindExportWrite, File: path, Message: err.Error()}, err)
}

// writeError wraps err as an ExportWriteError unless it already is one
func writeError(path, op string, err error) error {
	var werr *sink.ExportWriteError
	if errors.As(err, &werr) {
		return err
	}
	return &sink.ExportWriteError{Path: path, Op: op, Err: err}
}

// compareItems orders parsed rows by instant ahead of unparsed rows
func compareItems(a, b item) int {
	switch {
	case a.parsed && b.parsed:
		return a.at.Compare(b.at)
	case a.parsed:
		return -1
	case b.parsed:
		return 1
	default:
		return 0
	}
}
