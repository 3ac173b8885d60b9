// FILE: hydrolog/src/internal/export/progress.go
package export

import "sync/atomic"

// Progress is reported once per input file
type Progress struct {
	Count int
	Total int
	Path  string
	// Err is set when the file was skipped
	Err error
}

// ProgressSink receives export progress. Implementations must not block.
type ProgressSink interface {
	FileProcessed(p Progress)
	Finished(r *Report)
}

type nopProgress struct{}

func (nopProgress) FileProcessed(Progress) {}
func (nopProgress) Finished(*Report)       {}

// ProgressFunc adapts a function to a ProgressSink; Finished is ignored
type ProgressFunc func(p Progress)

func (f ProgressFunc) FileProcessed(p Progress) { f(p) }
func (f ProgressFunc) Finished(*Report)         {}

// ChannelProgress forwards progress to channels without blocking. Updates
// are dropped when the consumer lags; the final report is always delivered
// to a buffered channel of size one. One adapter serves one export.
type ChannelProgress struct {
	updates chan Progress
	done    chan *Report
	dropped atomic.Uint64
}

// NewChannelProgress creates a channel adapter with the given buffer
func NewChannelProgress(buffer int) *ChannelProgress {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelProgress{
		updates: make(chan Progress, buffer),
		done:    make(chan *Report, 1),
	}
}

func (c *ChannelProgress) FileProcessed(p Progress) {
	select {
	case c.updates <- p:
	default:
		c.dropped.Add(1)
	}
}

// Finished delivers the report and closes the update channel
func (c *ChannelProgress) Finished(r *Report) {
	select {
	case c.done <- r:
	default:
	}
	close(c.updates)
}

// Updates returns the progress channel, closed after Finished
func (c *ChannelProgress) Updates() <-chan Progress {
	return c.updates
}

// Done returns the channel receiving the final report
func (c *ChannelProgress) Done() <-chan *Report {
	return c.done
}

// Dropped returns the number of updates discarded
func (c *ChannelProgress) Dropped() uint64 {
	return c.dropped.Load()
}
