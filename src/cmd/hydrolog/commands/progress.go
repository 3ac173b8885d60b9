// FILE: hydrolog/src/cmd/hydrolog/commands/progress.go
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"hydrolog/src/internal/export"

	"golang.org/x/term"
	"golang.org/x/time/rate"
)

// progressPrinter renders per-file progress on one terminal line
type progressPrinter struct {
	w       io.Writer
	limiter *rate.Limiter
	printed bool
}

// newProgress returns a progress sink for mode "auto", "always" or
// "never". Auto prints only when w is a terminal.
func newProgress(mode string, w io.Writer) export.ProgressSink {
	switch mode {
	case "never":
		return nil
	case "always":
	default:
		f, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			return nil
		}
	}

	return &progressPrinter{
		w:       w,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

func (p *progressPrinter) FileProcessed(pr export.Progress) {
	// Always draw the last file
	if pr.Count < pr.Total && !p.limiter.Allow() {
		return
	}

	status := "ok"
	if pr.Err != nil {
		status = "skipped"
	}
	fmt.Fprintf(p.w, "\r\033[K[%d/%d] %s %s", pr.Count, pr.Total, filepath.Base(pr.Path), status)
	p.printed = true
}

func (p *progressPrinter) Finished(*export.Report) {
	if p.printed {
		fmt.Fprintln(p.w)
	}
}
