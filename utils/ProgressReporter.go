package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter defines methods for reporting progress.
type ProgressReporter interface {
	// SetTotal reinitializes the progress bar with the new total count.
	SetTotal(total int)
	// Increment increases the progress by one.
	Increment()
	Finish()
}

// BarProgressReporter draws a progressbar on the given writer.
type BarProgressReporter struct {
	description string
	writer      io.Writer
	bar         *progressbar.ProgressBar
}

func NewBarProgressReporter(writer io.Writer, description string) *BarProgressReporter {
	p := &BarProgressReporter{description: description, writer: writer}
	p.SetTotal(-1)
	return p
}

// SetTotal reinitializes the progress bar with the new total count. A
// negative total draws a spinner.
func (p *BarProgressReporter) SetTotal(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetDescription(p.description),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100e6),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *BarProgressReporter) Increment() {
	_ = p.bar.Add(1)
}

func (p *BarProgressReporter) Finish() {
	_ = p.bar.Finish()
}

type NoopProgressReporter struct{}

func (NoopProgressReporter) SetTotal(int) {}
func (NoopProgressReporter) Increment()   {}
func (NoopProgressReporter) Finish()      {}
