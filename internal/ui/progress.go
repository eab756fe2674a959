package ui

import (
	"fmt"
	"sync/atomic"
)

// Progress tracks completion of parallel dependency operations with a simple
// counter display routed through the owning Ui.
type Progress struct {
	ui        *Ui
	total     int
	completed atomic.Int32
}

// NewProgress creates a progress tracker for n operations.
func NewProgress(u *Ui, total int) *Progress {
	return &Progress{ui: u, total: total}
}

// Done marks one operation as completed and prints the current progress.
func (p *Progress) Done(label string) {
	n := int(p.completed.Add(1))
	p.ui.Status(fmt.Sprintf("[%d/%d]", n, p.total), label)
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	p.ui.VerbosePrint(format, args...)
}
