package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Verbosity controls how much output the Ui emits.
type Verbosity int

const (
	Quiet Verbosity = iota
	Normal
	Verbose
)

var (
	actionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Ui renders user-facing messages. Status lines and warnings go to the error
// stream so that command output on stdout stays machine-consumable.
type Ui struct {
	out       io.Writer
	err       io.Writer
	verbosity Verbosity
	mu        sync.Mutex
}

// New creates a Ui writing normal output to out and diagnostics to err.
func New(out, err io.Writer, verbosity Verbosity) *Ui {
	return &Ui{out: out, err: err, verbosity: verbosity}
}

// Verbosity returns the configured verbosity level.
func (u *Ui) Verbosity() Verbosity {
	return u.verbosity
}

// Out returns the writer for normal command output.
func (u *Ui) Out() io.Writer {
	return u.out
}

// Print writes a line of command output regardless of verbosity.
func (u *Ui) Print(format string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, _ = fmt.Fprintf(u.out, format+"\n", args...)
}

// Status prints an aligned "action message" line, e.g. "Compiling hello v0.1.0".
// Suppressed in quiet mode.
func (u *Ui) Status(action, message string) {
	if u.verbosity <= Quiet {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	_, _ = fmt.Fprintf(u.err, "%12s %s\n", actionStyle.Render(action), message)
}

// VerbosePrint writes a line only when verbose output was requested.
func (u *Ui) VerbosePrint(format string, args ...any) {
	if u.verbosity < Verbose {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	_, _ = fmt.Fprintf(u.err, format+"\n", args...)
}

// Warn prints a warning. Warnings are shown even in quiet mode.
func (u *Ui) Warn(format string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, _ = fmt.Fprintf(u.err, "%s %s\n", warningStyle.Render("warning:"), fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (u *Ui) Error(format string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, _ = fmt.Fprintf(u.err, "%s %s\n", errorStyle.Render("error:"), fmt.Sprintf(format, args...))
}
