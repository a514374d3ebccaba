// Package status prints the operator-facing progress lines that the CLI
// shows on stdout at each phase of a run.
package status

import (
	"fmt"
	"io"
	"os"
)

type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w, or to stdout when w is nil.
func New(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Discard returns a Printer that drops everything.
func Discard() *Printer { return &Printer{w: io.Discard} }

func (p *Printer) OK(format string, args ...any)   { p.line("✅ ", format, args...) }
func (p *Printer) Warn(format string, args ...any) { p.line("⚠️ ", format, args...) }
func (p *Printer) Fail(format string, args ...any) { p.line("❌ ", format, args...) }

// Detail prints an indented continuation line under the previous status line.
func (p *Printer) Detail(format string, args ...any) { p.line("   ", format, args...) }

// Plain prints a line with no prefix.
func (p *Printer) Plain(format string, args ...any) { p.line("", format, args...) }

func (p *Printer) line(prefix, format string, args ...any) {
	fmt.Fprintf(p.w, prefix+format+"\n", args...)
}
