package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/syncd/pkg/style"
	"github.com/arthur-debert/syncd/pkg/types"
)

// ConsoleReporter prints engine notices, one line each.
type ConsoleReporter struct {
	w       io.Writer
	styled  bool
	verbose bool
}

// NewConsoleReporter returns a reporter writing to w. Styling is applied
// only for FormatTerminal; JSON output keeps notices plain. Linked notices
// are printed only when verbose is set.
func NewConsoleReporter(w io.Writer, format Format, verbose bool) *ConsoleReporter {
	return &ConsoleReporter{w: w, styled: format == FormatTerminal, verbose: verbose}
}

// Skip implements types.Reporter.
func (r *ConsoleReporter) Skip(spec, reason string) {
	fmt.Fprintf(r.w, "%s %s because %s.\n", r.paint(style.WarningStyle.Render, "Skipping"), r.paint(style.PathStyle.Render, spec), reason)
}

// Pruned implements types.Reporter.
func (r *ConsoleReporter) Pruned(path string) {
	fmt.Fprintf(r.w, "Removing embedded .git directory at %s\n", r.paint(style.PathStyle.Render, path))
}

// Linked implements types.Reporter.
func (r *ConsoleReporter) Linked(path, target string) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.w, "%s %s -> %s\n", r.paint(style.SymlinkStyle.Render, "Symlink"), r.paint(style.PathStyle.Render, path), target)
}

func (r *ConsoleReporter) paint(render func(...string) string, s string) string {
	if !r.styled {
		return s
	}
	return render(s)
}

var _ types.Reporter = (*ConsoleReporter)(nil)
