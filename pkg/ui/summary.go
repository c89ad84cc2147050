package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/syncd/pkg/style"
	"github.com/arthur-debert/syncd/pkg/types"
)

// RenderSummary prints the outcome of a run.
func RenderSummary(w io.Writer, result *types.RunResult, format Format) error {
	if result == nil {
		return nil
	}
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	styled := format == FormatTerminal
	paint := func(render func(...string) string, s string) string {
		if styled {
			return render(s)
		}
		return s
	}

	for _, spec := range result.Specs {
		label := fmt.Sprintf("%-12s", spec.Outcome)
		fmt.Fprintf(w, "  %s %s\n", paint(style.OutcomeStyle(spec.Outcome).Render, label), spec.Spec)
	}

	_, err := fmt.Fprintf(w, "%s: %d processed, %d skipped, %d symlinks",
		paint(style.TitleStyle.Render, directionTitle(result.Direction)),
		len(result.Succeeded()), len(result.Skipped()), len(result.Symlinks))
	if err != nil {
		return err
	}
	if failed := len(result.FailedLinks()); failed > 0 {
		fmt.Fprintf(w, " (%s)", paint(style.ErrorStyle.Render, fmt.Sprintf("%d failed", failed)))
	}
	if len(result.Pruned) > 0 {
		fmt.Fprintf(w, ", %d embedded .git removed", len(result.Pruned))
	}
	_, err = fmt.Fprintln(w)
	return err
}

func directionTitle(d types.Direction) string {
	switch d {
	case types.DirectionSnapshot:
		return "Snapshot"
	case types.DirectionRestore:
		return "Restore"
	default:
		return string(d)
	}
}
