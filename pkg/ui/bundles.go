package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/syncd/pkg/bundles"
	"github.com/pterm/pterm"
)

// RenderBundles prints the bundle catalog as a table. Bundles whose id is
// in selected are marked.
func RenderBundles(w io.Writer, all []bundles.Bundle, selected []string, format Format) error {
	chosen := make(map[string]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}

	data := pterm.TableData{{"", "ID", "NAME", "DESCRIPTION", "PATHS"}}
	for _, b := range all {
		mark := ""
		if chosen[b.ID] {
			mark = "*"
		}
		data = append(data, []string{mark, b.ID, b.Name, b.Description, strings.Join(b.Paths, ", ")})
	}

	if format != FormatTerminal {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
