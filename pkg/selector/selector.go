// Package selector asks the user which bundles and extra paths to track,
// using an interactive huh form.
package selector

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/syncd/pkg/bundles"
	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/charmbracelet/huh"
	"github.com/samber/lo"
)

// Selection is the tracked set chosen by the user.
type Selection struct {
	Bundles []string
	Paths   []string
}

// Prompter produces a selection, starting from initial.
type Prompter interface {
	Select(initial Selection) (Selection, error)
}

// Form prompts with a huh form on the terminal.
type Form struct {
	// Title is shown above the bundle list
	Title string
}

// New returns the interactive prompter.
func New(title string) *Form {
	return &Form{Title: title}
}

// Select implements Prompter.
func (f *Form) Select(initial Selection) (Selection, error) {
	chosen := append([]string(nil), initial.Bundles...)
	extra := strings.Join(initial.Paths, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(f.Title).
				Description("space toggles, enter confirms").
				Options(Options(chosen)...).
				Value(&chosen),
			huh.NewInput().
				Title("Extra paths").
				Placeholder("~/.bashrc, ~/.config/foo").
				Value(&extra).
				Validate(validatePathList),
		),
	)

	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return Selection{}, errors.New(errors.ErrInvalidInput, "selection cancelled")
		}
		return Selection{}, errors.Wrap(err, errors.ErrInternal, "interactive selection failed")
	}

	return Selection{Bundles: chosen, Paths: ParsePathList(extra)}, nil
}

// Options builds one option per catalog bundle, preselecting selected.
func Options(selected []string) []huh.Option[string] {
	return lo.Map(bundles.All(), func(b bundles.Bundle, _ int) huh.Option[string] {
		label := fmt.Sprintf("%s: %s", b.Name, b.Description)
		return huh.NewOption(label, b.ID).Selected(lo.Contains(selected, b.ID))
	})
}

// ParsePathList splits a comma separated list of path specs.
func ParsePathList(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
	return lo.Uniq(lo.Compact(parts))
}

func validatePathList(s string) error {
	for _, p := range ParsePathList(s) {
		if !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%s: use ~/ for paths in your home directory", p)
		}
	}
	return nil
}
