package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/syncd/pkg/errors"
)

// Resolved is a path spec resolved against a home root.
type Resolved struct {
	// Spec is the configured path spec, e.g. ~/.config/nvim
	Spec string
	// Abs is the expanded absolute location under home
	Abs string
	// Rel is the home-relative path, the join key with the working tree
	Rel string
}

// ExpandTilde expands a leading ~ against home.
// "~" becomes home and "~/x" becomes home/x. Any other spec (including
// "~user" forms) is returned cleaned but otherwise untouched.
func ExpandTilde(spec, home string) string {
	if spec == "~" {
		return filepath.Clean(home)
	}
	if len(spec) > 1 && spec[0] == '~' && (spec[1] == '/' || spec[1] == filepath.Separator) {
		return filepath.Join(home, spec[2:])
	}
	return filepath.Clean(spec)
}

// HomeRelative strips the home prefix from abs.
// It fails unless abs is strictly under home: home itself, siblings and
// anything escaping through ".." are rejected.
func HomeRelative(abs, home string) (string, error) {
	home = filepath.Clean(home)
	abs = filepath.Clean(abs)

	if !filepath.IsAbs(abs) {
		return "", errors.Newf(errors.ErrConfiguration,
			"configured path %s must live under %s", abs, home).
			WithDetail("path", abs).
			WithDetail("home", home)
	}

	rel, err := filepath.Rel(home, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrConfiguration,
			"configured path %s must live under %s", abs, home).
			WithDetail("path", abs).
			WithDetail("home", home)
	}
	return rel, nil
}

// Resolve expands spec and computes its home-relative path.
func Resolve(spec, home string) (Resolved, error) {
	if strings.TrimSpace(spec) == "" {
		return Resolved{}, errors.New(errors.ErrConfiguration, "path spec cannot be empty")
	}
	if strings.Contains(spec, "\x00") {
		return Resolved{}, errors.New(errors.ErrConfiguration, "path spec contains null bytes")
	}

	abs := ExpandTilde(spec, home)
	rel, err := HomeRelative(abs, home)
	if err != nil {
		return Resolved{}, err
	}
	if IsReserved(rel) {
		return Resolved{}, errors.Newf(errors.ErrConfiguration,
			"configured path %s collides with the reserved working-tree entry %s", spec, firstElem(rel)).
			WithDetail("path", spec)
	}
	return Resolved{Spec: spec, Abs: abs, Rel: rel}, nil
}

// IsReserved reports whether rel falls inside a working-tree location owned
// by syncd or by git: the metadata directory and the top-level .git.
func IsReserved(rel string) bool {
	first := firstElem(rel)
	return first == MetadataDirName || first == GitDirName
}

func firstElem(rel string) string {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return rel
}

// ValidateSpecs resolves every spec up front and returns the first
// configuration error. Callers use it to fail a whole run before any
// engine touches the disk.
func ValidateSpecs(specs []string, home string) error {
	for _, spec := range specs {
		if _, err := Resolve(spec, home); err != nil {
			return err
		}
	}
	return nil
}

// Tilde renders a home-relative path as a path spec.
func Tilde(rel string) string {
	if rel == "" || rel == "." {
		return "~"
	}
	return "~/" + filepath.ToSlash(rel)
}

// IsRelativeLocal reports whether rel is a clean relative path that stays
// inside its root once joined. Ledger entries read from disk must pass it.
func IsRelativeLocal(rel string) bool {
	if rel == "" || filepath.IsAbs(rel) {
		return false
	}
	return filepath.IsLocal(rel)
}
