// Package bundles holds the built-in catalog of path bundles and resolves
// bundle selections and explicit paths into the flat, sorted set of path
// specs the engines consume.
package bundles

import (
	_ "embed"
	"sort"
	"sync"

	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

//go:embed bundles.toml
var catalogTOML []byte

// Bundle is a named group of path specs.
type Bundle struct {
	ID          string   `toml:"id"`
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Paths       []string `toml:"paths"`
}

type catalog struct {
	Defaults struct {
		BundleIDs []string `toml:"bundle_ids"`
	} `toml:"defaults"`
	Bundles []Bundle `toml:"bundle"`
}

var (
	loadOnce sync.Once
	loaded   catalog
)

func load() catalog {
	loadOnce.Do(func() {
		// The catalog is compiled in; a decode failure is a build defect.
		if err := toml.Unmarshal(catalogTOML, &loaded); err != nil {
			panic("bundles: invalid embedded catalog: " + err.Error())
		}
	})
	return loaded
}

// All returns every bundle in catalog order.
func All() []Bundle {
	return append([]Bundle(nil), load().Bundles...)
}

// Find returns the bundle with id.
func Find(id string) (Bundle, bool) {
	return lo.Find(load().Bundles, func(b Bundle) bool { return b.ID == id })
}

// DefaultIDs returns the ids selected by --include-defaults.
func DefaultIDs() []string {
	return append([]string(nil), load().Defaults.BundleIDs...)
}

// EnsureKnown fails with a configuration error naming the first unknown id.
func EnsureKnown(ids []string) error {
	for _, id := range ids {
		if _, ok := Find(id); !ok {
			return errors.Newf(errors.ErrConfiguration,
				"unknown bundle '%s'. Run `syncd bundle list` to see options", id).
				WithDetail("bundle", id)
		}
	}
	return nil
}

// ResolvePaths returns the sorted, deduplicated paths of the given bundles.
func ResolvePaths(ids []string) ([]string, error) {
	if err := EnsureKnown(ids); err != nil {
		return nil, err
	}
	var out []string
	for _, id := range ids {
		b, _ := Find(id)
		out = append(out, b.Paths...)
	}
	return sortedSet(out), nil
}

// Resolve merges explicit paths with the paths of the given bundles into
// one sorted, deduplicated set.
func Resolve(paths, ids []string) ([]string, error) {
	fromBundles, err := ResolvePaths(ids)
	if err != nil {
		return nil, err
	}
	return sortedSet(append(append([]string(nil), paths...), fromBundles...)), nil
}

// PruneCovered returns the sorted, deduplicated explicit paths that are not
// already provided by the given bundles.
func PruneCovered(paths, ids []string) ([]string, error) {
	covered, err := ResolvePaths(ids)
	if err != nil {
		return nil, err
	}
	return sortedSet(lo.Without(paths, covered...)), nil
}

func sortedSet(in []string) []string {
	out := lo.Uniq(lo.Compact(in))
	sort.Strings(out)
	return out
}
