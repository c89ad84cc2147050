package ledger

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/paths"
)

// Entry is one recorded symbolic link.
type Entry struct {
	// Path is the home-relative location of the link
	Path string `json:"path"`
	// Target is the verbatim link target, relative or absolute
	Target string `json:"target"`
	// IsDir tells whether the link pointed at a directory when recorded
	IsDir bool `json:"is_dir"`
}

// Ledger is a keyed set of entries. The zero value is not usable; use New.
type Ledger struct {
	entries map[string]Entry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string]Entry)}
}

// Register inserts entry unless one with the same path exists.
// It reports whether the entry was inserted.
func (l *Ledger) Register(entry Entry) bool {
	key := filepath.Clean(entry.Path)
	if _, ok := l.entries[key]; ok {
		return false
	}
	entry.Path = key
	l.entries[key] = entry
	return true
}

// Get returns the entry recorded for path.
func (l *Ledger) Get(path string) (Entry, bool) {
	entry, ok := l.entries[filepath.Clean(path)]
	return entry, ok
}

// Has reports whether path is recorded.
func (l *Ledger) Has(path string) bool {
	_, ok := l.Get(path)
	return ok
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Paths returns the recorded paths sorted.
func (l *Ledger) Paths() []string {
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns every entry sorted by path.
func (l *Ledger) Entries() []Entry {
	keys := l.Paths()
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = l.entries[k]
	}
	return out
}

// Marshal encodes the ledger deterministically.
func Marshal(l *Ledger) ([]byte, error) {
	entries := l.Entries()
	for i := range entries {
		entries[i].Path = filepath.ToSlash(entries[i].Path)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode symlink ledger")
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a ledger. Any malformed content, including entries
// whose path would escape the working tree, is a LedgerCorrupt error and no
// partial ledger is returned.
func Unmarshal(data []byte) (*Ledger, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, errors.ErrLedgerCorrupt, "symlink ledger is not valid JSON")
	}

	l := New()
	for i, entry := range entries {
		entry.Path = filepath.FromSlash(entry.Path)
		if !paths.IsRelativeLocal(entry.Path) || filepath.Clean(entry.Path) == "." {
			return nil, errors.Newf(errors.ErrLedgerCorrupt,
				"symlink ledger entry %d has invalid path %q", i, entry.Path).
				WithDetail("index", i)
		}
		if strings.TrimSpace(entry.Target) == "" {
			return nil, errors.Newf(errors.ErrLedgerCorrupt,
				"symlink ledger entry %s has an empty target", entry.Path).
				WithDetail("path", entry.Path)
		}
		l.Register(entry)
	}
	return l, nil
}
