package types

// Reporter receives the user-visible notices of an engine run.
// Paths are reported the way the user configured them (tilde form) or, for
// pruned directories, as absolute working-tree locations.
type Reporter interface {
	// Skip is called once per abandoned path spec or symlink entry
	Skip(spec, reason string)
	// Pruned is called before an embedded .git directory is removed
	Pruned(path string)
	// Linked is called for each symlink registered or replayed
	Linked(path, target string)
}

// NopReporter discards every notice.
type NopReporter struct{}

func (NopReporter) Skip(string, string)   {}
func (NopReporter) Pruned(string)         {}
func (NopReporter) Linked(string, string) {}

// RecordingReporter keeps every notice in memory.
type RecordingReporter struct {
	Skips  []string
	Prunes []string
	Links  []string
}

func (r *RecordingReporter) Skip(spec, reason string) {
	r.Skips = append(r.Skips, spec+": "+reason)
}

func (r *RecordingReporter) Pruned(path string) {
	r.Prunes = append(r.Prunes, path)
}

func (r *RecordingReporter) Linked(path, target string) {
	r.Links = append(r.Links, path+" -> "+target)
}
