package types

import "github.com/samber/lo"

// Direction names the direction of one engine run.
type Direction string

const (
	// DirectionSnapshot copies home state into the working tree
	DirectionSnapshot Direction = "snapshot"
	// DirectionRestore copies the working tree back into home
	DirectionRestore Direction = "restore"
)

// Outcome is what happened to a single path spec during a run.
type Outcome string

const (
	OutcomeCopiedFile  Outcome = "copied-file"
	OutcomeMirroredDir Outcome = "mirrored-dir"
	OutcomeSymlink     Outcome = "symlink"
	OutcomeSkipped     Outcome = "skipped"
)

// SpecResult records the processing of one path spec.
type SpecResult struct {
	Spec    string  `json:"spec"`
	Rel     string  `json:"rel,omitempty"`
	Outcome Outcome `json:"outcome"`
	// Reason explains a skip; empty otherwise
	Reason string `json:"reason,omitempty"`
	Err    error  `json:"-"`
}

// IsSkipped reports whether the spec was abandoned.
func (r SpecResult) IsSkipped() bool {
	return r.Outcome == OutcomeSkipped
}

// LinkResult records one symlink handled by a run: registered during a
// snapshot or replayed during a restore.
type LinkResult struct {
	Path   string `json:"path"`
	Target string `json:"target"`
	IsDir  bool   `json:"is_dir"`
	Err    error  `json:"-"`
}

// RunResult is the summary of one snapshot or restore run.
type RunResult struct {
	Direction Direction    `json:"direction"`
	Specs     []SpecResult `json:"specs"`
	Symlinks  []LinkResult `json:"symlinks"`
	// Pruned lists the embedded .git directories removed from the tree
	Pruned []string `json:"pruned,omitempty"`
}

// NewRunResult returns an empty result for direction.
func NewRunResult(direction Direction) *RunResult {
	return &RunResult{Direction: direction}
}

// Add appends a spec result.
func (r *RunResult) Add(result SpecResult) {
	r.Specs = append(r.Specs, result)
}

// Skipped returns the specs that were abandoned.
func (r *RunResult) Skipped() []SpecResult {
	return lo.Filter(r.Specs, func(s SpecResult, _ int) bool { return s.IsSkipped() })
}

// Succeeded returns the specs that were processed.
func (r *RunResult) Succeeded() []SpecResult {
	return lo.Reject(r.Specs, func(s SpecResult, _ int) bool { return s.IsSkipped() })
}

// FailedLinks returns the symlinks that could not be handled.
func (r *RunResult) FailedLinks() []LinkResult {
	return lo.Filter(r.Symlinks, func(l LinkResult, _ int) bool { return l.Err != nil })
}
