// pkg/types/results_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test run result helpers and reporters

package types_test

import (
	"errors"
	"testing"

	"github.com/arthur-debert/syncd/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestRunResult_SkippedAndSucceeded(t *testing.T) {
	result := types.NewRunResult(types.DirectionSnapshot)
	result.Add(types.SpecResult{Spec: "~/.config/a", Outcome: types.OutcomeCopiedFile})
	result.Add(types.SpecResult{Spec: "~/.config/b", Outcome: types.OutcomeSkipped, Reason: "missing"})
	result.Add(types.SpecResult{Spec: "~/.config/c", Outcome: types.OutcomeMirroredDir})

	assert.Equal(t, types.DirectionSnapshot, result.Direction)
	assert.Len(t, result.Succeeded(), 2)
	skipped := result.Skipped()
	assert.Len(t, skipped, 1)
	assert.Equal(t, "~/.config/b", skipped[0].Spec)
}

func TestRunResult_FailedLinks(t *testing.T) {
	result := types.NewRunResult(types.DirectionRestore)
	result.Symlinks = []types.LinkResult{
		{Path: ".config/a", Target: "../b"},
		{Path: ".config/c", Target: "/x", Err: errors.New("permission denied")},
	}

	failed := result.FailedLinks()
	assert.Len(t, failed, 1)
	assert.Equal(t, ".config/c", failed[0].Path)
}

func TestRecordingReporter(t *testing.T) {
	var r types.RecordingReporter
	var reporter types.Reporter = &r

	reporter.Skip("~/.config/a", "it does not exist on this machine")
	reporter.Pruned("/tmp/tree/.config/nvim/.git")
	reporter.Linked("~/.config/a", "../b")

	assert.Equal(t, []string{"~/.config/a: it does not exist on this machine"}, r.Skips)
	assert.Equal(t, []string{"/tmp/tree/.config/nvim/.git"}, r.Prunes)
	assert.Equal(t, []string{"~/.config/a -> ../b"}, r.Links)

	types.NopReporter{}.Skip("x", "y")
}
