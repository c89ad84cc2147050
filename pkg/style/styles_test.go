package style

import (
	"testing"

	"github.com/arthur-debert/syncd/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeStyle(t *testing.T) {
	assert.Equal(t, WarningStyle.GetForeground(), OutcomeStyle(types.OutcomeSkipped).GetForeground())
	assert.Equal(t, SymlinkStyle.GetForeground(), OutcomeStyle(types.OutcomeSymlink).GetForeground())
	assert.Equal(t, SuccessStyle.GetForeground(), OutcomeStyle(types.OutcomeCopiedFile).GetForeground())
}
