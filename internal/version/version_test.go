// internal/version/version_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test rendering of build information

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version = "1.2.3"
	Commit = "abc123"

	out := String()
	assert.Contains(t, out, "syncd version 1.2.3")
	assert.Contains(t, out, "commit: abc123")
}
