// Package testutil provides utilities for testing syncd components.
//
// Key components:
//   - TestEnvironment: isolated home directory, working tree and XDG
//     locations, either on the real filesystem under t.TempDir() or in memory
//   - File, directory and symlink fixtures with fail-fast helpers
//   - Assertions for file content and symlink targets
//
// Usage guidelines:
//   - Engine tests use EnvIsolated: symlinks need a real filesystem
//   - Ledger and config tests may use EnvMemoryOnly for speed
//   - All test data should be defined inline, not in external files
package testutil
