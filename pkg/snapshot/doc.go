// Package snapshot copies the live state of configured home-directory paths
// into a working tree.
//
// Every path spec is handled on its own. A spec that cannot be processed
// (missing on this machine, outside home, an I/O error) is reported and
// skipped and the run moves on. Directories are mirrored: the destination
// is deleted and rebuilt, embedded .git directories are pruned from the
// copy, and every symlink found in the original source is recorded in the
// symlink ledger instead of being copied. The ledger is written once, at
// the end of the run.
package snapshot
