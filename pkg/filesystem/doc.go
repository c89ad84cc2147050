// Package filesystem provides filesystem implementations for syncd.
//
// This package contains the FS interface the engines are written against,
// the standard OS filesystem, an afero-backed filesystem for tests, and the
// copy/remove/prune helpers shared by the snapshot and restore engines.
//
// None of the helpers follow symbolic links: a link is always inspected
// with Lstat, and copies skip links entirely because links are recorded in
// the symlink ledger instead of the working tree.
package filesystem
