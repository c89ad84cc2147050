// Package ledger implements the symlink ledger: the side-table of symbolic
// links that cannot be stored verbatim in a version-controlled working tree.
//
// A Ledger is a keyed, ordered map of Entry values indexed by their
// home-relative path. Registration is first-writer-wins. The Store binds a
// Ledger to a working tree, keeps the tree and the ledger disjoint, and
// owns the single write of the metadata file at the end of a snapshot.
//
// The on-disk format is a JSON array of {"path","target","is_dir"} objects
// stored at <tree>/.syncd/symlinks.json. Entries are written sorted by path
// with forward slashes so repeated snapshots produce identical bytes.
package ledger
