// Package restore replays a working tree back into the home directory.
//
// Path specs are restored one at a time with the same skip-and-continue
// policy as snapshots. Afterwards every entry of the symlink ledger is
// recreated, whether or not its path was among the requested specs. The
// ledger is read before anything in home is touched: a corrupt ledger
// aborts the run with home unchanged.
package restore
