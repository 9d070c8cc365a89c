// Package discover turns command-line path arguments into the list of files
// to repair.
//
// Files named explicitly are accepted when their extension matches;
// directories are walked recursively. Problems with individual paths are
// collected as Skipped entries so that one bad argument never stops the
// rest of the batch.
package discover
