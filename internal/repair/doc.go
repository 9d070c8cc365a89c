// Package repair applies the mojibake reverser to files on disk.
//
// File handles one path: it reads the content, runs mojibake.Reverse,
// classifies the outcome, and rewrites the file atomically through
// github.com/moby/sys/atomicwriter when a repair changes the text. Run
// fans a batch of paths out over a bounded errgroup and keeps results in
// input order.
package repair
