// Package history keeps the run journal: one SQLite row per match run with
// its input, output, mode, and outcome. It never stores cluster state, so
// every run resolves identities from scratch.
//
// Open applies WAL and busy-timeout pragmas and creates the schema on first
// use. Writes retry briefly when another process holds the database lock.
package history
