// Package report persists a batch result as a flat report: one summary
// CSV, one 24-row detail CSV per processed train, and optionally the whole
// result as JSON. Assembly happens in memory upstream; this package only
// writes, once, at the end of a batch.
package report
