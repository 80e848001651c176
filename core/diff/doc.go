// Package diff computes cell-level text diffs for the comparison engine.
//
// The central entry point is Adaptive, which picks between an inline
// character diff and a whole-cell replacement based on how much of the
// value changed: near-identical values get highlighted segments, heavily
// rewritten values are flagged as replaced outright so the UI does not
// render noise. All functions are pure and perform no I/O.
package diff
