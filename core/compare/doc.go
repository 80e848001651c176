// Package compare is the dataset comparison engine.
//
// It pairs the rows of two datasets (reference vs. comparator) either by
// composite key or by position, compares each pair field-by-field with
// tolerant value normalization, and assembles a structured Result:
// per-row status, per-cell adaptive diffs for mismatching fields, an
// aggregate summary, and a report of duplicated composite keys.
//
// Duplicate keys never drop rows. The Nth occurrence of a duplicated key
// K is indexed as K#N, and every duplicated key is reported with its
// count so the caller can surface the ambiguity instead of silently
// pairing arbitrary rows.
//
// All entry points are pure over their inputs: datasets are never
// mutated and every Result is freshly allocated, which is what makes the
// engine safe to run concurrently inside the background task worker.
package compare
