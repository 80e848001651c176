// Package normalize canonicalizes cell values so that equivalent
// representations compare as equal.
//
// Datasets exported from different systems render the same value in
// different shapes: 2023-01-15 vs 01/15/2023 vs the Excel serial 44941,
// or 1,234.56 vs 1.234,56. The comparison engine calls Equal with the
// normalizations the caller enabled; unparseable values silently fall
// back to strict string equality, so normalization can never make two
// genuinely different values equal by accident.
package normalize
