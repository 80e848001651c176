package compare

import "config-compare/core/diff"

// Row is a single dataset record: field name to primitive value
// (string, number or nil). Rows are never mutated by the engine.
type Row = map[string]any

// Status classifies a compared row pair.
type Status string

const (
	// StatusMatch means every compared field is equal.
	StatusMatch Status = "match"
	// StatusDiffer means at least one compared field differs.
	StatusDiffer Status = "differ"
	// StatusOnlyInReference means the row exists only in the reference dataset.
	StatusOnlyInReference Status = "only_in_reference"
	// StatusOnlyInComparator means the row exists only in the comparator dataset.
	StatusOnlyInComparator Status = "only_in_comparator"
)

// MatchMode selects how rows are paired across the two datasets.
type MatchMode string

const (
	// MatchModeKey pairs rows by composite key built from key columns.
	MatchModeKey MatchMode = "key"
	// MatchModePosition pairs rows by their index.
	MatchModePosition MatchMode = "position"
)

// KeyEntry stores a row together with its original index.
type KeyEntry struct {
	Row   Row
	Index int
}

// KeyMap indexes rows by composite key. Duplicated keys are stored under
// delimiter-protected 1-based ordinal suffixes so no row is ever lost to
// a collision.
type KeyMap map[string]KeyEntry

// DuplicateKey reports a composite key that occurred more than once.
type DuplicateKey struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// RowResult is the comparison outcome for a single paired (or unpaired)
// row. Differences holds a cell diff per mismatching field and is nil
// for anything but StatusDiffer.
type RowResult struct {
	Key         string                     `json:"key"`
	Status      Status                     `json:"status"`
	Reference   Row                        `json:"reference,omitempty"`
	Comparator  Row                        `json:"comparator,omitempty"`
	Differences map[string]diff.CellResult `json:"differences,omitempty"`
}

// Summary tallies row statuses.
type Summary struct {
	Matches          int `json:"matches"`
	Differs          int `json:"differs"`
	OnlyInReference  int `json:"only_in_reference"`
	OnlyInComparator int `json:"only_in_comparator"`
	Total            int `json:"total"`
}

// DuplicateReport surfaces each side's duplicated composite keys.
type DuplicateReport struct {
	Reference  []DuplicateKey `json:"reference"`
	Comparator []DuplicateKey `json:"comparator"`
}

// Result is a full dataset comparison: rows ordered differ-first and
// match-last, aggregate counts, and the duplicate key report. It is
// freshly allocated per call and fully JSON-serializable.
type Result struct {
	Rows          []RowResult     `json:"rows"`
	Summary       Summary         `json:"summary"`
	DuplicateKeys DuplicateReport `json:"duplicate_keys"`
}

// Options configures a dataset comparison.
type Options struct {
	// KeyColumns are the columns forming the composite key. Required for
	// MatchModeKey.
	KeyColumns []string `json:"key_columns"`
	// Fields are the columns to compare. Empty means every field of the
	// reference row.
	Fields []string `json:"fields"`
	// MatchMode selects key or positional pairing. Defaults to key.
	MatchMode MatchMode `json:"match_mode"`
	// Threshold is the adaptive diff cutoff. Nil selects the default of
	// 0.5; an explicit zero makes every changed field a whole-cell
	// difference.
	Threshold *float64 `json:"threshold,omitempty"`
	// NormalizeDates enables tolerant date equality.
	NormalizeDates bool `json:"normalize_dates"`
	// NormalizeNumbers enables tolerant numeric equality.
	NormalizeNumbers bool `json:"normalize_numbers"`
}

func (o Options) threshold() float64 {
	if o.Threshold == nil {
		return diff.DefaultThreshold
	}
	return *o.Threshold
}

// ColumnReport is the outcome of a case-insensitive header
// reconciliation. Common preserves the reference headers' casing and
// order.
type ColumnReport struct {
	Common       []string `json:"common"`
	OnlyInRef    []string `json:"only_in_ref"`
	OnlyInComp   []string `json:"only_in_comp"`
	IsExactMatch bool     `json:"is_exact_match"`
}
