package diff

// Op tags a diff segment.
type Op string

const (
	// OpEqual marks text present on both sides.
	OpEqual Op = "equal"
	// OpInsert marks text present only on the right side.
	OpInsert Op = "insert"
	// OpDelete marks text present only on the left side.
	OpDelete Op = "delete"
)

// Segment is one run of a diff. Concatenating the equal and delete
// segments reconstructs the left string; equal and insert segments
// reconstruct the right.
type Segment struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// ResultType identifies the strategy a cell diff resolved to.
type ResultType string

const (
	// TypeUnchanged means both values are identical.
	TypeUnchanged ResultType = "unchanged"
	// TypeCharDiff means the values are close enough for an inline
	// character-level diff.
	TypeCharDiff ResultType = "chardiff"
	// TypeCellDiff means the values differ too much for inline display
	// and should be rendered as a whole-cell replacement.
	TypeCellDiff ResultType = "celldiff"
)

// CellResult is the outcome of an adaptive cell diff. Segments is
// populated only for TypeCharDiff.
type CellResult struct {
	Type     ResultType `json:"type"`
	Changed  bool       `json:"changed"`
	Segments []Segment  `json:"segments,omitempty"`
}

// DefaultThreshold is the change ratio above which Adaptive falls back
// to whole-cell replacement.
const DefaultThreshold = 0.5
