package diff

import (
	"strings"
	"unicode"
)

// Chars computes a character-level diff between two strings using the
// longest common subsequence. Adjacent segments with the same op are
// merged, so the result is the minimal ordered segment sequence.
//
// Two empty strings yield a single empty equal segment; when exactly one
// side is empty the result is a single insert or delete spanning the
// other side.
func Chars(a, b string) []Segment {
	return diffTokens(splitRunes(a), splitRunes(b))
}

// Words computes the same LCS diff over whitespace-preserving word
// tokens. Runs of spaces are tokens of their own, so the reconstruction
// invariant holds byte-for-byte.
func Words(a, b string) []Segment {
	return diffTokens(splitWords(a), splitWords(b))
}

// ChangeRatio measures how much of two strings changed, in [0, 1].
// Identical strings (and two empty strings) score 0; exactly one empty
// side scores 1. Otherwise the score is the count of characters not in
// the common subsequence over the combined length.
func ChangeRatio(a, b string) float64 {
	if a == b {
		return 0
	}
	if a == "" || b == "" {
		return 1
	}

	ra := []rune(a)
	rb := []rune(b)
	common := lcsLength(ra, rb)
	total := len(ra) + len(rb)
	return float64(total-2*common) / float64(total)
}

// Adaptive selects a diff strategy for a pair of cell values. Equal
// values report unchanged; values whose change ratio exceeds the
// threshold report a whole-cell difference without segments; anything
// else gets an inline character diff. A negative threshold selects
// DefaultThreshold; zero is honored literally, so any changed pair
// reports a whole-cell difference.
func Adaptive(a, b string, threshold float64) CellResult {
	if threshold < 0 {
		threshold = DefaultThreshold
	}

	if a == b {
		return CellResult{Type: TypeUnchanged, Changed: false}
	}

	if ChangeRatio(a, b) > threshold {
		return CellResult{Type: TypeCellDiff, Changed: true}
	}

	return CellResult{Type: TypeCharDiff, Changed: true, Segments: Chars(a, b)}
}

func splitRunes(s string) []string {
	runes := []rune(s)
	tokens := make([]string, len(runes))
	for i, r := range runes {
		tokens[i] = string(r)
	}
	return tokens
}

// splitWords tokenizes into alternating runs of non-space and space
// characters, preserving every byte of the input.
func splitWords(s string) []string {
	var tokens []string
	var current strings.Builder
	currentIsSpace := false

	for _, r := range s {
		isSpace := unicode.IsSpace(r)
		if current.Len() > 0 && isSpace != currentIsSpace {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		current.WriteRune(r)
		currentIsSpace = isSpace
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// diffTokens runs the LCS dynamic program over the token slices and
// backtracks into merged segments.
func diffTokens(a, b []string) []Segment {
	if len(a) == 0 && len(b) == 0 {
		return []Segment{{Op: OpEqual, Text: ""}}
	}
	if len(a) == 0 {
		return []Segment{{Op: OpInsert, Text: strings.Join(b, "")}}
	}
	if len(b) == 0 {
		return []Segment{{Op: OpDelete, Text: strings.Join(a, "")}}
	}

	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Backtrack from the bottom-right corner, collecting ops in reverse.
	type rawOp struct {
		op   Op
		text string
	}
	var reversed []rawOp
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			reversed = append(reversed, rawOp{OpEqual, a[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			reversed = append(reversed, rawOp{OpInsert, b[j-1]})
			j--
		default:
			reversed = append(reversed, rawOp{OpDelete, a[i-1]})
			i--
		}
	}

	// Reverse and merge adjacent runs with the same op.
	var segments []Segment
	for k := len(reversed) - 1; k >= 0; k-- {
		cur := reversed[k]
		if len(segments) > 0 && segments[len(segments)-1].Op == cur.op {
			segments[len(segments)-1].Text += cur.text
			continue
		}
		segments = append(segments, Segment{Op: cur.op, Text: cur.text})
	}
	return segments
}

func lcsLength(a, b []rune) int {
	m, n := len(a), len(b)
	// Two rolling rows are enough for the length alone.
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[n]
}
