package compare_test

import (
	"testing"

	"config-compare/core/compare"
	"config-compare/core/diff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRow(t *testing.T, result *compare.Result, key string) compare.RowResult {
	t.Helper()
	for _, row := range result.Rows {
		if row.Key == key {
			return row
		}
	}
	t.Fatalf("row %q not found", key)
	return compare.RowResult{}
}

func TestDatasetsKeyMode(t *testing.T) {
	ref := []compare.Row{
		{"id": "A", "v": 1},
		{"id": "B", "v": 2},
		{"id": "C", "v": 3},
	}
	comp := []compare.Row{
		{"id": "A", "v": 1},
		{"id": "B", "v": 99},
		{"id": "D", "v": 4},
	}

	result, err := compare.Datasets(ref, comp, compare.Options{
		KeyColumns: []string{"id"},
		Fields:     []string{"v"},
		MatchMode:  compare.MatchModeKey,
	})
	require.NoError(t, err)

	assert.Equal(t, compare.Summary{
		Matches:          1,
		Differs:          1,
		OnlyInReference:  1,
		OnlyInComparator: 1,
		Total:            4,
	}, result.Summary)

	rowB := findRow(t, result, "B")
	assert.Equal(t, compare.StatusDiffer, rowB.Status)
	require.Contains(t, rowB.Differences, "v")
	assert.True(t, rowB.Differences["v"].Changed)

	assert.Equal(t, compare.StatusOnlyInReference, findRow(t, result, "C").Status)
	assert.Equal(t, compare.StatusOnlyInComparator, findRow(t, result, "D").Status)
	assert.Nil(t, findRow(t, result, "A").Differences)

	// Differ-first, match-last ordering.
	assert.Equal(t, compare.StatusDiffer, result.Rows[0].Status)
	assert.Equal(t, compare.StatusMatch, result.Rows[len(result.Rows)-1].Status)
}

func TestDatasetsKeyModeRequiresKeyColumns(t *testing.T) {
	_, err := compare.Datasets(nil, nil, compare.Options{MatchMode: compare.MatchModeKey})

	require.Error(t, err)
	var inputErr *compare.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestDatasetsUnknownMatchMode(t *testing.T) {
	_, err := compare.Datasets(nil, nil, compare.Options{MatchMode: "fuzzy"})

	require.Error(t, err)
	var inputErr *compare.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestDatasetsPositionMode(t *testing.T) {
	ref := []compare.Row{
		{"v": "a"},
		{"v": "b"},
		{"v": "c"},
	}
	comp := []compare.Row{
		{"v": "a"},
		{"v": "x"},
	}

	result, err := compare.Datasets(ref, comp, compare.Options{
		MatchMode: compare.MatchModePosition,
		Fields:    []string{"v"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Summary.Total)
	assert.Equal(t, 1, result.Summary.Matches)
	assert.Equal(t, 1, result.Summary.Differs)
	assert.Equal(t, 1, result.Summary.OnlyInReference)
	assert.Equal(t, 0, result.Summary.OnlyInComparator)

	assert.Equal(t, compare.StatusDiffer, findRow(t, result, "1").Status)
	assert.Equal(t, compare.StatusOnlyInReference, findRow(t, result, "2").Status)
}

func TestDatasetsDuplicateKeys(t *testing.T) {
	ref := []compare.Row{
		{"id": "A", "v": 1},
		{"id": "A", "v": 2},
	}
	comp := []compare.Row{
		{"id": "A", "v": 1},
	}

	result, err := compare.Datasets(ref, comp, compare.Options{
		KeyColumns: []string{"id"},
		Fields:     []string{"v"},
	})
	require.NoError(t, err)

	// Suffixed occurrences count as distinct keys: the two reference A
	// rows and the bare A on the comparator side never pair up.
	assert.Equal(t, 3, result.Summary.Total)
	assert.Equal(t, 2, result.Summary.OnlyInReference)
	assert.Equal(t, 1, result.Summary.OnlyInComparator)

	require.Len(t, result.DuplicateKeys.Reference, 1)
	assert.Equal(t, compare.DuplicateKey{Key: "A", Count: 2}, result.DuplicateKeys.Reference[0])
	assert.Empty(t, result.DuplicateKeys.Comparator)
}

func TestDatasetsSummaryAddsUp(t *testing.T) {
	ref := []compare.Row{
		{"id": "1", "v": "x"}, {"id": "2", "v": "y"}, {"id": "3", "v": "z"},
		{"id": "4", "v": "w"}, {"id": "4", "v": "w2"},
	}
	comp := []compare.Row{
		{"id": "1", "v": "x"}, {"id": "2", "v": "changed"}, {"id": "5", "v": "new"},
	}

	result, err := compare.Datasets(ref, comp, compare.Options{
		KeyColumns: []string{"id"},
		Fields:     []string{"v"},
	})
	require.NoError(t, err)

	s := result.Summary
	assert.Equal(t, s.Total, s.Matches+s.Differs+s.OnlyInReference+s.OnlyInComparator)
	assert.Equal(t, s.Total, len(result.Rows))
}

func TestDatasetsNormalization(t *testing.T) {
	ref := []compare.Row{{"id": "A", "amount": "1,234.56", "when": "01/15/2023"}}
	comp := []compare.Row{{"id": "A", "amount": "1.234,56", "when": "2023-01-15"}}
	fields := []string{"amount", "when"}

	withoutFlags, err := compare.Datasets(ref, comp, compare.Options{
		KeyColumns: []string{"id"},
		Fields:     fields,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, withoutFlags.Summary.Differs)

	withFlags, err := compare.Datasets(ref, comp, compare.Options{
		KeyColumns:       []string{"id"},
		Fields:           fields,
		NormalizeDates:   true,
		NormalizeNumbers: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, withFlags.Summary.Matches)
	assert.Equal(t, 0, withFlags.Summary.Differs)
}

func TestDatasetsDoesNotMutateInputs(t *testing.T) {
	ref := []compare.Row{{"id": "A", "v": 1}}
	comp := []compare.Row{{"id": "A", "v": 2}}

	_, err := compare.Datasets(ref, comp, compare.Options{
		KeyColumns: []string{"id"},
		Fields:     []string{"v"},
	})
	require.NoError(t, err)

	assert.Equal(t, compare.Row{"id": "A", "v": 1}, ref[0])
	assert.Equal(t, compare.Row{"id": "A", "v": 2}, comp[0])
}

func TestCompareRowThreshold(t *testing.T) {
	ref := compare.Row{"v": "2023-01-15"}
	comp := compare.Row{"v": "2023-01-16"}

	t.Run("Unset threshold uses the default", func(t *testing.T) {
		row := compare.CompareRow(ref, comp, []string{"v"}, compare.Options{})
		assert.Equal(t, diff.TypeCharDiff, row.Differences["v"].Type)
	})

	t.Run("Explicit zero forces whole-cell diffs", func(t *testing.T) {
		zero := 0.0
		row := compare.CompareRow(ref, comp, []string{"v"}, compare.Options{Threshold: &zero})
		assert.Equal(t, diff.TypeCellDiff, row.Differences["v"].Type)
		assert.Nil(t, row.Differences["v"].Segments)
	})
}

func TestCompareRow(t *testing.T) {
	t.Run("Match has nil differences", func(t *testing.T) {
		row := compare.CompareRow(
			compare.Row{"a": "1", "b": "2"},
			compare.Row{"a": "1", "b": "2"},
			[]string{"a", "b"},
			compare.Options{},
		)
		assert.Equal(t, compare.StatusMatch, row.Status)
		assert.Nil(t, row.Differences)
	})

	t.Run("Only mismatching fields get diffs", func(t *testing.T) {
		row := compare.CompareRow(
			compare.Row{"a": "1", "b": "2"},
			compare.Row{"a": "1", "b": "3"},
			[]string{"a", "b"},
			compare.Options{},
		)
		assert.Equal(t, compare.StatusDiffer, row.Status)
		assert.Len(t, row.Differences, 1)
		assert.Contains(t, row.Differences, "b")
	})

	t.Run("Empty field list compares all reference fields", func(t *testing.T) {
		row := compare.CompareRow(
			compare.Row{"a": "1", "b": "2"},
			compare.Row{"a": "1", "b": "changed entirely"},
			nil,
			compare.Options{},
		)
		assert.Equal(t, compare.StatusDiffer, row.Status)
		assert.Equal(t, diff.TypeCellDiff, row.Differences["b"].Type)
	})
}
