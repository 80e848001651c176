package comparison_test

import (
	"context"
	"testing"

	"config-compare/core/compare"
	"config-compare/core/diff"
	"config-compare/core/task"
	"config-compare/feature/comparison"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *comparison.Service {
	t.Helper()
	svc := comparison.NewService(zap.NewNop(), task.Config{})
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Close)
	return svc
}

func TestServiceCompareDatasets(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.CompareDatasets(context.Background(), comparison.DatasetsRequest{
		Reference: []compare.Row{
			{"id": "A", "v": "1"},
			{"id": "B", "v": "2"},
			{"id": "C", "v": "3"},
		},
		Comparator: []compare.Row{
			{"id": "A", "v": "1"},
			{"id": "B", "v": "99"},
			{"id": "D", "v": "4"},
		},
		Options: compare.Options{
			KeyColumns: []string{"id"},
			Fields:     []string{"v"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, compare.Summary{
		Matches:          1,
		Differs:          1,
		OnlyInReference:  1,
		OnlyInComparator: 1,
		Total:            4,
	}, result.Summary)
}

func TestServiceCompareDatasetsInputError(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CompareDatasets(context.Background(), comparison.DatasetsRequest{
		Options: compare.Options{MatchMode: compare.MatchModeKey},
	})

	require.Error(t, err)
	var inputErr *compare.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestServiceCompareDatasetsProgress(t *testing.T) {
	svc := newTestService(t)

	var stages []string
	_, err := svc.CompareDatasets(context.Background(), comparison.DatasetsRequest{
		Reference:  []compare.Row{{"id": "A"}},
		Comparator: []compare.Row{{"id": "A"}},
		Options:    compare.Options{KeyColumns: []string{"id"}},
	}, task.WithProgress(func(p task.Progress) {
		stages = append(stages, p.Stage)
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"comparing", "done"}, stages)
}

func TestServiceCompareCells(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.CompareCells(context.Background(), comparison.CellsRequest{
		Reference:  "2023-01-15",
		Comparator: "2023-01-16",
	})
	require.NoError(t, err)

	assert.Equal(t, diff.TypeCharDiff, result.Type)
	assert.True(t, result.Changed)
}

func TestServiceCompareCellsZeroThreshold(t *testing.T) {
	svc := newTestService(t)

	zero := 0.0
	result, err := svc.CompareCells(context.Background(), comparison.CellsRequest{
		Reference:  "2023-01-15",
		Comparator: "2023-01-16",
		Threshold:  &zero,
	})
	require.NoError(t, err)

	assert.Equal(t, diff.TypeCellDiff, result.Type)
	assert.Nil(t, result.Segments)
}

func TestServiceReconcileColumns(t *testing.T) {
	svc := newTestService(t)

	report, err := svc.ReconcileColumns(context.Background(), comparison.ColumnsRequest{
		Reference:  []string{"ID", "Name"},
		Comparator: []string{"id", "name"},
	})
	require.NoError(t, err)

	assert.True(t, report.IsExactMatch)
	assert.Equal(t, []string{"ID", "Name"}, report.Common)
}

func TestServicePing(t *testing.T) {
	svc := newTestService(t)

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestServicePingAfterClose(t *testing.T) {
	svc := comparison.NewService(zap.NewNop(), task.Config{})
	require.NoError(t, svc.Start(context.Background()))
	svc.Close()

	assert.ErrorIs(t, svc.Ping(context.Background()), task.ErrTerminated)
}
