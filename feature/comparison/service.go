package comparison

import (
	"context"
	"fmt"

	"config-compare/core/compare"
	"config-compare/core/diff"
	"config-compare/core/task"

	"go.uber.org/zap"
)

// Task types exposed by the comparison worker. They map 1:1 onto the
// engine's entry points.
const (
	TaskCompareDatasets  = "compare-datasets"
	TaskCompareCells     = "compare-cells"
	TaskReconcileColumns = "reconcile-columns"
	TaskPing             = "ping"
)

// DatasetsRequest is the payload for a compare-datasets task.
type DatasetsRequest struct {
	Reference  []compare.Row   `json:"reference"`
	Comparator []compare.Row   `json:"comparator"`
	Options    compare.Options `json:"options"`
}

// CellsRequest is the payload for a compare-cells task. An omitted
// threshold selects the engine default.
type CellsRequest struct {
	Reference  string   `json:"reference"`
	Comparator string   `json:"comparator"`
	Threshold  *float64 `json:"threshold,omitempty"`
}

// ColumnsRequest is the payload for a reconcile-columns task.
type ColumnsRequest struct {
	Reference  []string `json:"reference"`
	Comparator []string `json:"comparator"`
}

// Service dispatches comparison work through a supervised task manager.
type Service struct {
	logger  *zap.Logger
	manager *task.Manager
}

// NewService creates the service and registers the engine's task
// handlers on a fresh manager.
func NewService(logger *zap.Logger, cfg task.Config) *Service {
	m := task.NewManager(logger, task.WithConfig(cfg))
	m.Register(TaskCompareDatasets, handleCompareDatasets)
	m.Register(TaskCompareCells, handleCompareCells)
	m.Register(TaskReconcileColumns, handleReconcileColumns)
	m.Register(TaskPing, handlePing)

	return &Service{logger: logger, manager: m}
}

// Start brings the background worker up eagerly so the first request
// does not pay the bring-up cost.
func (s *Service) Start(ctx context.Context) error {
	return s.manager.Initialize(ctx)
}

// Close terminates the background worker.
func (s *Service) Close() {
	s.manager.Terminate()
}

// CompareDatasets runs a full dataset comparison off the caller's path.
func (s *Service) CompareDatasets(ctx context.Context, req DatasetsRequest, opts ...task.ExecuteOption) (*compare.Result, error) {
	res, err := s.manager.Execute(ctx, TaskCompareDatasets, req, opts...)
	if err != nil {
		return nil, err
	}
	result, ok := res.(*compare.Result)
	if !ok {
		return nil, fmt.Errorf("unexpected compare-datasets result type %T", res)
	}
	return result, nil
}

// CompareCells runs a single-pair adaptive cell diff.
func (s *Service) CompareCells(ctx context.Context, req CellsRequest) (diff.CellResult, error) {
	res, err := s.manager.Execute(ctx, TaskCompareCells, req)
	if err != nil {
		return diff.CellResult{}, err
	}
	result, ok := res.(diff.CellResult)
	if !ok {
		return diff.CellResult{}, fmt.Errorf("unexpected compare-cells result type %T", res)
	}
	return result, nil
}

// ReconcileColumns compares two header lists.
func (s *Service) ReconcileColumns(ctx context.Context, req ColumnsRequest) (compare.ColumnReport, error) {
	res, err := s.manager.Execute(ctx, TaskReconcileColumns, req)
	if err != nil {
		return compare.ColumnReport{}, err
	}
	report, ok := res.(compare.ColumnReport)
	if !ok {
		return compare.ColumnReport{}, fmt.Errorf("unexpected reconcile-columns result type %T", res)
	}
	return report, nil
}

// Ping round-trips the worker, proving liveness before a caller commits
// to a long comparison.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.manager.Execute(ctx, TaskPing, nil)
	return err
}

func handleCompareDatasets(ctx context.Context, data any, report func(task.Progress)) (any, error) {
	req, ok := data.(DatasetsRequest)
	if !ok {
		return nil, fmt.Errorf("compare-datasets: unexpected payload type %T", data)
	}

	report(task.Progress{Stage: "comparing", Percent: 0})
	result, err := compare.Datasets(req.Reference, req.Comparator, req.Options)
	if err != nil {
		return nil, err
	}
	report(task.Progress{Stage: "done", Percent: 100})
	return result, nil
}

func handleCompareCells(ctx context.Context, data any, report func(task.Progress)) (any, error) {
	req, ok := data.(CellsRequest)
	if !ok {
		return nil, fmt.Errorf("compare-cells: unexpected payload type %T", data)
	}
	threshold := diff.DefaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	return diff.Adaptive(req.Reference, req.Comparator, threshold), nil
}

func handleReconcileColumns(ctx context.Context, data any, report func(task.Progress)) (any, error) {
	req, ok := data.(ColumnsRequest)
	if !ok {
		return nil, fmt.Errorf("reconcile-columns: unexpected payload type %T", data)
	}
	return compare.ReconcileColumns(req.Reference, req.Comparator), nil
}

func handlePing(ctx context.Context, data any, report func(task.Progress)) (any, error) {
	return "pong", nil
}
