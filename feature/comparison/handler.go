package comparison

import (
	"errors"

	"config-compare/core/compare"
	"config-compare/core/logger"
	"config-compare/core/task"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for dataset comparison.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Post("/datasets", h.HandleCompareDatasets)
	group.Post("/cells", h.HandleCompareCells)
	group.Post("/columns", h.HandleReconcileColumns)
	group.Get("/ping", h.HandlePing)
}

// HandleCompareDatasets runs a full dataset comparison.
// @Summary Compare Datasets
// @Description Compares two datasets row-by-row and field-by-field, returning per-row statuses, cell diffs, a summary and duplicate key reports.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body DatasetsRequest true "Datasets and comparison options"
// @Success 200 {object} compare.Result "Comparison Result"
// @Failure 400 {object} map[string]string "Invalid Input"
// @Failure 504 {object} map[string]string "Comparison Timed Out"
// @Router /compare/datasets [post]
func (h *Handler) HandleCompareDatasets(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req DatasetsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	l.Info("Comparing datasets",
		zap.Int("reference_rows", len(req.Reference)),
		zap.Int("comparator_rows", len(req.Comparator)),
		zap.String("match_mode", string(req.Options.MatchMode)),
	)

	result, err := h.service.CompareDatasets(c.Context(), req)
	if err != nil {
		return h.errorResponse(c, l, err)
	}

	return c.JSON(result)
}

// HandleCompareCells diffs a single pair of cell values.
// @Summary Compare Cells
// @Description Computes an adaptive diff for a single pair of values: unchanged, inline character diff, or whole-cell replacement.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body CellsRequest true "Cell values and threshold"
// @Success 200 {object} diff.CellResult "Cell Diff"
// @Failure 400 {object} map[string]string "Invalid Input"
// @Router /compare/cells [post]
func (h *Handler) HandleCompareCells(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CellsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.CompareCells(c.Context(), req)
	if err != nil {
		return h.errorResponse(c, l, err)
	}

	return c.JSON(result)
}

// HandleReconcileColumns reconciles two header lists.
// @Summary Reconcile Columns
// @Description Case-insensitive comparison of two header lists: common columns, one-sided columns, and an exact-match flag.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body ColumnsRequest true "Header lists"
// @Success 200 {object} compare.ColumnReport "Column Report"
// @Failure 400 {object} map[string]string "Invalid Input"
// @Router /compare/columns [post]
func (h *Handler) HandleReconcileColumns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ColumnsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	report, err := h.service.ReconcileColumns(c.Context(), req)
	if err != nil {
		return h.errorResponse(c, l, err)
	}

	return c.JSON(report)
}

// HandlePing checks worker liveness.
// @Summary Ping Worker
// @Description Round-trips the background worker to prove it is alive before committing to a long comparison.
// @Tags compare
// @Produce json
// @Success 200 {object} map[string]string "Worker Alive"
// @Failure 503 {object} map[string]string "Worker Unavailable"
// @Router /compare/ping [get]
func (h *Handler) HandlePing(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Ping(c.Context()); err != nil {
		l.Error("Worker ping failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// errorResponse maps engine and task errors onto HTTP statuses.
func (h *Handler) errorResponse(c *fiber.Ctx, l *zap.Logger, err error) error {
	var inputErr *compare.InputError
	switch {
	case errors.As(err, &inputErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, task.ErrTimeout):
		l.Warn("Comparison timed out")
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, task.ErrWorkerCrashed), errors.Is(err, task.ErrTerminated):
		l.Error("Comparison worker unavailable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Comparison failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
