package comparison

import (
	"context"

	"config-compare/core/task"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	logger  *zap.Logger
}

// NewFeature creates the comparison feature.
func NewFeature(logger *zap.Logger, cfg task.Config) *Feature {
	svc := NewService(logger, cfg)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h, logger: logger}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "comparison"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers routes and warms up the background worker.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)

	// Warm up in the background; a failed bring-up is retried
	// transparently on the first submission.
	go func() {
		if err := f.service.Start(context.Background()); err != nil {
			f.logger.Warn("Comparison worker warm-up failed", zap.Error(err))
		}
	}()

	return nil
}

// Close terminates the feature's background worker.
func (f *Feature) Close() {
	f.service.Close()
}
