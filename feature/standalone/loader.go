package standalone

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates the status feature for a supervisor.
func NewFeature(reporter Reporter, logger *zap.Logger, enabled bool) *Feature {
	return &Feature{handler: NewHandler(reporter, logger), enabled: enabled}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "standalone"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
