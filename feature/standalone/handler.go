package standalone

import (
	"milvus-server/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Reporter exposes the supervisor state to the status endpoint.
type Reporter interface {
	Status() Status
	ConfigItems() []ConfigItem
}

// Handler handles HTTP requests for the local status endpoint.
type Handler struct {
	reporter Reporter
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(reporter Reporter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{reporter: reporter, logger: logger}
}

// RegisterRoutes registers the server routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/server")
	group.Get("/status", h.HandleStatus)
	group.Get("/config", h.HandleConfig)
}

// HandleStatus returns the supervisor state.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	st := h.reporter.Status()
	logger.WithRayID(h.logger, c).Debug("Status requested", zap.String("state", st.State))
	return c.JSON(st)
}

// HandleConfig returns the template variables and their current values.
func (h *Handler) HandleConfig(c *fiber.Ctx) error {
	items := h.reporter.ConfigItems()
	logger.WithRayID(h.logger, c).Debug("Configuration requested", zap.Int("items", len(items)))
	return c.JSON(fiber.Map{"items": items})
}
