package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stylemart/shopbot-backend/internal/services"
)

// AnalyticsHandler handles business metrics requests
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
	recovery  *services.ErrorRecoveryService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics *services.AnalyticsService, recovery *services.ErrorRecoveryService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		recovery:  recovery,
	}
}

// Metrics returns the business metrics snapshot.
func (h *AnalyticsHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.analytics.Metrics()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not compute metrics",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"metrics": metrics,
	})
}

// ROI projects monthly and annual benefit from the supplied assumptions.
func (h *AnalyticsHandler) ROI(c *fiber.Ctx) error {
	var input services.ROIInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"roi":     h.analytics.CalculateROI(input),
	})
}

// RecoveryOptions returns the recovery plan for a reported failure.
func (h *AnalyticsHandler) RecoveryOptions(c *fiber.Ctx) error {
	var req struct {
		ErrorType string `json:"error_type"`
		ProductID uint   `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	switch req.ErrorType {
	case "out_of_stock":
		return c.JSON(h.recovery.HandleOutOfStock(req.ProductID))
	case "connection_error":
		return c.JSON(h.recovery.HandleConnectionError())
	case "":
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Error type is required",
		})
	default:
		return c.JSON(h.recovery.HandlePaymentFailure(req.ErrorType))
	}
}
