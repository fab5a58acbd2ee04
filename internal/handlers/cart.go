package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stylemart/shopbot-backend/internal/services"
)

// CartHandler handles cart requests
type CartHandler struct {
	contextManager *services.ContextManager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(contextManager *services.ContextManager) *CartHandler {
	return &CartHandler{contextManager: contextManager}
}

// AddItem adds a product to a session's cart.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req struct {
		SessionID string `json:"session_id"`
		ProductID uint   `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.SessionID == "" || req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID and product ID are required",
		})
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	result := h.contextManager.AddToCart(req.SessionID, req.ProductID, req.Quantity)
	if !result.Success {
		return c.Status(fiber.StatusNotFound).JSON(result)
	}
	return c.JSON(result)
}

// RemoveItem removes a product line from the cart. Removing a product that
// is not in the cart succeeds as a no-op.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	var req struct {
		SessionID string `json:"session_id"`
		ProductID uint   `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.SessionID == "" || req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID and product ID are required",
		})
	}

	result := h.contextManager.RemoveFromCart(req.SessionID, req.ProductID)
	if !result.Success {
		return c.Status(fiber.StatusNotFound).JSON(result)
	}
	return c.JSON(result)
}

// UpdateQuantity sets a cart line's quantity. Zero or negative removes the
// line.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var req struct {
		SessionID string `json:"session_id"`
		ProductID uint   `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.SessionID == "" || req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID and product ID are required",
		})
	}

	result := h.contextManager.UpdateCartQuantity(req.SessionID, req.ProductID, req.Quantity)
	if !result.Success {
		return c.Status(fiber.StatusNotFound).JSON(result)
	}
	return c.JSON(result)
}

// GetCart returns the priced cart view for a session.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	result := h.contextManager.GetCart(sessionID)
	if !result.Success {
		return c.Status(fiber.StatusNotFound).JSON(result)
	}
	return c.JSON(result)
}

// ClearCart empties a session's cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	if err := h.contextManager.ClearCart(sessionID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart cleared",
	})
}
