package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/stylemart/shopbot-backend/internal/agents"
	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// ProductHandler handles catalog, inventory and recommendation requests
type ProductHandler struct {
	store           storage.Store
	recommendations *agents.RecommendationAgent
	inventory       *agents.InventoryAgent
}

// NewProductHandler creates a new product handler
func NewProductHandler(store storage.Store, recommendations *agents.RecommendationAgent, inventory *agents.InventoryAgent) *ProductHandler {
	return &ProductHandler{
		store:           store,
		recommendations: recommendations,
		inventory:       inventory,
	}
}

// ListProducts returns the catalog, optionally filtered by category and
// price ceiling.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	filter := &models.ProductFilter{
		Category: c.Query("category"),
	}
	if raw := c.Query("max_price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = price
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	products, err := h.store.SearchProducts(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load products",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// GetProduct returns one product by ID.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	product, err := h.store.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load product",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// Recommendations runs the recommendation agent directly.
func (h *ProductHandler) Recommendations(c *fiber.Ctx) error {
	var req struct {
		CustomerID *uint   `json:"customer_id"`
		Occasion   string  `json:"occasion"`
		Budget     float64 `json:"budget"`
		Category   string  `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	query := agents.RecommendationQuery{
		Occasion: req.Occasion,
		Budget:   req.Budget,
		Category: req.Category,
	}
	if req.CustomerID != nil {
		if customer, err := h.store.GetCustomer(*req.CustomerID); err == nil {
			query.Customer = customer
		}
	}

	result := h.recommendations.Execute(c.UserContext(), query)
	return c.JSON(result)
}

// CheckInventory reports availability for a list of products.
func (h *ProductHandler) CheckInventory(c *fiber.Ctx) error {
	var req struct {
		Items []agents.InventoryRequest `json:"items"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one item is required",
		})
	}

	return c.JSON(h.inventory.CheckMultiple(req.Items))
}

// ReserveItems soft-reserves stock for a list of products.
func (h *ProductHandler) ReserveItems(c *fiber.Ctx) error {
	var req struct {
		Items []agents.InventoryRequest `json:"items"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one item is required",
		})
	}

	result := h.inventory.ReserveItems(req.Items)
	if !result.Success {
		return c.Status(fiber.StatusConflict).JSON(result)
	}
	return c.JSON(result)
}
