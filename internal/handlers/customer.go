package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/stylemart/shopbot-backend/internal/agents"
	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/services"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// CustomerHandler handles customer, loyalty and checkout requests
type CustomerHandler struct {
	store          storage.Store
	loyalty        *agents.LoyaltyAgent
	payment        *agents.PaymentAgent
	contextManager *services.ContextManager
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(store storage.Store, loyalty *agents.LoyaltyAgent, payment *agents.PaymentAgent, contextManager *services.ContextManager) *CustomerHandler {
	return &CustomerHandler{
		store:          store,
		loyalty:        loyalty,
		payment:        payment,
		contextManager: contextManager,
	}
}

// ListCustomers returns every customer record.
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.store.GetAllCustomers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load customers",
		})
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"count":     len(customers),
		"customers": customers,
	})
}

// GetCustomer returns one customer by ID.
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	customer, err := h.store.GetCustomer(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrCustomerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Customer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load customer",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"customer": customer,
	})
}

// LoyaltyStatus returns the loyalty program view for a customer.
func (h *CustomerHandler) LoyaltyStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	result := h.loyalty.Execute(uint(id))
	if !result.Success {
		return c.Status(fiber.StatusNotFound).JSON(result)
	}
	return c.JSON(result)
}

// LoyaltyOffers returns tier-targeted promotions for a customer.
func (h *CustomerHandler) LoyaltyOffers(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	customer, err := h.store.GetCustomer(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Customer not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tier":    customer.Tier(),
		"offers":  h.loyalty.OffersFor(customer.Tier()),
	})
}

// Checkout charges a session's cart through the payment agent.
func (h *CustomerHandler) Checkout(c *fiber.Ctx) error {
	var req struct {
		SessionID     string `json:"session_id"`
		CustomerID    *uint  `json:"customer_id"`
		PaymentMethod string `json:"payment_method"`
		CouponCode    string `json:"coupon_code"`
		PointsToUse   int    `json:"points_to_use"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required",
		})
	}

	cart := h.contextManager.GetCart(req.SessionID)
	if !cart.Success {
		return c.Status(fiber.StatusNotFound).JSON(cart)
	}

	customer := h.resolveCustomer(req.CustomerID, req.SessionID)

	result := h.payment.Checkout(customer, cart.Cart, agents.CheckoutOptions{
		PaymentMethod: req.PaymentMethod,
		CouponCode:    req.CouponCode,
		PointsToUse:   req.PointsToUse,
	})
	if result.Success {
		if err := h.contextManager.ClearCart(req.SessionID); err != nil {
			// order already charged, cart cleanup is best effort
			result.Message += " (cart cleanup pending)"
		}
		return c.JSON(result)
	}

	status := fiber.StatusPaymentRequired
	if result.ErrorType == "empty_cart" || result.ErrorType == "invalid_payment_method" {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(result)
}

func (h *CustomerHandler) resolveCustomer(customerID *uint, sessionID string) *models.Customer {
	id := customerID
	if id == nil {
		if session, err := h.contextManager.GetSession(sessionID); err == nil {
			id = session.CustomerID
		}
	}
	if id == nil {
		return nil
	}
	customer, err := h.store.GetCustomer(*id)
	if err != nil {
		return nil
	}
	return customer
}
