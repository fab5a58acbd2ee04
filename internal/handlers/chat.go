package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stylemart/shopbot-backend/internal/agents"
	"github.com/stylemart/shopbot-backend/internal/channels"
	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// ChatHandler handles conversation requests
type ChatHandler struct {
	orchestrator *agents.Orchestrator
	sales        *agents.SalesAgent
	store        storage.Store
}

// NewChatHandler creates a new chat handler
func NewChatHandler(orchestrator *agents.Orchestrator, sales *agents.SalesAgent, store storage.Store) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		sales:        sales,
		store:        store,
	}
}

// Chat handles a plain conversation turn: generator reply only, no worker
// dispatch.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req struct {
		Message    string `json:"message"`
		CustomerID *uint  `json:"customer_id"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	var customer *models.Customer
	if req.CustomerID != nil {
		if found, err := h.store.GetCustomer(*req.CustomerID); err == nil {
			customer = found
		}
	}

	result := h.sales.Execute(c.UserContext(), req.Message, customer)

	return c.JSON(fiber.Map{
		"success":  true,
		"response": result.Response,
		"intent":   result.Intent,
	})
}

// SmartChat runs the full orchestrated turn with worker dispatch.
func (h *ChatHandler) SmartChat(c *fiber.Ctx) error {
	var req agents.TurnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	resp := h.orchestrator.HandleTurn(c.UserContext(), req)
	return c.JSON(resp)
}

// ChannelChat runs an orchestrated turn and renders the result for the
// requested channel.
func (h *ChatHandler) ChannelChat(c *fiber.Ctx) error {
	var req agents.TurnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	ch := channels.Parse(req.Channel)
	req.Channel = string(ch)

	resp := h.orchestrator.HandleTurn(c.UserContext(), req)
	return c.JSON(channels.Format(ch, resp))
}
