package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stylemart/shopbot-backend/internal/services"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// SessionHandler handles session lifecycle requests
type SessionHandler struct {
	contextManager *services.ContextManager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(contextManager *services.ContextManager) *SessionHandler {
	return &SessionHandler{contextManager: contextManager}
}

// CreateSession starts a new conversation session.
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req struct {
		CustomerID *uint  `json:"customer_id"`
		Channel    string `json:"channel"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Channel == "" {
		req.Channel = "web"
	}

	sessionID, err := h.contextManager.CreateSession(req.CustomerID, req.Channel)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"session_id": sessionID,
		"channel":    req.Channel,
	})
}

// GetSession returns one session record.
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	session, err := h.contextManager.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load session",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"session": session,
	})
}

// SwitchChannel moves an active session to a different channel, keeping the
// cart and conversation.
func (h *SessionHandler) SwitchChannel(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Channel == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Channel is required",
		})
	}

	result := h.contextManager.SwitchChannel(sessionID, req.Channel)
	if !result.Success {
		return c.Status(fiber.StatusNotFound).JSON(result)
	}
	return c.JSON(result)
}

// EndSession marks a session inactive.
func (h *SessionHandler) EndSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	if err := h.contextManager.EndSession(sessionID); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not end session",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Session ended",
	})
}
