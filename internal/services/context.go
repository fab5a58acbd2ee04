package services

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	logx "github.com/stylemart/shopbot-backend/pkg/logger"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// ContextManager manages conversation sessions and the shopping cart across
// channels. Every mutation reads the whole session, modifies it in memory
// and writes it back as one unit: concurrent turns on the same session are
// last-write-wins, with no per-session locking.
type ContextManager struct {
	store storage.Store
}

// NewContextManager creates a new context manager
func NewContextManager(store storage.Store) *ContextManager {
	return &ContextManager{store: store}
}

// CartViewItem is one priced line in a cart view.
type CartViewItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Brand     string  `json:"brand"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartResult is the envelope returned by all cart operations.
type CartResult struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message,omitempty"`
	Cart       []CartViewItem `json:"cart"`
	CartCount  int            `json:"cart_count"`
	TotalItems int            `json:"total_items"`
	Subtotal   float64        `json:"subtotal"`
}

// SwitchResult is returned by SwitchChannel.
type SwitchResult struct {
	Success              bool   `json:"success"`
	Message              string `json:"message"`
	SessionID            string `json:"session_id,omitempty"`
	NewChannel           string `json:"new_channel,omitempty"`
	ContextPreserved     bool   `json:"context_preserved,omitempty"`
	CartItems            int    `json:"cart_items,omitempty"`
	ConversationMessages int    `json:"conversation_messages,omitempty"`
}

// CreateSession creates a new chat session, anonymous when customerID is nil.
func (cm *ContextManager) CreateSession(customerID *uint, channel string) (string, error) {
	sessionID := fmt.Sprintf("session-%s", uuid.NewString()[:12])

	session := &models.ChatSession{
		SessionID:  sessionID,
		CustomerID: customerID,
		Channel:    channel,
		Context:    models.JSONMap{},
		Messages:   models.MessageLog{},
		Cart:       models.CartLines{},
		IsActive:   true,
	}

	if _, err := cm.store.CreateSession(session); err != nil {
		return "", err
	}

	logx.Info().Str("session_id", sessionID).Str("channel", channel).Msg("session created")
	return sessionID, nil
}

// GetSession returns the session record or nil when absent.
func (cm *ContextManager) GetSession(sessionID string) (*models.ChatSession, error) {
	return cm.store.GetSession(sessionID)
}

// AddMessage appends one entry to the session's conversation log.
func (cm *ContextManager) AddMessage(sessionID, role, content string) error {
	session, err := cm.store.GetSession(sessionID)
	if err != nil {
		return err
	}

	session.Messages = append(session.Messages, models.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	return cm.store.UpdateSession(session)
}

// UpdateContext merges one key into the session's context map.
func (cm *ContextManager) UpdateContext(sessionID, key string, value interface{}) error {
	session, err := cm.store.GetSession(sessionID)
	if err != nil {
		return err
	}

	if session.Context == nil {
		session.Context = models.JSONMap{}
	}
	session.Context[key] = value
	return cm.store.UpdateSession(session)
}

// AddToCart adds quantity of a product to the session cart. A line already
// holding the product has its quantity incremented instead of duplicating.
func (cm *ContextManager) AddToCart(sessionID string, productID uint, quantity int) *CartResult {
	session, err := cm.store.GetSession(sessionID)
	if err != nil {
		return &CartResult{Success: false, Message: "Session not found"}
	}

	merged := false
	for i := range session.Cart {
		if session.Cart[i].ProductID == productID {
			session.Cart[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		session.Cart = append(session.Cart, models.CartLine{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}

	if err := cm.store.UpdateSession(session); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("cart update failed")
		return &CartResult{Success: false, Message: "Failed to update cart"}
	}
	return cm.GetCart(sessionID)
}

// RemoveFromCart deletes the matching line. A missing product is a no-op,
// not an error.
func (cm *ContextManager) RemoveFromCart(sessionID string, productID uint) *CartResult {
	session, err := cm.store.GetSession(sessionID)
	if err != nil {
		return &CartResult{Success: false, Message: "Session not found"}
	}

	kept := session.Cart[:0]
	for _, line := range session.Cart {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	session.Cart = kept

	if err := cm.store.UpdateSession(session); err != nil {
		return &CartResult{Success: false, Message: "Failed to update cart"}
	}
	return cm.GetCart(sessionID)
}

// UpdateCartQuantity overwrites a line's quantity; quantity <= 0 removes the
// line.
func (cm *ContextManager) UpdateCartQuantity(sessionID string, productID uint, quantity int) *CartResult {
	if quantity <= 0 {
		return cm.RemoveFromCart(sessionID, productID)
	}

	session, err := cm.store.GetSession(sessionID)
	if err != nil {
		return &CartResult{Success: false, Message: "Session not found"}
	}

	for i := range session.Cart {
		if session.Cart[i].ProductID == productID {
			session.Cart[i].Quantity = quantity
			break
		}
	}

	if err := cm.store.UpdateSession(session); err != nil {
		return &CartResult{Success: false, Message: "Failed to update cart"}
	}
	return cm.GetCart(sessionID)
}

// GetCart prices the session's cart against the live catalog. Lines whose
// product no longer resolves are silently dropped from the view; the stored
// cart is untouched.
func (cm *ContextManager) GetCart(sessionID string) *CartResult {
	session, err := cm.store.GetSession(sessionID)
	if err != nil {
		return &CartResult{Success: false, Message: "Session not found"}
	}

	items := make([]CartViewItem, 0, len(session.Cart))
	subtotal := 0.0
	totalItems := 0

	for _, line := range session.Cart {
		product, err := cm.store.GetProduct(line.ProductID)
		if err != nil {
			// deleted or unknown product: excluded from the priced view
			continue
		}

		lineSubtotal := product.Price * float64(line.Quantity)
		items = append(items, CartViewItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Brand:     product.Brand,
			Image:     product.FirstImage(),
			Quantity:  line.Quantity,
			Subtotal:  round2(lineSubtotal),
		})
		subtotal += lineSubtotal
		totalItems += line.Quantity
	}

	return &CartResult{
		Success:    true,
		Cart:       items,
		CartCount:  len(items),
		TotalItems: totalItems,
		Subtotal:   round2(subtotal),
	}
}

// ClearCart removes all cart lines.
func (cm *ContextManager) ClearCart(sessionID string) error {
	session, err := cm.store.GetSession(sessionID)
	if err != nil {
		return err
	}
	session.Cart = models.CartLines{}
	return cm.store.UpdateSession(session)
}

// SwitchChannel moves the session to a new channel, preserving context,
// messages and cart.
func (cm *ContextManager) SwitchChannel(sessionID string, newChannel string) *SwitchResult {
	session, err := cm.store.GetSession(sessionID)
	if err != nil {
		return &SwitchResult{Success: false, Message: "Session not found"}
	}

	oldChannel := session.Channel
	session.Channel = newChannel

	if err := cm.store.UpdateSession(session); err != nil {
		return &SwitchResult{Success: false, Message: "Channel switch failed"}
	}

	logx.Info().Str("session_id", sessionID).Str("from", oldChannel).Str("to", newChannel).Msg("channel switched")
	return &SwitchResult{
		Success:              true,
		Message:              fmt.Sprintf("Switched from %s to %s", oldChannel, newChannel),
		SessionID:            sessionID,
		NewChannel:           newChannel,
		ContextPreserved:     true,
		CartItems:            len(session.Cart),
		ConversationMessages: len(session.Messages),
	}
}

// EndSession flags the session inactive. Session records are never deleted.
func (cm *ContextManager) EndSession(sessionID string) error {
	session, err := cm.store.GetSession(sessionID)
	if err != nil {
		return err
	}
	session.IsActive = false
	return cm.store.UpdateSession(session)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
