package services

import (
	"fmt"

	"github.com/stylemart/shopbot-backend/internal/storage"
)

// ErrorRecoveryService turns failure states into actionable next steps for
// the customer instead of dead-end error text.
type ErrorRecoveryService struct {
	store storage.Store
}

// NewErrorRecoveryService creates a new error recovery service
func NewErrorRecoveryService(store storage.Store) *ErrorRecoveryService {
	return &ErrorRecoveryService{store: store}
}

// RecoveryPlan is the customer-facing recovery proposal for one failure.
type RecoveryPlan struct {
	Success      bool             `json:"success"`
	ErrorType    string           `json:"error_type"`
	Message      string           `json:"message"`
	Options      []RecoveryChoice `json:"options"`
	Alternatives []AltProduct     `json:"alternatives,omitempty"`
}

// RecoveryChoice is one path the customer can take.
type RecoveryChoice struct {
	Action      string `json:"action"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// AltProduct is a substitute suggestion attached to stock failures.
type AltProduct struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Brand     string  `json:"brand"`
	Rating    float64 `json:"rating"`
}

// HandleOutOfStock proposes substitutes and waitlist options for an
// unavailable product.
func (s *ErrorRecoveryService) HandleOutOfStock(productID uint) *RecoveryPlan {
	plan := &RecoveryPlan{
		Success:   true,
		ErrorType: "out_of_stock",
		Options: []RecoveryChoice{
			{Action: "notify_me", Label: "Notify me", Description: "Get an alert when it's back in stock"},
			{Action: "see_alternatives", Label: "See similar items", Description: "Browse in-stock alternatives"},
			{Action: "check_stores", Label: "Check other stores", Description: "It may be available nearby"},
		},
	}

	product, err := s.store.GetProduct(productID)
	if err != nil {
		plan.Message = "That item is currently unavailable, but here are some options:"
		return plan
	}
	plan.Message = fmt.Sprintf("%s is currently out of stock, but here are some options:", product.Name)

	similar, err := s.store.GetProductsByCategory(product.Category, product.ID, 3)
	if err == nil {
		for _, p := range similar {
			if p.Inventory.TotalAvailable() <= 0 {
				continue
			}
			plan.Alternatives = append(plan.Alternatives, AltProduct{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Brand:     p.Brand,
				Rating:    p.Rating,
			})
		}
	}
	return plan
}

// HandlePaymentFailure maps a gateway error type to recovery choices.
func (s *ErrorRecoveryService) HandlePaymentFailure(errorType string) *RecoveryPlan {
	plan := &RecoveryPlan{Success: true, ErrorType: errorType}

	switch errorType {
	case "insufficient_funds":
		plan.Message = "Your payment couldn't be completed due to insufficient funds."
		plan.Options = []RecoveryChoice{
			{Action: "different_payment", Label: "Use another payment method", Description: "Try a different card or wallet"},
			{Action: "remove_items", Label: "Adjust your cart", Description: "Remove items to lower the total"},
			{Action: "save_cart", Label: "Save for later", Description: "We'll hold your cart"},
		}
	case "card_declined":
		plan.Message = "Your card was declined by the bank."
		plan.Options = []RecoveryChoice{
			{Action: "retry", Label: "Try again", Description: "Retry the same card"},
			{Action: "different_payment", Label: "Use another payment method", Description: "Try a different card or wallet"},
			{Action: "contact_bank", Label: "Contact your bank", Description: "The bank may need to approve the charge"},
		}
	case "network_error":
		plan.Message = "We hit a connection problem while processing your payment."
		plan.Options = []RecoveryChoice{
			{Action: "retry", Label: "Try again", Description: "Retry the payment now"},
			{Action: "wait", Label: "Wait a moment", Description: "Give it a minute and retry"},
		}
	default:
		plan.Message = "Something went wrong with your payment."
		plan.Options = []RecoveryChoice{
			{Action: "retry", Label: "Try again", Description: "Retry the payment"},
			{Action: "contact_support", Label: "Contact support", Description: "Our team can finish the order with you"},
		}
	}
	return plan
}

// HandleConnectionError is the generic degraded-mode plan when a backing
// dependency is unreachable.
func (s *ErrorRecoveryService) HandleConnectionError() *RecoveryPlan {
	return &RecoveryPlan{
		Success:   true,
		ErrorType: "connection_error",
		Message:   "We're having trouble reaching part of our system. You can still:",
		Options: []RecoveryChoice{
			{Action: "browse_cached", Label: "Keep browsing", Description: "Product browsing still works"},
			{Action: "retry", Label: "Try again shortly", Description: "The issue is usually brief"},
			{Action: "contact_support", Label: "Contact support", Description: "Order by phone or chat with our team"},
		},
	}
}
