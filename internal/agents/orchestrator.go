package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	logx "github.com/stylemart/shopbot-backend/pkg/logger"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/services"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// Orchestrator runs one conversation turn end to end: classify, dispatch
// the required workers, then merge everything into a single response.
// Workers run sequentially and a failing worker contributes a tagged
// failure record instead of aborting its siblings.
type Orchestrator struct {
	store           storage.Store
	contextManager  *services.ContextManager
	sales           *SalesAgent
	recommendations *RecommendationAgent
	inventory       *InventoryAgent
	loyalty         *LoyaltyAgent
	payment         *PaymentAgent
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	store storage.Store,
	contextManager *services.ContextManager,
	sales *SalesAgent,
	recommendations *RecommendationAgent,
	inventory *InventoryAgent,
	loyalty *LoyaltyAgent,
	payment *PaymentAgent,
) *Orchestrator {
	return &Orchestrator{
		store:           store,
		contextManager:  contextManager,
		sales:           sales,
		recommendations: recommendations,
		inventory:       inventory,
		loyalty:         loyalty,
		payment:         payment,
	}
}

// TurnRequest is one customer message plus its addressing.
type TurnRequest struct {
	Message    string `json:"message"`
	SessionID  string `json:"session_id,omitempty"`
	CustomerID *uint  `json:"customer_id,omitempty"`
	Channel    string `json:"channel,omitempty"`
}

const apologyMessage = "I'm having trouble processing that right now. Let me help you differently."

// HandleTurn processes one message. The returned response is always
// well-formed: unexpected internal failures degrade to a generic apology
// with Success false.
func (o *Orchestrator) HandleTurn(ctx context.Context, req TurnRequest) *UnifiedResponse {
	resp, err := o.handleTurn(ctx, req)
	if err != nil {
		logx.Error().Err(err).Str("session_id", req.SessionID).Msg("turn failed")
		return &UnifiedResponse{
			Success:   false,
			Message:   apologyMessage,
			Error:     err.Error(),
			Timestamp: time.Now(),
			SessionID: req.SessionID,
		}
	}
	return resp
}

func (o *Orchestrator) handleTurn(ctx context.Context, req TurnRequest) (*UnifiedResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("empty message")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		channel := req.Channel
		if channel == "" {
			channel = "web"
		}
		created, err := o.contextManager.CreateSession(req.CustomerID, channel)
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		sessionID = created
	}

	session, err := o.contextManager.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if err := o.contextManager.AddMessage(sessionID, "user", req.Message); err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("could not log user message")
	}

	customer := o.loadCustomer(req.CustomerID, session)

	sales := o.sales.Execute(ctx, req.Message, customer)

	var results workerResults
	if sales.Intent != IntentViewCart {
		results = o.dispatch(ctx, sales, req.Message, sessionID, customer)
	}

	resp := o.synthesize(sales, &results, sessionID, customer)

	if err := o.contextManager.AddMessage(sessionID, "assistant", resp.Message); err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("could not log assistant message")
	}
	return resp, nil
}

func (o *Orchestrator) loadCustomer(customerID *uint, session *models.ChatSession) *models.Customer {
	id := customerID
	if id == nil && session != nil {
		id = session.CustomerID
	}
	if id == nil {
		return nil
	}
	customer, err := o.store.GetCustomer(*id)
	if err != nil {
		logx.Warn().Err(err).Uint("customer_id", *id).Msg("customer lookup failed")
		return nil
	}
	return customer
}

// dispatch runs every required worker in order. Each worker's failure is
// captured in its own record.
func (o *Orchestrator) dispatch(ctx context.Context, sales *SalesResult, message, sessionID string, customer *models.Customer) workerResults {
	var results workerResults

	// A purchase with nothing in the cart skips the inventory and payment
	// workers; loyalty still runs.
	skipCartWorkers := sales.Intent == IntentPurchase && o.cartIsEmpty(sessionID)

	for _, worker := range sales.RequiredWorkers {
		switch worker {
		case WorkerRecommendation:
			results.Recommendations = o.recommendations.Execute(ctx, RecommendationQuery{
				Customer: customer,
				Occasion: ExtractOccasion(message),
			})

		case WorkerInventory:
			if skipCartWorkers {
				continue
			}
			// Browsing turns check the products the recommendation worker
			// just produced; purchase turns check the cart.
			if recs := results.Recommendations; recs != nil && recs.Success && len(recs.Recommendations) > 0 {
				results.Inventory = o.checkRecommendedInventory(recs.Recommendations)
			} else {
				results.Inventory = o.checkCartInventory(sessionID)
			}

		case WorkerLoyalty:
			if customer == nil {
				results.Loyalty = &LoyaltyResult{
					Success: false,
					Message: "Sign in to see your loyalty benefits",
				}
			} else {
				results.Loyalty = o.loyalty.Summarize(customer)
			}

		case WorkerPayment:
			if skipCartWorkers {
				continue
			}
			results.Payment = o.checkoutCart(sessionID, customer)
		}
	}
	return results
}

func (o *Orchestrator) cartIsEmpty(sessionID string) bool {
	session, err := o.contextManager.GetSession(sessionID)
	return err == nil && len(session.Cart) == 0
}

func (o *Orchestrator) checkRecommendedInventory(recs []Recommendation) *InventoryResult {
	requests := make([]InventoryRequest, 0, len(recs))
	for _, rec := range recs {
		requests = append(requests, InventoryRequest{ProductID: rec.ProductID, Quantity: 1})
	}
	return o.inventory.CheckMultiple(requests)
}

// checkCartInventory verifies availability of every cart line. An empty
// cart yields a successful empty map.
func (o *Orchestrator) checkCartInventory(sessionID string) *InventoryResult {
	session, err := o.contextManager.GetSession(sessionID)
	if err != nil {
		return &InventoryResult{
			Success:      false,
			Message:      "Could not load your cart",
			Availability: map[string]ProductAvailability{},
			CheckedAt:    time.Now(),
		}
	}

	requests := make([]InventoryRequest, 0, len(session.Cart))
	for _, line := range session.Cart {
		requests = append(requests, InventoryRequest{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	if len(requests) == 0 {
		return &InventoryResult{
			Success:      true,
			Message:      "Your cart is empty",
			Availability: map[string]ProductAvailability{},
			CheckedAt:    time.Now(),
		}
	}
	return o.inventory.CheckMultiple(requests)
}

// checkoutCart charges the current cart with default options. An empty
// cart returns the empty_cart record without touching the gateway.
func (o *Orchestrator) checkoutCart(sessionID string, customer *models.Customer) *CheckoutResult {
	cartView := o.contextManager.GetCart(sessionID)
	if !cartView.Success {
		return &CheckoutResult{
			Success:   false,
			ErrorType: "cart_unavailable",
			Message:   cartView.Message,
		}
	}
	return o.payment.Checkout(customer, cartView.Cart, CheckoutOptions{PaymentMethod: "card"})
}

// synthesize merges the generator reply and the worker partials into the
// unified per-turn response.
func (o *Orchestrator) synthesize(sales *SalesResult, results *workerResults, sessionID string, customer *models.Customer) *UnifiedResponse {
	resp := &UnifiedResponse{
		Success:     true,
		Message:     sales.Response,
		Intent:      sales.Intent,
		Suggestions: sales.Suggestions,
		Timestamp:   time.Now(),
		SessionID:   sessionID,
	}

	if sales.Intent == IntentViewCart {
		cart := o.contextManager.GetCart(sessionID)
		resp.Cart = cart
		resp.Message = renderCartText(cart)
		resp.Actions = cartActions(cart)
		return resp
	}

	if recs := results.Recommendations; recs != nil && recs.Success && len(recs.Recommendations) > 0 {
		top := recs.Recommendations
		if len(top) > 3 {
			top = top[:3]
		}
		resp.Recommendations = top
		resp.TotalRecommendations = recs.TotalItems
	}

	if inv := results.Inventory; inv != nil && inv.Success {
		resp.InventoryStatus = inv.Availability
	}

	if loy := results.Loyalty; loy != nil && loy.Success {
		resp.LoyaltyInfo = &LoyaltySummary{
			Tier:     loy.LoyaltyTier,
			Points:   loy.LoyaltyPoints,
			Benefits: loy.Benefits,
		}
	}

	if pay := results.Payment; pay != nil {
		resp.PaymentResult = pay
		if pay.Success && pay.Order != nil {
			resp.Message = fmt.Sprintf("%s Your order %s is confirmed, total $%.2f.",
				sales.Response, pay.Order.OrderID, pay.Order.Total)
			if err := o.contextManager.ClearCart(sessionID); err != nil {
				logx.Warn().Err(err).Str("session_id", sessionID).Msg("cart not cleared after checkout")
			}
		} else if pay.ErrorType != "" && pay.ErrorType != "empty_cart" {
			resp.Message = fmt.Sprintf("%s %s", sales.Response, pay.Message)
		}
	}

	if cart := o.contextManager.GetCart(sessionID); cart.Success {
		resp.Cart = cart
	}

	resp.Actions = buildActions(sales, results, customer)
	return resp
}

// renderCartText formats the cart as conversational text.
func renderCartText(cart *services.CartResult) string {
	if !cart.Success {
		return cart.Message
	}
	if len(cart.Cart) == 0 {
		return "Your cart is empty. Want me to show you some recommendations?"
	}

	var b strings.Builder
	b.WriteString("Here's what's in your cart:\n")
	for _, item := range cart.Cart {
		fmt.Fprintf(&b, "- %s x%d - $%.2f\n", item.Name, item.Quantity, item.Subtotal)
	}
	fmt.Fprintf(&b, "Subtotal: $%.2f (%d items)", cart.Subtotal, cart.TotalItems)
	return b.String()
}

func cartActions(cart *services.CartResult) []Action {
	if !cart.Success || len(cart.Cart) == 0 {
		return []Action{
			{Type: "browse", Label: "Browse products", Description: "See what's popular right now"},
		}
	}
	return []Action{
		{Type: "checkout", Label: "Checkout", Description: "Complete your purchase"},
		{Type: "continue_shopping", Label: "Keep shopping", Description: "Add more items to your cart"},
	}
}

// buildActions derives next-step actions from what this turn produced.
func buildActions(sales *SalesResult, results *workerResults, customer *models.Customer) []Action {
	var actions []Action

	if recs := results.Recommendations; recs != nil && recs.Success && len(recs.Recommendations) > 0 {
		actions = append(actions,
			Action{Type: "add_to_cart", Label: "Add to cart", Description: "Add a recommended item to your cart"},
			Action{Type: "view_details", Label: "View details", Description: "See more about these picks"},
		)
	}

	if sales.Intent == IntentPurchase && results.Inventory != nil &&
		(results.Payment == nil || !results.Payment.Success) {
		actions = append(actions, Action{Type: "checkout", Label: "Proceed to checkout", Description: "Complete your purchase"})
	}

	if pay := results.Payment; pay != nil {
		switch {
		case pay.Success:
			actions = append(actions, Action{Type: "track_order", Label: "Track order", Description: "Follow your delivery"})
		case pay.ErrorType == "empty_cart":
			actions = append(actions, Action{Type: "browse", Label: "Browse products", Description: "Find something to buy first"})
		case pay.RetryAllowed:
			actions = append(actions, Action{Type: "retry_payment", Label: "Try payment again", Description: "Retry your payment"})
		default:
			actions = append(actions, Action{Type: "change_payment", Label: "Change payment method", Description: "Use a different way to pay"})
		}
	}

	if sales.Intent == IntentComplaint {
		actions = append(actions, Action{Type: "contact_support", Label: "Talk to support", Description: "Get a human on the line"})
	}

	if customer == nil && (sales.Intent == IntentPurchase || results.Loyalty != nil) {
		actions = append(actions, Action{Type: "sign_in", Label: "Sign in", Description: "Unlock member pricing and points"})
	}

	if len(actions) == 0 {
		actions = append(actions, Action{Type: "browse", Label: "Browse products", Description: "See what's popular right now"})
	}
	return actions
}
