package agents

import (
	"time"

	"github.com/stylemart/shopbot-backend/internal/services"
)

// Action is one suggested next step presented to the customer.
type Action struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Recommendation is one ranked product suggestion.
type Recommendation struct {
	ProductID       uint    `json:"product_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price"`
	Brand           string  `json:"brand"`
	Category        string  `json:"category"`
	Image           string  `json:"image,omitempty"`
	Rating          float64 `json:"rating"`
	InStock         bool    `json:"in_stock"`
	Confidence      int     `json:"confidence"`
	Reason          string  `json:"reason"`
	OccasionFit     string  `json:"occasion_fit,omitempty"`
	StylingTip      string  `json:"styling_tip,omitempty"`
	Priority        int     `json:"priority,omitempty"`
	IsComplementary bool    `json:"is_complementary,omitempty"`
}

// RecommendationResult is the recommendation worker's partial result.
type RecommendationResult struct {
	Success         bool             `json:"success"`
	Message         string           `json:"message,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	TotalItems      int              `json:"total_items"`
	Reasoning       string           `json:"reasoning,omitempty"`
	Note            string           `json:"note,omitempty"`
}

// LocationAvailability describes stock at one location.
type LocationAvailability struct {
	Location           string   `json:"location"`
	AvailableQuantity  int      `json:"available_quantity"`
	CanFulfill         bool     `json:"can_fulfill"`
	FulfillmentOptions []string `json:"fulfillment_options,omitempty"`
	EstimatedDelivery  string   `json:"estimated_delivery,omitempty"`
	Reason             string   `json:"reason,omitempty"`
}

// Alternative is an in-stock substitute for an unavailable product.
type Alternative struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Brand     string  `json:"brand"`
	Rating    float64 `json:"rating"`
	InStock   bool    `json:"in_stock"`
	Reason    string  `json:"reason"`
}

// ProductAvailability is the inventory verdict for one product.
type ProductAvailability struct {
	ProductID         uint                   `json:"product_id"`
	ProductName       string                 `json:"product_name,omitempty"`
	Available         bool                   `json:"available"`
	Reason            string                 `json:"reason,omitempty"`
	TotalStock        int                    `json:"total_stock"`
	QuantityRequested int                    `json:"quantity_requested"`
	Locations         []LocationAvailability `json:"locations,omitempty"`
	Alternatives      []Alternative          `json:"alternatives,omitempty"`
	Suggestion        string                 `json:"suggestion,omitempty"`
}

// InventoryResult is the inventory worker's partial result.
type InventoryResult struct {
	Success      bool                           `json:"success"`
	Message      string                         `json:"message,omitempty"`
	Availability map[string]ProductAvailability `json:"availability"`
	CheckedAt    time.Time                      `json:"checked_at"`
}

// TierBenefitView is the customer-facing rendering of a tier's benefits.
type TierBenefitView struct {
	MemberDiscount        string `json:"member_discount"`
	PointsMultiplier      string `json:"points_multiplier"`
	FreeShippingThreshold string `json:"free_shipping_threshold"`
	EarlyAccess           bool   `json:"early_access"`
}

// NextTierInfo describes progress toward the next loyalty tier.
type NextTierInfo struct {
	NextTier        string  `json:"next_tier,omitempty"`
	PointsNeeded    int     `json:"points_needed,omitempty"`
	ProgressPercent float64 `json:"progress_percent,omitempty"`
	Message         string  `json:"message"`
}

// LoyaltyResult is the loyalty worker's partial result.
type LoyaltyResult struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message,omitempty"`
	CustomerName  string           `json:"customer_name,omitempty"`
	LoyaltyTier   string           `json:"loyalty_tier,omitempty"`
	LoyaltyPoints int              `json:"loyalty_points"`
	PointsValue   float64          `json:"points_value"`
	Benefits      *TierBenefitView `json:"benefits,omitempty"`
	NextTier      *NextTierInfo    `json:"next_tier,omitempty"`
}

// Discount is one applied price reduction.
type Discount struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// LoyaltyUsage tracks point movement for one checkout.
type LoyaltyUsage struct {
	PointsUsed      int     `json:"points_used"`
	PointsEarned    int     `json:"points_earned"`
	DiscountApplied float64 `json:"discount_applied"`
}

// PricedItem is one line in a checkout pricing breakdown.
type PricedItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// Pricing is the complete checkout price breakdown.
type Pricing struct {
	Subtotal      float64      `json:"subtotal"`
	Items         []PricedItem `json:"items"`
	Discounts     []Discount   `json:"discounts"`
	TotalDiscount float64      `json:"total_discount"`
	Tax           float64      `json:"tax"`
	FinalTotal    float64      `json:"final_total"`
	Loyalty       LoyaltyUsage `json:"loyalty"`
	Savings       float64      `json:"savings"`
}

// PaymentDetails is the gateway's record of a completed charge.
type PaymentDetails struct {
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Timestamp     time.Time `json:"timestamp"`
	Status        string    `json:"status"`
}

// Order is the confirmation record for a successful checkout. Orders are
// returned to the caller, not persisted.
type Order struct {
	OrderID           string       `json:"order_id"`
	CustomerID        *uint        `json:"customer_id,omitempty"`
	Items             []PricedItem `json:"items"`
	Subtotal          float64      `json:"subtotal"`
	Discount          float64      `json:"discount"`
	Tax               float64      `json:"tax"`
	Total             float64      `json:"total"`
	PaymentMethod     string       `json:"payment_method"`
	TransactionID     string       `json:"transaction_id"`
	Loyalty           LoyaltyUsage `json:"loyalty"`
	Status            string       `json:"status"`
	CreatedAt         time.Time    `json:"created_at"`
	EstimatedDelivery string       `json:"estimated_delivery"`
}

// RecoveryOption is one actionable path out of a failure.
type RecoveryOption struct {
	Option      string `json:"option"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description"`
}

// CheckoutResult is the payment worker's result. It is copied into the
// unified response verbatim, success or failure.
type CheckoutResult struct {
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
	ErrorType       string           `json:"error_type,omitempty"`
	RetryAllowed    bool             `json:"retry_allowed,omitempty"`
	Order           *Order           `json:"order,omitempty"`
	Pricing         *Pricing         `json:"pricing,omitempty"`
	PaymentDetails  *PaymentDetails  `json:"payment_details,omitempty"`
	Alternatives    []string         `json:"alternatives,omitempty"`
	RecoveryOptions []RecoveryOption `json:"recovery_options,omitempty"`
}

// LoyaltySummary is the condensed loyalty block attached to a unified
// response.
type LoyaltySummary struct {
	Tier     string           `json:"tier"`
	Points   int              `json:"points"`
	Benefits *TierBenefitView `json:"benefits,omitempty"`
}

// SalesResult is the classifier/generator output for one turn.
type SalesResult struct {
	Response        string      `json:"response"`
	Intent          IntentLabel `json:"intent"`
	Suggestions     []string    `json:"suggestions"`
	NextActions     []string    `json:"next_actions"`
	RequiredWorkers []Worker    `json:"requires_worker_agents"`
}

// UnifiedResponse is the per-turn merge of the generator output and every
// worker's partial result. Constructed fresh each turn, never stored.
type UnifiedResponse struct {
	Success              bool                           `json:"success"`
	Message              string                         `json:"message"`
	Intent               IntentLabel                    `json:"intent,omitempty"`
	Suggestions          []string                       `json:"suggestions,omitempty"`
	Timestamp            time.Time                      `json:"timestamp"`
	SessionID            string                         `json:"session_id,omitempty"`
	Recommendations      []Recommendation               `json:"recommendations,omitempty"`
	TotalRecommendations int                            `json:"total_recommendations,omitempty"`
	InventoryStatus      map[string]ProductAvailability `json:"inventory_status,omitempty"`
	LoyaltyInfo          *LoyaltySummary                `json:"loyalty_info,omitempty"`
	PaymentResult        *CheckoutResult                `json:"payment_result,omitempty"`
	Cart                 *services.CartResult           `json:"cart,omitempty"`
	Actions              []Action                       `json:"actions,omitempty"`
	Error                string                         `json:"error,omitempty"`
}

// workerResults collects the partial results of one turn, keyed implicitly
// by which pointers are set.
type workerResults struct {
	Recommendations *RecommendationResult
	Inventory       *InventoryResult
	Loyalty         *LoyaltyResult
	Payment         *CheckoutResult
}
