package agents

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	logx "github.com/stylemart/shopbot-backend/pkg/logger"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/services"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// PaymentConfig tunes the mock payment gateway.
type PaymentConfig struct {
	// SuccessRate is the probability a charge succeeds, in [0, 1].
	SuccessRate float64 `envconfig:"PAYMENT_SUCCESS_RATE" default:"0.90"`
}

const taxRate = 0.08

// bundleDiscount applies when the cart holds this many items or more.
const (
	bundleMinItems = 3
	bundleRate     = 0.10
)

var couponRates = map[string]float64{
	"WELCOME10": 0.10,
	"SAVE20":    0.20,
	"BIRTHDAY":  0.15,
	"VIP25":     0.25,
}

var validPaymentMethods = []string{"card", "paypal", "apple_pay", "google_pay", "gift_card"}

// paymentFailure is one simulated gateway failure mode.
type paymentFailure struct {
	ErrorType    string
	Message      string
	RetryAllowed bool
}

var paymentFailures = []paymentFailure{
	{ErrorType: "insufficient_funds", Message: "Payment declined: insufficient funds", RetryAllowed: false},
	{ErrorType: "card_declined", Message: "Payment declined by your bank", RetryAllowed: true},
	{ErrorType: "network_error", Message: "Payment gateway timeout, please try again", RetryAllowed: true},
}

// PaymentAgent prices carts and charges them through a mock gateway.
type PaymentAgent struct {
	store storage.Store
	cfg   PaymentConfig
	rng   *rand.Rand
}

// NewPaymentAgent creates a new payment agent
func NewPaymentAgent(store storage.Store, cfg PaymentConfig) *PaymentAgent {
	if cfg.SuccessRate < 0 || cfg.SuccessRate > 1 {
		cfg.SuccessRate = 0.90
	}
	return &PaymentAgent{
		store: store,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CheckoutOptions are the customer-chosen checkout parameters.
type CheckoutOptions struct {
	PaymentMethod string `json:"payment_method"`
	CouponCode    string `json:"coupon_code,omitempty"`
	PointsToUse   int    `json:"points_to_use,omitempty"`
}

// Checkout prices the cart, validates the payment method, charges the mock
// gateway and on success records the purchase against the customer.
func (a *PaymentAgent) Checkout(customer *models.Customer, cart []services.CartViewItem, opts CheckoutOptions) *CheckoutResult {
	if len(cart) == 0 {
		return &CheckoutResult{
			Success:   false,
			ErrorType: "empty_cart",
			Message:   "Your cart is empty. Add some items before checking out!",
		}
	}

	if opts.PaymentMethod == "" {
		opts.PaymentMethod = "card"
	}
	if !validMethod(opts.PaymentMethod) {
		return &CheckoutResult{
			Success:      false,
			ErrorType:    "invalid_payment_method",
			Message:      fmt.Sprintf("Payment method %q is not supported", opts.PaymentMethod),
			Alternatives: validPaymentMethods,
			RetryAllowed: true,
		}
	}

	pricing := a.Price(customer, cart, opts)

	charge, failure := a.charge(pricing.FinalTotal, opts.PaymentMethod)
	if failure != nil {
		logx.Info().Str("error_type", failure.ErrorType).Msg("payment declined")
		return &CheckoutResult{
			Success:         false,
			ErrorType:       failure.ErrorType,
			Message:         failure.Message,
			RetryAllowed:    failure.RetryAllowed,
			Pricing:         pricing,
			RecoveryOptions: paymentRecoveryOptions(failure.ErrorType),
		}
	}

	order := a.buildOrder(customer, pricing, charge)

	if customer != nil {
		a.recordPurchase(customer, order, pricing)
	}

	return &CheckoutResult{
		Success:        true,
		Message:        fmt.Sprintf("Order confirmed! Your total was $%.2f", pricing.FinalTotal),
		Order:          order,
		Pricing:        pricing,
		PaymentDetails: charge,
	}
}

// Price computes the full discount and tax breakdown without charging.
// Discount order: bundle, then loyalty tier, then coupon, then points.
func (a *PaymentAgent) Price(customer *models.Customer, cart []services.CartViewItem, opts CheckoutOptions) *Pricing {
	pricing := &Pricing{Discounts: []Discount{}}

	totalQuantity := 0
	for _, item := range cart {
		line := PricedItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Total:     round2(item.Price * float64(item.Quantity)),
		}
		pricing.Items = append(pricing.Items, line)
		pricing.Subtotal += line.Total
		totalQuantity += item.Quantity
	}
	pricing.Subtotal = round2(pricing.Subtotal)

	if totalQuantity >= bundleMinItems {
		amount := round2(pricing.Subtotal * bundleRate)
		pricing.Discounts = append(pricing.Discounts, Discount{
			Type:        "bundle",
			Description: fmt.Sprintf("%.0f%% off for buying %d+ items", bundleRate*100, bundleMinItems),
			Amount:      amount,
		})
	}

	tier := models.TierBronze
	if customer != nil {
		tier = customer.Tier()
	}
	if rate := TierDiscount(tier); rate > 0 {
		amount := round2(pricing.Subtotal * rate)
		pricing.Discounts = append(pricing.Discounts, Discount{
			Type:        "loyalty",
			Description: fmt.Sprintf("%s member discount (%.0f%%)", tier, rate*100),
			Amount:      amount,
		})
	}

	if code := strings.ToUpper(strings.TrimSpace(opts.CouponCode)); code != "" {
		if rate, ok := couponRates[code]; ok {
			amount := round2(pricing.Subtotal * rate)
			pricing.Discounts = append(pricing.Discounts, Discount{
				Type:        "coupon",
				Description: fmt.Sprintf("Coupon %s (%.0f%% off)", code, rate*100),
				Amount:      amount,
			})
		}
	}

	for _, d := range pricing.Discounts {
		pricing.TotalDiscount += d.Amount
	}
	pricing.TotalDiscount = round2(pricing.TotalDiscount)

	discounted := pricing.Subtotal - pricing.TotalDiscount
	if discounted < 0 {
		discounted = 0
	}

	if customer != nil && opts.PointsToUse > 0 {
		points := RedeemablePoints(opts.PointsToUse, customer.LoyaltyPoints, discounted)
		if points > 0 {
			value := round2(PointsValue(points))
			pricing.Loyalty.PointsUsed = points
			pricing.Loyalty.DiscountApplied = value
			discounted = round2(discounted - value)
		}
	}

	pricing.Tax = round2(discounted * taxRate)
	pricing.FinalTotal = round2(discounted + pricing.Tax)
	pricing.Loyalty.PointsEarned = EarnedPoints(pricing.FinalTotal, tier)
	pricing.Savings = round2(pricing.TotalDiscount + pricing.Loyalty.DiscountApplied)
	return pricing
}

// charge simulates the gateway. Failures pick uniformly among the failure
// modes.
func (a *PaymentAgent) charge(amount float64, method string) (*PaymentDetails, *paymentFailure) {
	if a.rng.Float64() >= a.cfg.SuccessRate {
		failure := paymentFailures[a.rng.Intn(len(paymentFailures))]
		return nil, &failure
	}
	return &PaymentDetails{
		TransactionID: fmt.Sprintf("TXN-%s", strings.ToUpper(uuid.NewString()[:8])),
		Amount:        amount,
		PaymentMethod: method,
		Timestamp:     time.Now(),
		Status:        "completed",
	}, nil
}

func (a *PaymentAgent) buildOrder(customer *models.Customer, pricing *Pricing, charge *PaymentDetails) *Order {
	order := &Order{
		OrderID:           fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.NewString()[:8])),
		Items:             pricing.Items,
		Subtotal:          pricing.Subtotal,
		Discount:          pricing.TotalDiscount,
		Tax:               pricing.Tax,
		Total:             pricing.FinalTotal,
		PaymentMethod:     charge.PaymentMethod,
		TransactionID:     charge.TransactionID,
		Loyalty:           pricing.Loyalty,
		Status:            "confirmed",
		CreatedAt:         time.Now(),
		EstimatedDelivery: time.Now().AddDate(0, 0, 5).Format("January 2, 2006"),
	}
	if customer != nil {
		order.CustomerID = &customer.ID
	}
	return order
}

// recordPurchase applies point movement and purchase history. A failed
// write is logged but does not undo the charge.
func (a *PaymentAgent) recordPurchase(customer *models.Customer, order *Order, pricing *Pricing) {
	customer.LoyaltyPoints -= pricing.Loyalty.PointsUsed
	customer.LoyaltyPoints += pricing.Loyalty.PointsEarned
	if customer.LoyaltyPoints < 0 {
		customer.LoyaltyPoints = 0
	}

	customer.PurchaseHistory = append(customer.PurchaseHistory, models.PurchaseRecord{
		OrderID: order.OrderID,
		Date:    order.CreatedAt.Format("2006-01-02"),
		Total:   order.Total,
	})

	if err := a.store.UpdateCustomer(customer); err != nil {
		logx.Error().Err(err).Uint("customer_id", customer.ID).Msg("purchase bookkeeping failed")
	}
}

func paymentRecoveryOptions(errorType string) []RecoveryOption {
	switch errorType {
	case "insufficient_funds":
		return []RecoveryOption{
			{Option: "different_payment", Label: "Try a different payment method", Description: "Use another card or payment service"},
			{Option: "remove_items", Label: "Remove some items", Description: "Lower your total and try again"},
			{Option: "save_cart", Label: "Save cart for later", Description: "We'll keep your items safe"},
		}
	case "card_declined":
		return []RecoveryOption{
			{Option: "retry", Label: "Try again", Description: "Sometimes a retry goes through"},
			{Option: "different_payment", Label: "Try a different payment method", Description: "Use another card or payment service"},
			{Option: "contact_bank", Label: "Contact your bank", Description: "Your bank may have blocked the charge"},
		}
	case "network_error":
		return []RecoveryOption{
			{Option: "retry", Label: "Try again", Description: "The connection hiccup is usually brief"},
			{Option: "wait", Label: "Wait a moment", Description: "Give it a minute and retry"},
		}
	default:
		return []RecoveryOption{
			{Option: "retry", Label: "Try again", Description: "Retry the payment"},
			{Option: "contact_support", Label: "Contact support", Description: "Our team can help complete your order"},
		}
	}
}

func validMethod(method string) bool {
	for _, m := range validPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
