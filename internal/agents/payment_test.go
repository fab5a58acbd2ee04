package agents

import (
	"strings"
	"testing"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/services"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

func testCart() []services.CartViewItem {
	return []services.CartViewItem{
		{ProductID: 1, Name: "Emerald Silk Midi Dress", Price: 180, Quantity: 1, Subtotal: 180},
		{ProductID: 2, Name: "Classic Black Pumps", Price: 89, Quantity: 1, Subtotal: 89},
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	agent := NewPaymentAgent(storage.NewMemoryStore(), PaymentConfig{SuccessRate: 1})

	result := agent.Checkout(nil, nil, CheckoutOptions{})
	if result.Success {
		t.Fatal("expected failure for empty cart")
	}
	if result.ErrorType != "empty_cart" {
		t.Errorf("error type = %q, want empty_cart", result.ErrorType)
	}
}

func TestCheckoutInvalidMethod(t *testing.T) {
	agent := NewPaymentAgent(storage.NewMemoryStore(), PaymentConfig{SuccessRate: 1})

	result := agent.Checkout(nil, testCart(), CheckoutOptions{PaymentMethod: "barter"})
	if result.Success {
		t.Fatal("expected failure for invalid payment method")
	}
	if result.ErrorType != "invalid_payment_method" {
		t.Errorf("error type = %q, want invalid_payment_method", result.ErrorType)
	}
	if len(result.Alternatives) == 0 {
		t.Error("expected alternative payment methods")
	}
	if !result.RetryAllowed {
		t.Error("invalid method should allow retry")
	}
}

func TestCheckoutAlwaysSucceeds(t *testing.T) {
	agent := NewPaymentAgent(storage.NewMemoryStore(), PaymentConfig{SuccessRate: 1})

	for i := 0; i < 20; i++ {
		result := agent.Checkout(nil, testCart(), CheckoutOptions{PaymentMethod: "card"})
		if !result.Success {
			t.Fatalf("run %d: unexpected failure %q", i, result.ErrorType)
		}
		if result.Order == nil || !strings.HasPrefix(result.Order.OrderID, "ORD-") {
			t.Fatalf("run %d: missing or malformed order", i)
		}
		if result.PaymentDetails == nil || result.PaymentDetails.Status != "completed" {
			t.Fatalf("run %d: missing payment details", i)
		}
	}
}

func TestCheckoutAlwaysFails(t *testing.T) {
	agent := NewPaymentAgent(storage.NewMemoryStore(), PaymentConfig{SuccessRate: 0})

	for i := 0; i < 20; i++ {
		result := agent.Checkout(nil, testCart(), CheckoutOptions{PaymentMethod: "card"})
		if result.Success {
			t.Fatalf("run %d: unexpected success", i)
		}
		switch result.ErrorType {
		case "insufficient_funds":
			if result.RetryAllowed {
				t.Error("insufficient_funds must not allow retry")
			}
		case "card_declined", "network_error":
			if !result.RetryAllowed {
				t.Errorf("%s should allow retry", result.ErrorType)
			}
		default:
			t.Fatalf("unexpected error type %q", result.ErrorType)
		}
		if len(result.RecoveryOptions) == 0 {
			t.Error("expected recovery options on failure")
		}
	}
}

func TestPriceBreakdown(t *testing.T) {
	agent := NewPaymentAgent(storage.NewMemoryStore(), PaymentConfig{SuccessRate: 1})

	cart := []services.CartViewItem{
		{ProductID: 1, Name: "Dress", Price: 100, Quantity: 2, Subtotal: 200},
		{ProductID: 2, Name: "Necklace", Price: 50, Quantity: 1, Subtotal: 50},
	}
	customer := &models.Customer{LoyaltyTier: models.TierGold, LoyaltyPoints: 500}

	pricing := agent.Price(customer, cart, CheckoutOptions{CouponCode: "welcome10"})

	if pricing.Subtotal != 250 {
		t.Errorf("subtotal = %.2f, want 250.00", pricing.Subtotal)
	}

	// 3 items: bundle 10% = 25, gold 10% = 25, coupon 10% = 25
	if pricing.TotalDiscount != 75 {
		t.Errorf("total discount = %.2f, want 75.00", pricing.TotalDiscount)
	}

	// (250 - 75) * 1.08 = 189
	if pricing.Tax != 14 {
		t.Errorf("tax = %.2f, want 14.00", pricing.Tax)
	}
	if pricing.FinalTotal != 189 {
		t.Errorf("final total = %.2f, want 189.00", pricing.FinalTotal)
	}

	// gold earns 2x
	if pricing.Loyalty.PointsEarned != 378 {
		t.Errorf("points earned = %d, want 378", pricing.Loyalty.PointsEarned)
	}
}

func TestPricePointsRedemption(t *testing.T) {
	agent := NewPaymentAgent(storage.NewMemoryStore(), PaymentConfig{SuccessRate: 1})

	cart := []services.CartViewItem{
		{ProductID: 1, Name: "Necklace", Price: 45, Quantity: 1, Subtotal: 45},
	}
	customer := &models.Customer{LoyaltyTier: models.TierBronze, LoyaltyPoints: 300}

	pricing := agent.Price(customer, cart, CheckoutOptions{PointsToUse: 1000})

	// capped at the 300-point balance = $3.00
	if pricing.Loyalty.PointsUsed != 300 {
		t.Errorf("points used = %d, want 300", pricing.Loyalty.PointsUsed)
	}
	if pricing.Loyalty.DiscountApplied != 3 {
		t.Errorf("points discount = %.2f, want 3.00", pricing.Loyalty.DiscountApplied)
	}

	// (45 - 3) * 1.08 = 45.36
	if pricing.FinalTotal != 45.36 {
		t.Errorf("final total = %.2f, want 45.36", pricing.FinalTotal)
	}
}

func TestSuccessRateOutOfRangeFallsBack(t *testing.T) {
	agent := NewPaymentAgent(storage.NewMemoryStore(), PaymentConfig{SuccessRate: 7})
	if agent.cfg.SuccessRate != 0.90 {
		t.Errorf("success rate = %.2f, want 0.90 fallback", agent.cfg.SuccessRate)
	}
}
