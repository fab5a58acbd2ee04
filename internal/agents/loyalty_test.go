package agents

import (
	"testing"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

func TestSummarize(t *testing.T) {
	agent := NewLoyaltyAgent(storage.NewMemoryStore())

	customer := &models.Customer{
		Name:          "Sarah Johnson",
		LoyaltyTier:   models.TierSilver,
		LoyaltyPoints: 1250,
	}

	result := agent.Summarize(customer)
	if !result.Success {
		t.Fatalf("summarize failed: %s", result.Message)
	}
	if result.LoyaltyTier != models.TierSilver {
		t.Errorf("tier = %s, want Silver", result.LoyaltyTier)
	}
	if result.PointsValue != 12.5 {
		t.Errorf("points value = %.2f, want 12.50", result.PointsValue)
	}
	if result.Benefits == nil || result.Benefits.MemberDiscount != "5%" {
		t.Errorf("benefits = %+v, want 5%% member discount", result.Benefits)
	}
	if result.NextTier == nil || result.NextTier.NextTier != models.TierGold {
		t.Fatalf("next tier = %+v, want Gold", result.NextTier)
	}
	if result.NextTier.PointsNeeded != 1250 {
		t.Errorf("points needed = %d, want 1250", result.NextTier.PointsNeeded)
	}
}

func TestSummarizePlatinumHasNoNextTier(t *testing.T) {
	agent := NewLoyaltyAgent(storage.NewMemoryStore())

	result := agent.Summarize(&models.Customer{
		Name:          "Alex Rivera",
		LoyaltyTier:   models.TierPlatinum,
		LoyaltyPoints: 8000,
	})
	if result.NextTier == nil || result.NextTier.NextTier != "" {
		t.Errorf("platinum should have no next tier, got %+v", result.NextTier)
	}
	if result.Benefits.FreeShippingThreshold != "Always free" {
		t.Errorf("shipping = %q, want always free", result.Benefits.FreeShippingThreshold)
	}
}

func TestExecuteUnknownCustomer(t *testing.T) {
	agent := NewLoyaltyAgent(storage.NewMemoryStore())

	result := agent.Execute(42)
	if result.Success {
		t.Fatal("expected failure for unknown customer")
	}
}

func TestTierDiscount(t *testing.T) {
	tests := []struct {
		tier string
		want float64
	}{
		{models.TierBronze, 0},
		{models.TierSilver, 0.05},
		{models.TierGold, 0.10},
		{models.TierPlatinum, 0.15},
		{"Mystery", 0},
	}
	for _, tt := range tests {
		if got := TierDiscount(tt.tier); got != tt.want {
			t.Errorf("TierDiscount(%s) = %.2f, want %.2f", tt.tier, got, tt.want)
		}
	}
}

func TestRedeemablePoints(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		balance    int
		orderTotal float64
		want       int
	}{
		{"capped by balance", 1000, 300, 50, 300},
		{"capped by order value", 5000, 5000, 10, 1000},
		{"full redemption", 200, 500, 50, 200},
		{"negative request", -5, 500, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedeemablePoints(tt.requested, tt.balance, tt.orderTotal); got != tt.want {
				t.Errorf("RedeemablePoints(%d, %d, %.2f) = %d, want %d",
					tt.requested, tt.balance, tt.orderTotal, got, tt.want)
			}
		})
	}
}

func TestEarnedPoints(t *testing.T) {
	if got := EarnedPoints(100, models.TierGold); got != 200 {
		t.Errorf("gold earns %d on $100, want 200", got)
	}
	if got := EarnedPoints(100, models.TierBronze); got != 100 {
		t.Errorf("bronze earns %d on $100, want 100", got)
	}
}
