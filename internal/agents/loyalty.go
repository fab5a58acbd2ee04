package agents

import (
	"fmt"
	"math"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// tierBenefits are the fixed program rules per tier.
type tierBenefits struct {
	Discount         float64
	PointsMultiplier float64
	FreeShippingMin  float64
	EarlyAccess      bool
}

var tierTable = map[string]tierBenefits{
	models.TierBronze:   {Discount: 0, PointsMultiplier: 1, FreeShippingMin: 100, EarlyAccess: false},
	models.TierSilver:   {Discount: 0.05, PointsMultiplier: 1.5, FreeShippingMin: 75, EarlyAccess: true},
	models.TierGold:     {Discount: 0.10, PointsMultiplier: 2, FreeShippingMin: 50, EarlyAccess: true},
	models.TierPlatinum: {Discount: 0.15, PointsMultiplier: 3, FreeShippingMin: 0, EarlyAccess: true},
}

// nextTierThresholds are the lifetime point totals needed to reach each tier.
var nextTierThresholds = []struct {
	Tier   string
	Points int
}{
	{models.TierSilver, 1000},
	{models.TierGold, 2500},
	{models.TierPlatinum, 5000},
}

// pointsPerDollar converts points to redemption value: 100 points = $1.
const pointsPerDollar = 100

// LoyaltyAgent answers loyalty-program questions and handles point
// arithmetic for checkout.
type LoyaltyAgent struct {
	store storage.Store
}

// NewLoyaltyAgent creates a new loyalty agent
func NewLoyaltyAgent(store storage.Store) *LoyaltyAgent {
	return &LoyaltyAgent{store: store}
}

// Execute reports the program status for one customer.
func (a *LoyaltyAgent) Execute(customerID uint) *LoyaltyResult {
	customer, err := a.store.GetCustomer(customerID)
	if err != nil {
		return &LoyaltyResult{Success: false, Message: "Customer not found"}
	}
	return a.Summarize(customer)
}

// Summarize builds the loyalty view for an already-loaded customer.
func (a *LoyaltyAgent) Summarize(customer *models.Customer) *LoyaltyResult {
	tier := customer.Tier()
	return &LoyaltyResult{
		Success:       true,
		CustomerName:  customer.Name,
		LoyaltyTier:   tier,
		LoyaltyPoints: customer.LoyaltyPoints,
		PointsValue:   float64(customer.LoyaltyPoints) / pointsPerDollar,
		Benefits:      BenefitsFor(tier),
		NextTier:      nextTierProgress(tier, customer.LoyaltyPoints),
	}
}

// BenefitsFor renders the benefit table for a tier. Unknown tiers get
// Bronze benefits.
func BenefitsFor(tier string) *TierBenefitView {
	b, ok := tierTable[tier]
	if !ok {
		b = tierTable[models.TierBronze]
	}
	view := &TierBenefitView{
		MemberDiscount:   fmt.Sprintf("%.0f%%", b.Discount*100),
		PointsMultiplier: fmt.Sprintf("%.1fx", b.PointsMultiplier),
		EarlyAccess:      b.EarlyAccess,
	}
	if b.FreeShippingMin == 0 {
		view.FreeShippingThreshold = "Always free"
	} else {
		view.FreeShippingThreshold = fmt.Sprintf("Orders over $%.0f", b.FreeShippingMin)
	}
	return view
}

// TierDiscount returns the member discount rate for a tier.
func TierDiscount(tier string) float64 {
	if b, ok := tierTable[tier]; ok {
		return b.Discount
	}
	return 0
}

// PointsMultiplier returns the earn-rate multiplier for a tier.
func PointsMultiplier(tier string) float64 {
	if b, ok := tierTable[tier]; ok {
		return b.PointsMultiplier
	}
	return 1
}

func nextTierProgress(tier string, points int) *NextTierInfo {
	if tier == models.TierPlatinum {
		return &NextTierInfo{Message: "You've reached our highest tier!"}
	}
	for _, threshold := range nextTierThresholds {
		if points < threshold.Points {
			needed := threshold.Points - points
			progress := float64(points) / float64(threshold.Points) * 100
			return &NextTierInfo{
				NextTier:        threshold.Tier,
				PointsNeeded:    needed,
				ProgressPercent: math.Round(progress*10) / 10,
				Message:         fmt.Sprintf("Earn %d more points to reach %s", needed, threshold.Tier),
			}
		}
	}
	return &NextTierInfo{Message: "You've reached our highest tier!"}
}

// RedeemablePoints caps a redemption request at the customer's balance and
// at the order value.
func RedeemablePoints(requested, balance int, orderTotal float64) int {
	points := requested
	if points > balance {
		points = balance
	}
	maxForOrder := int(orderTotal * pointsPerDollar)
	if points > maxForOrder {
		points = maxForOrder
	}
	if points < 0 {
		points = 0
	}
	return points
}

// PointsValue converts a point count to its dollar value.
func PointsValue(points int) float64 {
	return float64(points) / pointsPerDollar
}

// EarnedPoints computes points earned on a charge after the tier multiplier.
func EarnedPoints(amount float64, tier string) int {
	return int(amount * PointsMultiplier(tier))
}

// PersonalOffer is one tier-targeted promotion.
type PersonalOffer struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code,omitempty"`
}

// OffersFor returns the promotions currently shown to a tier.
func (a *LoyaltyAgent) OffersFor(tier string) []PersonalOffer {
	offers := []PersonalOffer{
		{Title: "Welcome Offer", Description: "10% off your first order", Code: "WELCOME10"},
	}
	switch tier {
	case models.TierSilver:
		offers = append(offers, PersonalOffer{
			Title: "Silver Saver", Description: "Save 20% on orders over $150", Code: "SAVE20",
		})
	case models.TierGold:
		offers = append(offers, PersonalOffer{
			Title: "Gold Member Event", Description: "Early access to the new season drop",
		})
	case models.TierPlatinum:
		offers = append(offers, PersonalOffer{
			Title: "Platinum Perks", Description: "25% off as a VIP thank-you", Code: "VIP25",
		})
	}
	return offers
}
