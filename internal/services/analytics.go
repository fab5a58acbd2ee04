package services

import (
	"time"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// AnalyticsService aggregates demo-facing business metrics from the store.
type AnalyticsService struct {
	store storage.Store
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(store storage.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// BusinessMetrics is the dashboard snapshot.
type BusinessMetrics struct {
	GeneratedAt      time.Time      `json:"generated_at"`
	TotalProducts    int64          `json:"total_products"`
	TotalCustomers   int64          `json:"total_customers"`
	TotalSessions    int64          `json:"total_sessions"`
	ActiveSessions   int64          `json:"active_sessions"`
	AverageRating    float64        `json:"average_rating"`
	TierDistribution map[string]int `json:"tier_distribution"`
	TotalRevenue     float64        `json:"total_revenue"`
	AverageOrderSize float64        `json:"average_order_size"`
}

// Metrics builds the current snapshot. Revenue is summed from customer
// purchase histories.
func (s *AnalyticsService) Metrics() (*BusinessMetrics, error) {
	metrics := &BusinessMetrics{
		GeneratedAt:      time.Now(),
		TierDistribution: map[string]int{},
	}

	var err error
	if metrics.TotalProducts, err = s.store.CountProducts(); err != nil {
		return nil, err
	}
	if metrics.TotalCustomers, err = s.store.CountCustomers(); err != nil {
		return nil, err
	}
	if metrics.TotalSessions, metrics.ActiveSessions, err = s.store.CountSessions(); err != nil {
		return nil, err
	}
	if metrics.AverageRating, err = s.store.AverageProductRating(); err != nil {
		return nil, err
	}
	metrics.AverageRating = round2(metrics.AverageRating)

	for _, tier := range []string{models.TierBronze, models.TierSilver, models.TierGold, models.TierPlatinum} {
		count, err := s.store.CountCustomersByTier(tier)
		if err != nil {
			return nil, err
		}
		metrics.TierDistribution[tier] = int(count)
	}

	customers, err := s.store.GetAllCustomers()
	if err != nil {
		return nil, err
	}
	orders := 0
	for _, c := range customers {
		for _, record := range c.PurchaseHistory {
			metrics.TotalRevenue += record.Total
			orders++
		}
	}
	metrics.TotalRevenue = round2(metrics.TotalRevenue)
	if orders > 0 {
		metrics.AverageOrderSize = round2(metrics.TotalRevenue / float64(orders))
	}

	return metrics, nil
}

// ROIInput parameterizes the savings projection.
type ROIInput struct {
	MonthlyConversations int     `json:"monthly_conversations"`
	AgentCostPerHour     float64 `json:"agent_cost_per_hour"`
	MinutesPerChat       float64 `json:"minutes_per_chat"`
	AverageOrderValue    float64 `json:"average_order_value"`
	ConversionLiftPct    float64 `json:"conversion_lift_pct"`
}

// ROIReport projects monthly savings and added revenue for a deployment.
type ROIReport struct {
	MonthlyConversations int     `json:"monthly_conversations"`
	HumanHandlingCost    float64 `json:"human_handling_cost"`
	AutomatedCost        float64 `json:"automated_cost"`
	SupportSavings       float64 `json:"support_savings"`
	AddedRevenue         float64 `json:"added_revenue"`
	TotalMonthlyBenefit  float64 `json:"total_monthly_benefit"`
	AnnualBenefit        float64 `json:"annual_benefit"`
}

// automatedCostPerChat is the assumed inference + infra cost per handled
// conversation.
const automatedCostPerChat = 0.05

// CalculateROI compares human handling cost against automation and adds the
// conversion lift. Zero or missing inputs get conservative defaults.
func (s *AnalyticsService) CalculateROI(input ROIInput) *ROIReport {
	if input.MonthlyConversations <= 0 {
		input.MonthlyConversations = 1000
	}
	if input.AgentCostPerHour <= 0 {
		input.AgentCostPerHour = 25
	}
	if input.MinutesPerChat <= 0 {
		input.MinutesPerChat = 8
	}
	if input.AverageOrderValue <= 0 {
		input.AverageOrderValue = 85
	}
	if input.ConversionLiftPct <= 0 {
		input.ConversionLiftPct = 2.5
	}

	conversations := float64(input.MonthlyConversations)
	humanCost := conversations * (input.MinutesPerChat / 60) * input.AgentCostPerHour
	autoCost := conversations * automatedCostPerChat
	savings := humanCost - autoCost
	if savings < 0 {
		savings = 0
	}
	addedRevenue := conversations * (input.ConversionLiftPct / 100) * input.AverageOrderValue

	report := &ROIReport{
		MonthlyConversations: input.MonthlyConversations,
		HumanHandlingCost:    round2(humanCost),
		AutomatedCost:        round2(autoCost),
		SupportSavings:       round2(savings),
		AddedRevenue:         round2(addedRevenue),
	}
	report.TotalMonthlyBenefit = round2(report.SupportSavings + report.AddedRevenue)
	report.AnnualBenefit = round2(report.TotalMonthlyBenefit * 12)
	return report
}
