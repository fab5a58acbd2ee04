package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	logx "github.com/stylemart/shopbot-backend/pkg/logger"

	"github.com/stylemart/shopbot-backend/internal/ai"
	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

const recommendationSystemPrompt = `You are an expert personal shopper and stylist.
Analyze the customer's preferences and occasion, then recommend the BEST products from the list.

For each recommendation, provide:
1. Why it perfectly matches their needs
2. How it fits the occasion
3. What makes it special
4. Style/pairing suggestions

Return ONLY a JSON array with this structure (no other text):
[
  {
    "product_id": 1,
    "confidence": 95,
    "reason": "This emerald dress is perfect because...",
    "occasion_fit": "Ideal for a birthday celebration...",
    "styling_tip": "Pair with gold accessories...",
    "priority": 1
  }
]

Only recommend products that TRULY match. Quality over quantity.`

// complementaryRules maps a category to the categories that upsell well
// alongside it.
var complementaryRules = map[string][]string{
	"Dresses":     {"Shoes", "Accessories"},
	"Shoes":       {"Accessories"},
	"Accessories": {"Dresses", "Shoes"},
}

// RecommendationAgent suggests products for a customer, ranking candidates
// with the model and falling back to a static top-rated list when the AI
// path fails.
type RecommendationAgent struct {
	store     storage.Store
	generator ai.Generator
}

// NewRecommendationAgent creates a new recommendation agent
func NewRecommendationAgent(store storage.Store, generator ai.Generator) *RecommendationAgent {
	return &RecommendationAgent{store: store, generator: generator}
}

// RecommendationQuery carries the inputs for one recommendation run.
type RecommendationQuery struct {
	Customer *models.Customer
	Occasion string
	Budget   float64
	Category string
}

// Execute generates ranked recommendations. Any internal failure degrades to
// the fallback list; the returned record is always well-formed.
func (a *RecommendationAgent) Execute(ctx context.Context, query RecommendationQuery) *RecommendationResult {
	products, err := a.store.SearchProducts(&models.ProductFilter{
		Category: query.Category,
		MaxPrice: query.Budget,
		Limit:    20,
	})
	if err != nil {
		logx.Error().Err(err).Msg("product search failed")
		return &RecommendationResult{
			Success:         false,
			Message:         fmt.Sprintf("Error generating recommendations: %s", err.Error()),
			Recommendations: []Recommendation{},
		}
	}

	if len(products) == 0 {
		return &RecommendationResult{
			Success:         false,
			Message:         "No products found matching criteria",
			Recommendations: []Recommendation{},
		}
	}

	recommendations := a.smartRecommendations(ctx, products, query)
	recommendations = a.addComplementaryItems(recommendations, products)

	logx.Debug().Int("count", len(recommendations)).Msg("recommendations generated")

	return &RecommendationResult{
		Success:         true,
		Recommendations: recommendations,
		TotalItems:      len(recommendations),
		Reasoning:       "Based on customer preferences and occasion",
	}
}

// smartRecommendations asks the model to pick and rank products; any parse
// or generation failure falls back to the top-rated list.
func (a *RecommendationAgent) smartRecommendations(ctx context.Context, products []*models.Product, query RecommendationQuery) []Recommendation {
	userMessage := a.buildUserMessage(products, query)

	reply, err := a.generator.Generate(ctx, recommendationSystemPrompt, userMessage, 0.6, 800)
	if err != nil {
		logx.Warn().Err(err).Msg("recommendation generation failed, using fallback")
		return fallbackRecommendations(products, 3)
	}

	ranked := ai.ExtractJSONArray(reply)
	if ranked == nil {
		logx.Warn().Msg("no parseable ranking in model reply, using fallback")
		return fallbackRecommendations(products, 3)
	}

	var recommendations []Recommendation
	for _, entry := range ranked {
		productID, ok := numberField(entry, "product_id")
		if !ok {
			continue
		}
		product := findProduct(products, uint(productID))
		if product == nil {
			continue
		}

		rec := baseRecommendation(product)
		if conf, ok := numberField(entry, "confidence"); ok {
			rec.Confidence = int(conf)
		} else {
			rec.Confidence = 80
		}
		if prio, ok := numberField(entry, "priority"); ok {
			rec.Priority = int(prio)
		} else {
			rec.Priority = 99
		}
		rec.Reason = stringField(entry, "reason", "Great match for your style")
		rec.OccasionFit = stringField(entry, "occasion_fit", "")
		rec.StylingTip = stringField(entry, "styling_tip", "")

		recommendations = append(recommendations, rec)
	}

	if len(recommendations) == 0 {
		return fallbackRecommendations(products, 3)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Priority < recommendations[j].Priority
	})
	return recommendations
}

func (a *RecommendationAgent) buildUserMessage(products []*models.Product, query RecommendationQuery) string {
	type productBrief struct {
		ID        uint    `json:"id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Category  string  `json:"category"`
		Brand     string  `json:"brand"`
		Rating    float64 `json:"rating"`
		Purchases int     `json:"purchases"`
	}

	briefs := make([]productBrief, 0, 10)
	for _, p := range products {
		if len(briefs) == 10 {
			break
		}
		briefs = append(briefs, productBrief{
			ID: p.ID, Name: p.Name, Price: p.Price, Category: p.Category,
			Brand: p.Brand, Rating: p.Rating, Purchases: p.Purchases,
		})
	}
	briefJSON, _ := json.MarshalIndent(briefs, "", "  ")

	profile := "No specific preferences"
	if query.Customer != nil {
		if raw, err := json.MarshalIndent(query.Customer.Preferences, "", "  "); err == nil {
			profile = string(raw)
		}
	}

	occasion := query.Occasion
	if occasion == "" {
		occasion = "General shopping"
	}
	budget := "Not specified"
	if query.Budget > 0 {
		budget = fmt.Sprintf("$%.2f", query.Budget)
	}

	return fmt.Sprintf(`Customer Profile:
%s

Occasion: %s
Budget: %s

Available Products:
%s

Recommend the TOP 3-5 products that best match this customer.`, profile, occasion, budget, briefJSON)
}

// addComplementaryItems appends one upsell item per recommended category,
// capped at 5 total recommendations.
func (a *RecommendationAgent) addComplementaryItems(recommendations []Recommendation, products []*models.Product) []Recommendation {
	if len(recommendations) == 0 {
		return recommendations
	}

	seen := make(map[string]bool)
	for _, rec := range recommendations {
		seen[rec.Category] = true
	}

	for category := range seen {
		for _, compCategory := range complementaryRules[category] {
			var best *models.Product
			for _, p := range products {
				if p.Category == compCategory {
					best = p // products arrive rating-sorted
					break
				}
			}
			if best == nil || containsProduct(recommendations, best.ID) {
				continue
			}

			rec := baseRecommendation(best)
			rec.Confidence = 75
			rec.IsComplementary = true
			rec.Reason = fmt.Sprintf("Pairs perfectly with your %s", lowerCategory(category))
			recommendations = append(recommendations, rec)
			break
		}
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return recommendations
}

// TopRated returns the unranked fallback list directly, used when the whole
// smart path is unavailable.
func (a *RecommendationAgent) TopRated(limit int) *RecommendationResult {
	products, err := a.store.SearchProducts(&models.ProductFilter{Limit: limit})
	if err != nil || len(products) == 0 {
		return &RecommendationResult{
			Success:         false,
			Message:         "No products available",
			Recommendations: []Recommendation{},
		}
	}
	recs := fallbackRecommendations(products, limit)
	return &RecommendationResult{
		Success:         true,
		Recommendations: recs,
		TotalItems:      len(recs),
		Reasoning:       "Popular items",
		Note:            "Using fallback recommendations",
	}
}

func fallbackRecommendations(products []*models.Product, limit int) []Recommendation {
	recs := make([]Recommendation, 0, limit)
	for _, p := range products {
		if len(recs) == limit {
			break
		}
		rec := baseRecommendation(p)
		rec.Confidence = 70
		rec.Reason = "Popular choice based on ratings and reviews"
		recs = append(recs, rec)
	}
	return recs
}

func baseRecommendation(p *models.Product) Recommendation {
	originalPrice := p.OriginalPrice
	if originalPrice == 0 {
		originalPrice = p.Price
	}
	return Recommendation{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: originalPrice,
		Brand:         p.Brand,
		Category:      p.Category,
		Image:         p.FirstImage(),
		Rating:        p.Rating,
		InStock:       p.InStock(),
	}
}

func findProduct(products []*models.Product, id uint) *models.Product {
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func containsProduct(recs []Recommendation, id uint) bool {
	for _, r := range recs {
		if r.ProductID == id {
			return true
		}
	}
	return false
}

func numberField(m map[string]interface{}, key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}

func stringField(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func lowerCategory(category string) string {
	if category == "" {
		return "selection"
	}
	b := []byte(category)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
