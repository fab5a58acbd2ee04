package agents

import (
	"context"
	"fmt"
	"strings"

	logx "github.com/stylemart/shopbot-backend/pkg/logger"

	"github.com/stylemart/shopbot-backend/internal/ai"
	"github.com/stylemart/shopbot-backend/internal/models"
)

const salesSystemPrompt = `You are an expert sales associate for a premium retail brand.

Your goals:
1. Understand customer needs through friendly, open-ended questions
2. Suggest products that match their style, occasion, and budget
3. Create gentle urgency without being pushy
4. Naturally upsell complementary items
5. Guide customers toward purchase decisions
6. Handle objections with empathy and alternatives

Conversation style:
- Warm, enthusiastic, and helpful
- Ask one question at a time
- Listen carefully to preferences
- Suggest specific items with compelling reasons
- Use social proof ("This is our bestseller...")
- Create FOMO when appropriate ("Only a few left...")

Remember: Your goal is to help them find the perfect items and increase their cart value naturally.`

// SalesAgent is the customer-facing agent: it classifies intent, generates
// the conversational reply and decides which workers the turn needs.
type SalesAgent struct {
	generator ai.Generator
}

// NewSalesAgent creates a new sales agent
func NewSalesAgent(generator ai.Generator) *SalesAgent {
	return &SalesAgent{generator: generator}
}

// Execute handles one customer message: generate a reply, classify intent,
// derive suggestions and the required worker list. A generation failure is
// substituted inline, never returned as an error.
func (a *SalesAgent) Execute(ctx context.Context, message string, customer *models.Customer) *SalesResult {
	systemPrompt := a.buildSystemPrompt(customer)

	reply, err := a.generator.Generate(ctx, systemPrompt, message, 0.7, 300)
	if err != nil {
		logx.Warn().Err(err).Msg("sales generation failed, degrading to inline error text")
		reply = fmt.Sprintf("Error calling AI: %s", err.Error())
	}

	intent := Classify(message)

	return &SalesResult{
		Response:        reply,
		Intent:          intent,
		Suggestions:     extractSuggestions(reply, intent),
		NextActions:     nextActionHints(intent),
		RequiredWorkers: RequiredWorkers(intent),
	}
}

// buildSystemPrompt appends known customer context to the base prompt.
func (a *SalesAgent) buildSystemPrompt(customer *models.Customer) string {
	if customer == nil {
		return salesSystemPrompt
	}

	var b strings.Builder
	b.WriteString(salesSystemPrompt)
	b.WriteString("\n\nCustomer Information:")
	if customer.Name != "" {
		fmt.Fprintf(&b, "\n- Name: %s", customer.Name)
	}
	fmt.Fprintf(&b, "\n- Loyalty Status: %s member", customer.Tier())
	if len(customer.Preferences) > 0 {
		fmt.Fprintf(&b, "\n- Preferences: %v", map[string]interface{}(customer.Preferences))
	}
	return b.String()
}

// extractSuggestions derives quick-reply suggestions from the generated
// reply and the intent, capped at 3.
func extractSuggestions(reply string, intent IntentLabel) []string {
	var suggestions []string
	lower := strings.ToLower(reply)

	if strings.Contains(lower, "dress") {
		suggestions = append(suggestions, "Browse Dresses")
	}
	if strings.Contains(lower, "shoes") || strings.Contains(lower, "footwear") {
		suggestions = append(suggestions, "Browse Shoes")
	}
	if strings.Contains(lower, "accessories") || strings.Contains(lower, "jewelry") {
		suggestions = append(suggestions, "Browse Accessories")
	}

	switch intent {
	case IntentBrowsing:
		suggestions = append(suggestions, "See Recommendations")
	case IntentPurchase:
		suggestions = append(suggestions, "View Cart", "Checkout")
	case IntentNeedsHelp:
		suggestions = append(suggestions, "Talk to Specialist")
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

// nextActionHints names the follow-up operations implied by an intent.
func nextActionHints(intent IntentLabel) []string {
	switch intent {
	case IntentBrowsing:
		return []string{"get_recommendations", "check_inventory"}
	case IntentPurchase:
		return []string{"prepare_checkout", "apply_discounts"}
	case IntentNeedsHelp:
		return []string{"check_inventory", "get_product_details"}
	default:
		return nil
	}
}
