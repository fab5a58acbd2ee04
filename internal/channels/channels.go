package channels

import (
	"fmt"
	"strings"

	"github.com/stylemart/shopbot-backend/internal/agents"
)

// Channel identifies the surface a conversation happens on.
type Channel string

const (
	ChannelWeb      Channel = "web"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelInStore  Channel = "instore"
	ChannelMobile   Channel = "mobile"
)

// Parse maps a channel name to a Channel. "kiosk" is accepted as an alias
// for instore; anything unrecognized falls back to web.
func Parse(name string) Channel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "whatsapp":
		return ChannelWhatsApp
	case "instore", "in-store", "kiosk":
		return ChannelInStore
	case "mobile", "app":
		return ChannelMobile
	default:
		return ChannelWeb
	}
}

// Per-channel recommendation caps. Mobile is unbounded.
const (
	webMaxItems      = 6
	whatsappMaxItems = 3
	instoreMaxItems  = 4
)

// Per-channel free-text caps, in runes.
const (
	webMaxText      = 2000
	whatsappMaxText = 1000
	instoreMaxText  = 300
	voiceMaxText    = 200
)

// Format renders a unified response for one channel. Formatting is pure:
// the response is read, never mutated, so the same response can be rendered
// for several channels.
func Format(ch Channel, resp *agents.UnifiedResponse) map[string]interface{} {
	switch ch {
	case ChannelWhatsApp:
		return formatWhatsApp(resp)
	case ChannelInStore:
		return formatInStore(resp)
	case ChannelMobile:
		return formatMobile(resp)
	default:
		return formatWeb(resp)
	}
}

// formatWeb keeps the full payload with rich product cards.
func formatWeb(resp *agents.UnifiedResponse) map[string]interface{} {
	recs := capRecommendations(resp.Recommendations, webMaxItems)

	cards := make([]map[string]interface{}, 0, len(recs))
	for _, rec := range recs {
		cards = append(cards, map[string]interface{}{
			"product_id":  rec.ProductID,
			"name":        rec.Name,
			"price":       rec.Price,
			"brand":       rec.Brand,
			"image":       rec.Image,
			"rating":      rec.Rating,
			"in_stock":    rec.InStock,
			"reason":      rec.Reason,
			"styling_tip": rec.StylingTip,
		})
	}

	out := map[string]interface{}{
		"channel":     string(ChannelWeb),
		"type":        "rich_response",
		"message":     truncate(resp.Message, webMaxText),
		"success":     resp.Success,
		"session_id":  resp.SessionID,
		"suggestions": resp.Suggestions,
		"actions":     resp.Actions,
	}
	if len(cards) > 0 {
		out["product_cards"] = cards
	}
	if resp.Cart != nil {
		out["cart"] = resp.Cart
	}
	if resp.LoyaltyInfo != nil {
		out["loyalty"] = resp.LoyaltyInfo
	}
	if resp.PaymentResult != nil {
		out["payment"] = resp.PaymentResult
	}
	return out
}

// formatWhatsApp condenses everything into one text message with a numbered
// product list.
func formatWhatsApp(resp *agents.UnifiedResponse) map[string]interface{} {
	recs := capRecommendations(resp.Recommendations, whatsappMaxItems)

	var b strings.Builder
	b.WriteString(resp.Message)
	if len(recs) > 0 {
		b.WriteString("\n\n🛍️ Top picks for you:\n")
		for i, rec := range recs {
			fmt.Fprintf(&b, "%d. %s - $%.2f (%s)\n", i+1, rec.Name, rec.Price, rec.Brand)
		}
		b.WriteString("\nReply with a number to see more!")
	}
	if resp.PaymentResult != nil && resp.PaymentResult.Success && resp.PaymentResult.Order != nil {
		fmt.Fprintf(&b, "\n\n✅ Order %s confirmed!", resp.PaymentResult.Order.OrderID)
	}

	return map[string]interface{}{
		"channel":    string(ChannelWhatsApp),
		"type":       "text",
		"message":    truncate(b.String(), whatsappMaxText),
		"success":    resp.Success,
		"session_id": resp.SessionID,
	}
}

// formatInStore builds the kiosk payload: short spoken text, aisle
// locations, a QR handoff and a staff-assist flag.
func formatInStore(resp *agents.UnifiedResponse) map[string]interface{} {
	recs := capRecommendations(resp.Recommendations, instoreMaxItems)

	items := make([]map[string]interface{}, 0, len(recs))
	for i, rec := range recs {
		items = append(items, map[string]interface{}{
			"product_id": rec.ProductID,
			"name":       rec.Name,
			"price":      rec.Price,
			"in_stock":   rec.InStock,
			"aisle":      aisleFor(rec.Category, i),
		})
	}

	voice := resp.Message
	if len(recs) > 0 {
		voice = fmt.Sprintf("I found %d great options for you. The closest is in %s.",
			len(recs), aisleFor(recs[0].Category, 0))
	}

	out := map[string]interface{}{
		"channel":      string(ChannelInStore),
		"type":         "kiosk_display",
		"message":      truncate(resp.Message, instoreMaxText),
		"voice_text":   truncate(voice, voiceMaxText),
		"success":      resp.Success,
		"session_id":   resp.SessionID,
		"qr_code":      fmt.Sprintf("https://shop.stylemart.example/s/%s", resp.SessionID),
		"staff_assist": resp.Intent == agents.IntentComplaint || !resp.Success,
	}
	if len(items) > 0 {
		out["items"] = items
	}
	return out
}

// formatMobile keeps every recommendation and adds app-native affordances.
func formatMobile(resp *agents.UnifiedResponse) map[string]interface{} {
	fabs := make([]map[string]string, 0, len(resp.Actions))
	for _, action := range resp.Actions {
		fabs = append(fabs, map[string]string{
			"type":  action.Type,
			"label": action.Label,
			"icon":  iconFor(action.Type),
		})
	}

	out := map[string]interface{}{
		"channel":          string(ChannelMobile),
		"type":             "app_response",
		"message":          resp.Message,
		"success":          resp.Success,
		"session_id":       resp.SessionID,
		"suggestions":      resp.Suggestions,
		"floating_actions": fabs,
	}
	if len(resp.Recommendations) > 0 {
		out["recommendations"] = resp.Recommendations
	}
	if resp.Cart != nil {
		out["cart"] = resp.Cart
	}
	if resp.LoyaltyInfo != nil {
		out["loyalty"] = resp.LoyaltyInfo
	}
	if resp.PaymentResult != nil {
		out["payment"] = resp.PaymentResult
	}
	return out
}

func capRecommendations(recs []agents.Recommendation, max int) []agents.Recommendation {
	if len(recs) > max {
		return recs[:max]
	}
	return recs
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}

// aisleFor fabricates a plausible in-store location per category. Stores
// without planogram data get a rotating fallback.
func aisleFor(category string, index int) string {
	switch category {
	case "Dresses":
		return "Aisle 3, Women's Fashion"
	case "Shoes":
		return "Aisle 7, Footwear"
	case "Accessories":
		return "Aisle 5, Accessories"
	default:
		return fmt.Sprintf("Aisle %d", 2+index)
	}
}

func iconFor(actionType string) string {
	switch actionType {
	case "add_to_cart":
		return "cart_plus"
	case "checkout", "retry_payment", "change_payment":
		return "credit_card"
	case "view_details":
		return "info"
	case "track_order":
		return "truck"
	case "contact_support":
		return "headset"
	case "sign_in":
		return "user"
	default:
		return "sparkles"
	}
}
