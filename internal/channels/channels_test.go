package channels

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stylemart/shopbot-backend/internal/agents"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Channel
	}{
		{"web", ChannelWeb},
		{"whatsapp", ChannelWhatsApp},
		{"WhatsApp", ChannelWhatsApp},
		{"instore", ChannelInStore},
		{"kiosk", ChannelInStore},
		{"in-store", ChannelInStore},
		{"mobile", ChannelMobile},
		{"app", ChannelMobile},
		{"carrier-pigeon", ChannelWeb},
		{"", ChannelWeb},
	}

	for _, tt := range tests {
		if got := Parse(tt.name); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func sampleResponse(recCount int) *agents.UnifiedResponse {
	recs := make([]agents.Recommendation, 0, recCount)
	for i := 0; i < recCount; i++ {
		recs = append(recs, agents.Recommendation{
			ProductID: uint(i + 1),
			Name:      fmt.Sprintf("Item %d", i+1),
			Price:     float64(10 * (i + 1)),
			Brand:     "EliteWear",
			Category:  "Dresses",
			InStock:   true,
		})
	}
	return &agents.UnifiedResponse{
		Success:         true,
		Message:         "Here are some picks",
		Intent:          agents.IntentBrowsing,
		Timestamp:       time.Now(),
		SessionID:       "session-abc123def456",
		Recommendations: recs,
	}
}

func TestFormatCaps(t *testing.T) {
	tests := []struct {
		channel  Channel
		key      string
		maxItems int
	}{
		{ChannelWeb, "product_cards", 6},
		{ChannelInStore, "items", 4},
	}

	for _, tt := range tests {
		out := Format(tt.channel, sampleResponse(10))
		items, ok := out[tt.key].([]map[string]interface{})
		if !ok {
			t.Fatalf("%s: missing %q", tt.channel, tt.key)
		}
		if len(items) != tt.maxItems {
			t.Errorf("%s: %d items, want cap of %d", tt.channel, len(items), tt.maxItems)
		}
	}
}

func TestFormatWhatsAppCapsList(t *testing.T) {
	out := Format(ChannelWhatsApp, sampleResponse(10))

	text, ok := out["message"].(string)
	if !ok {
		t.Fatal("whatsapp payload missing message text")
	}
	for i := 1; i <= 3; i++ {
		if !strings.Contains(text, fmt.Sprintf("%d. Item %d", i, i)) {
			t.Errorf("missing list entry %d in %q", i, text)
		}
	}
	if strings.Contains(text, "4. Item 4") {
		t.Errorf("whatsapp list should cap at 3 entries: %q", text)
	}
}

func TestFormatMobileIsUnbounded(t *testing.T) {
	out := Format(ChannelMobile, sampleResponse(10))

	recs, ok := out["recommendations"].([]agents.Recommendation)
	if !ok {
		t.Fatal("mobile payload missing recommendations")
	}
	if len(recs) != 10 {
		t.Errorf("mobile carried %d recommendations, want all 10", len(recs))
	}
}

func TestFormatIsPure(t *testing.T) {
	resp := sampleResponse(10)

	Format(ChannelWhatsApp, resp)
	Format(ChannelInStore, resp)
	webOut := Format(ChannelWeb, resp)

	if len(resp.Recommendations) != 10 {
		t.Errorf("formatting mutated the response: %d recommendations left", len(resp.Recommendations))
	}
	cards := webOut["product_cards"].([]map[string]interface{})
	if len(cards) != 6 {
		t.Errorf("web render after other channels = %d cards, want 6", len(cards))
	}
}

func TestFormatTruncatesLongText(t *testing.T) {
	resp := sampleResponse(0)
	resp.Message = strings.Repeat("very long reply ", 200)

	out := Format(ChannelInStore, resp)
	text := out["message"].(string)
	if len([]rune(text)) > 300 {
		t.Errorf("kiosk text length = %d, want at most 300", len([]rune(text)))
	}
	if !strings.HasSuffix(text, "...") {
		t.Errorf("truncated text should end with ellipsis: %q", text[len(text)-10:])
	}

	voice := out["voice_text"].(string)
	if len([]rune(voice)) > 200 {
		t.Errorf("voice text length = %d, want at most 200", len([]rune(voice)))
	}
}

func TestFormatInStoreStaffAssist(t *testing.T) {
	resp := sampleResponse(0)
	resp.Intent = agents.IntentComplaint

	out := Format(ChannelInStore, resp)
	if assist, _ := out["staff_assist"].(bool); !assist {
		t.Error("complaint turns should flag staff assist on the kiosk")
	}
}
