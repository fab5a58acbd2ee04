package agents

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    IntentLabel
	}{
		{"show cart", "show me my cart", IntentViewCart},
		{"cart beats purchase", "I want to buy what's in my cart", IntentViewCart},
		{"buy", "I want to buy this dress", IntentPurchase},
		{"checkout", "ready to checkout", IntentPurchase},
		{"browsing", "I'm looking for something green", IntentBrowsing},
		{"help beats greeting", "hi, how do returns work", IntentNeedsHelp},
		{"stock question", "is the necklace available in store", IntentNeedsHelp},
		{"greeting", "hello there", IntentGreeting},
		{"complaint", "my refund never arrived", IntentComplaint},
		{"help beats complaint", "what is wrong with this item", IntentNeedsHelp},
		{"general", "nice weather today", IntentGeneral},
		{"case insensitive", "SHOW ME MY CART", IntentViewCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.message); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.message, got, tt.want)
			}
		})
	}
}

func TestRequiredWorkers(t *testing.T) {
	tests := []struct {
		intent IntentLabel
		want   []Worker
	}{
		{IntentBrowsing, []Worker{WorkerRecommendation, WorkerInventory}},
		{IntentGeneral, []Worker{WorkerRecommendation, WorkerInventory}},
		{IntentPurchase, []Worker{WorkerInventory, WorkerLoyalty, WorkerPayment}},
		{IntentNeedsHelp, []Worker{WorkerInventory}},
		{IntentGreeting, nil},
		{IntentViewCart, nil},
		{IntentComplaint, nil},
	}

	for _, tt := range tests {
		got := RequiredWorkers(tt.intent)
		if len(got) != len(tt.want) {
			t.Errorf("RequiredWorkers(%s) = %v, want %v", tt.intent, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("RequiredWorkers(%s)[%d] = %s, want %s", tt.intent, i, got[i], tt.want[i])
			}
		}
	}
}

func TestExtractOccasion(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"I need a dress for a wedding", "wedding"},
		{"something for my birthday party", "birthday"},
		{"office wear for a big interview", "work"},
		{"just browsing", ""},
	}

	for _, tt := range tests {
		if got := ExtractOccasion(tt.message); got != tt.want {
			t.Errorf("ExtractOccasion(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}
