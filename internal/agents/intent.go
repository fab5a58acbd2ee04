package agents

import "strings"

// IntentLabel is the classified purpose of a customer message.
type IntentLabel string

const (
	IntentViewCart  IntentLabel = "view_cart"
	IntentPurchase  IntentLabel = "purchase_intent"
	IntentBrowsing  IntentLabel = "browsing"
	IntentNeedsHelp IntentLabel = "needs_help"
	IntentGreeting  IntentLabel = "greeting"
	IntentComplaint IntentLabel = "complaint"
	IntentGeneral   IntentLabel = "general"
)

// Worker names one sub-agent in the dispatch table.
type Worker string

const (
	WorkerRecommendation Worker = "recommendation"
	WorkerInventory      Worker = "inventory"
	WorkerLoyalty        Worker = "loyalty"
	WorkerPayment        Worker = "payment"
)

// intentRule pairs an intent with its keyword set. Rules are evaluated in
// slice order and the first substring hit wins, so the ordering below is a
// deliberate tie-break: keyword sets overlap ("available" could appear in
// browsing text too) and reordering changes routing.
type intentRule struct {
	intent   IntentLabel
	keywords []string
}

var intentRules = []intentRule{
	{IntentViewCart, []string{"cart", "basket", "bag", "what did i add", "show cart", "view cart", "my items"}},
	{IntentPurchase, []string{"buy", "purchase", "checkout", "order"}},
	{IntentBrowsing, []string{"looking", "browse", "show", "find", "search", "need"}},
	{IntentNeedsHelp, []string{"help", "question", "how", "what", "where", "when", "available", "stock"}},
	{IntentGreeting, []string{"hi", "hello", "hey", "good morning", "good afternoon"}},
	{IntentComplaint, []string{"problem", "issue", "wrong", "broken", "return", "refund"}},
}

// Classify maps free text to an intent label. Pure and deterministic: same
// text always yields the same label.
func Classify(text string) IntentLabel {
	lower := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}

// workerTable is the static intent -> worker dispatch mapping. Workers run
// sequentially in the listed order because later workers consume earlier
// outputs: inventory in the browsing path only checks the products the
// recommendation worker produced.
var workerTable = map[IntentLabel][]Worker{
	IntentBrowsing:  {WorkerRecommendation, WorkerInventory},
	IntentGeneral:   {WorkerRecommendation, WorkerInventory},
	IntentPurchase:  {WorkerInventory, WorkerLoyalty, WorkerPayment},
	IntentNeedsHelp: {WorkerInventory},
}

// RequiredWorkers returns the ordered worker list for an intent. Intents
// with no entry dispatch no workers.
func RequiredWorkers(intent IntentLabel) []Worker {
	return workerTable[intent]
}

var occasionKeywords = []struct {
	occasion string
	keywords []string
}{
	{"wedding", []string{"wedding", "marriage", "bridal"}},
	{"birthday", []string{"birthday", "bday"}},
	{"work", []string{"work", "office", "professional", "job"}},
	{"party", []string{"party", "celebration", "event"}},
	{"date", []string{"date", "romantic", "dinner"}},
	{"casual", []string{"casual", "everyday", "weekend"}},
}

// ExtractOccasion pulls a shopping occasion out of the message, or "" when
// none matches.
func ExtractOccasion(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range occasionKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.occasion
			}
		}
	}
	return ""
}
