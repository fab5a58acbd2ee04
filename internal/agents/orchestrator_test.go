package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/services"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// stubGenerator returns a fixed reply, or an error when Fail is set.
type stubGenerator struct {
	Reply string
	Fail  bool
}

func (s *stubGenerator) Generate(context.Context, string, string, float32, int32) (string, error) {
	if s.Fail {
		return "", errors.New("model unreachable")
	}
	return s.Reply, nil
}

func newTestOrchestrator(t *testing.T, gen *stubGenerator) (*Orchestrator, *services.ContextManager, storage.Store) {
	t.Helper()

	store := storage.NewMemoryStore()
	seedTestCatalog(t, store)

	cm := services.NewContextManager(store)
	orch := NewOrchestrator(
		store,
		cm,
		NewSalesAgent(gen),
		NewRecommendationAgent(store, gen),
		NewInventoryAgent(store),
		NewLoyaltyAgent(store),
		NewPaymentAgent(store, PaymentConfig{SuccessRate: 1}),
	)
	return orch, cm, store
}

func seedTestCatalog(t *testing.T, store storage.Store) {
	t.Helper()

	products := []*models.Product{
		{
			Name: "Emerald Silk Midi Dress", SKU: "DRESS-001", Category: "Dresses",
			Brand: "EliteWear", Price: 180, Rating: 4.8, Purchases: 89,
			Inventory: models.InventoryList{{Location: "warehouse", Quantity: 25}},
		},
		{
			Name: "Classic Black Pumps", SKU: "SHOES-001", Category: "Shoes",
			Brand: "StyleFeet", Price: 89, Rating: 4.6, Purchases: 156,
			Inventory: models.InventoryList{{Location: "warehouse", Quantity: 40}},
		},
	}
	for _, p := range products {
		if _, err := store.CreateProduct(p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
}

func TestHandleTurnEmptyMessage(t *testing.T) {
	orch, _, _ := newTestOrchestrator(t, &stubGenerator{Reply: "hi"})

	resp := orch.HandleTurn(context.Background(), TurnRequest{Message: "   "})
	if resp.Success {
		t.Fatal("expected failure for empty message")
	}
	if resp.Message != apologyMessage {
		t.Errorf("message = %q, want apology", resp.Message)
	}
}

func TestHandleTurnCreatesSession(t *testing.T) {
	orch, cm, _ := newTestOrchestrator(t, &stubGenerator{Reply: "Hello! How can I help?"})

	resp := orch.HandleTurn(context.Background(), TurnRequest{Message: "hello"})
	if !resp.Success {
		t.Fatalf("unexpected failure: %s", resp.Error)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if resp.Intent != IntentGreeting {
		t.Errorf("intent = %s, want greeting", resp.Intent)
	}

	session, err := cm.GetSession(resp.SessionID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	// user turn plus assistant turn
	if len(session.Messages) != 2 {
		t.Errorf("message log length = %d, want 2", len(session.Messages))
	}
}

func TestHandleTurnViewCartSkipsWorkers(t *testing.T) {
	orch, cm, _ := newTestOrchestrator(t, &stubGenerator{Reply: "Sure!"})

	sessionID, err := cm.CreateSession(nil, "web")
	if err != nil {
		t.Fatal(err)
	}
	cm.AddToCart(sessionID, 1, 2)

	resp := orch.HandleTurn(context.Background(), TurnRequest{Message: "show my cart", SessionID: sessionID})
	if !resp.Success {
		t.Fatalf("unexpected failure: %s", resp.Error)
	}
	if resp.Cart == nil || len(resp.Cart.Cart) != 1 {
		t.Fatal("expected the cart view in the response")
	}
	if resp.PaymentResult != nil || resp.Recommendations != nil {
		t.Error("view_cart turn must not dispatch workers")
	}
	if !strings.Contains(resp.Message, "Emerald Silk Midi Dress") {
		t.Errorf("cart text missing item: %q", resp.Message)
	}
}

func TestHandleTurnPurchaseWithEmptyCart(t *testing.T) {
	orch, cm, _ := newTestOrchestrator(t, &stubGenerator{Reply: "Let's check out!"})

	sessionID, err := cm.CreateSession(nil, "web")
	if err != nil {
		t.Fatal(err)
	}

	resp := orch.HandleTurn(context.Background(), TurnRequest{Message: "I want to buy", SessionID: sessionID})
	if !resp.Success {
		t.Fatalf("envelope should stay successful, got error %s", resp.Error)
	}
	if resp.PaymentResult != nil {
		t.Errorf("empty cart must skip the payment worker, got %+v", resp.PaymentResult)
	}
	if resp.InventoryStatus != nil {
		t.Errorf("empty cart must skip the inventory worker, got %+v", resp.InventoryStatus)
	}
	if resp.Intent != IntentPurchase {
		t.Errorf("intent = %q, want %q", resp.Intent, IntentPurchase)
	}
}

func TestSynthesizeDropsFailedInventory(t *testing.T) {
	orch, cm, _ := newTestOrchestrator(t, &stubGenerator{Reply: "Here you go."})

	sessionID, err := cm.CreateSession(nil, "web")
	if err != nil {
		t.Fatal(err)
	}

	sales := &SalesResult{Response: "Here you go.", Intent: IntentBrowsing}
	results := workerResults{
		Inventory: &InventoryResult{
			Success:      false,
			Message:      "Could not load your cart",
			Availability: map[string]ProductAvailability{"1": {}},
		},
	}

	resp := orch.synthesize(sales, &results, sessionID, nil)
	if resp.InventoryStatus != nil {
		t.Errorf("failed inventory check must not surface availability, got %+v", resp.InventoryStatus)
	}
}

func TestHandleTurnPurchaseChargesAndClearsCart(t *testing.T) {
	orch, cm, store := newTestOrchestrator(t, &stubGenerator{Reply: "Checking out now."})

	customer, err := store.CreateCustomer(&models.Customer{
		Name: "Sarah Johnson", Email: "sarah@example.com",
		LoyaltyTier: models.TierSilver, LoyaltyPoints: 1250,
	})
	if err != nil {
		t.Fatal(err)
	}

	sessionID, err := cm.CreateSession(&customer.ID, "web")
	if err != nil {
		t.Fatal(err)
	}
	cm.AddToCart(sessionID, 1, 1)

	resp := orch.HandleTurn(context.Background(), TurnRequest{Message: "buy it now", SessionID: sessionID})
	if !resp.Success {
		t.Fatalf("unexpected failure: %s", resp.Error)
	}
	if resp.PaymentResult == nil || !resp.PaymentResult.Success {
		t.Fatal("expected a successful charge")
	}
	if resp.LoyaltyInfo == nil || resp.LoyaltyInfo.Tier != models.TierSilver {
		t.Error("expected silver loyalty info in the merged response")
	}

	cart := cm.GetCart(sessionID)
	if len(cart.Cart) != 0 {
		t.Error("cart should be cleared after a successful charge")
	}
}

func TestHandleTurnFailingGeneratorKeepsWorkerData(t *testing.T) {
	orch, _, _ := newTestOrchestrator(t, &stubGenerator{Fail: true})

	resp := orch.HandleTurn(context.Background(), TurnRequest{Message: "I'm looking for a dress"})
	if !resp.Success {
		t.Fatalf("generator failure must not fail the turn: %s", resp.Error)
	}
	if !strings.HasPrefix(resp.Message, "Error calling AI:") {
		t.Errorf("message = %q, want inline AI error text", resp.Message)
	}
	// recommendation worker degrades to its fallback list
	if len(resp.Recommendations) == 0 {
		t.Error("expected fallback recommendations despite generator failure")
	}
}

func TestHandleTurnAnonymousLoyaltyFailureKeepsSiblings(t *testing.T) {
	orch, cm, _ := newTestOrchestrator(t, &stubGenerator{Reply: "On it."})

	sessionID, err := cm.CreateSession(nil, "web")
	if err != nil {
		t.Fatal(err)
	}
	cm.AddToCart(sessionID, 2, 1)

	resp := orch.HandleTurn(context.Background(), TurnRequest{Message: "buy these", SessionID: sessionID})
	if !resp.Success {
		t.Fatalf("unexpected failure: %s", resp.Error)
	}
	// loyalty failed (anonymous) so no loyalty block, but payment still ran
	if resp.LoyaltyInfo != nil {
		t.Error("anonymous turn should carry no loyalty info")
	}
	if resp.PaymentResult == nil || !resp.PaymentResult.Success {
		t.Error("payment should still run when loyalty fails")
	}
	if resp.InventoryStatus == nil {
		t.Error("inventory should still run when loyalty fails")
	}
}
