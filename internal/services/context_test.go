package services

import (
	"strings"
	"testing"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

func newTestManager(t *testing.T) (*ContextManager, storage.Store) {
	t.Helper()

	store := storage.NewMemoryStore()
	products := []*models.Product{
		{Name: "Dress", SKU: "D-1", Category: "Dresses", Brand: "EliteWear", Price: 10},
		{Name: "Pumps", SKU: "S-1", Category: "Shoes", Brand: "StyleFeet", Price: 20},
		{Name: "Necklace", SKU: "A-1", Category: "Accessories", Brand: "Glam", Price: 30},
	}
	for _, p := range products {
		if _, err := store.CreateProduct(p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	return NewContextManager(store), store
}

func mustCreateSession(t *testing.T, cm *ContextManager) string {
	t.Helper()
	sessionID, err := cm.CreateSession(nil, "web")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sessionID
}

func TestCreateSessionIDFormat(t *testing.T) {
	cm, _ := newTestManager(t)

	sessionID := mustCreateSession(t, cm)
	if !strings.HasPrefix(sessionID, "session-") {
		t.Errorf("session id %q missing prefix", sessionID)
	}
	if len(sessionID) != len("session-")+12 {
		t.Errorf("session id %q has wrong length", sessionID)
	}
}

func TestAddToCartMergesLines(t *testing.T) {
	cm, store := newTestManager(t)
	sessionID := mustCreateSession(t, cm)

	cm.AddToCart(sessionID, 1, 2)
	result := cm.AddToCart(sessionID, 1, 3)

	if !result.Success {
		t.Fatalf("add failed: %s", result.Message)
	}
	if result.CartCount != 1 {
		t.Errorf("cart count = %d, want 1 merged line", result.CartCount)
	}
	if result.TotalItems != 5 {
		t.Errorf("total items = %d, want 5", result.TotalItems)
	}

	session, err := store.GetSession(sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if len(session.Cart) != 1 || session.Cart[0].Quantity != 5 {
		t.Errorf("stored cart = %+v, want one line with quantity 5", session.Cart)
	}
}

func TestGetCartPricesLines(t *testing.T) {
	cm, _ := newTestManager(t)
	sessionID := mustCreateSession(t, cm)

	cm.AddToCart(sessionID, 1, 1) // $10
	cm.AddToCart(sessionID, 2, 1) // $20
	cm.AddToCart(sessionID, 3, 1) // $30

	result := cm.GetCart(sessionID)
	if !result.Success {
		t.Fatalf("get cart failed: %s", result.Message)
	}
	if result.CartCount != 3 || result.TotalItems != 3 {
		t.Errorf("counts = (%d, %d), want (3, 3)", result.CartCount, result.TotalItems)
	}
	if result.Subtotal != 60 {
		t.Errorf("subtotal = %.2f, want 60.00", result.Subtotal)
	}
}

func TestRemoveFromCartMissingProductIsNoOp(t *testing.T) {
	cm, _ := newTestManager(t)
	sessionID := mustCreateSession(t, cm)

	cm.AddToCart(sessionID, 1, 1)
	result := cm.RemoveFromCart(sessionID, 99)

	if !result.Success {
		t.Fatalf("remove should succeed as a no-op: %s", result.Message)
	}
	if result.CartCount != 1 {
		t.Errorf("cart count = %d, want 1", result.CartCount)
	}
}

func TestUpdateCartQuantityZeroRemovesLine(t *testing.T) {
	cm, _ := newTestManager(t)
	sessionID := mustCreateSession(t, cm)

	cm.AddToCart(sessionID, 1, 2)
	result := cm.UpdateCartQuantity(sessionID, 1, 0)

	if !result.Success {
		t.Fatalf("update failed: %s", result.Message)
	}
	if result.CartCount != 0 {
		t.Errorf("cart count = %d, want 0 after zero-quantity update", result.CartCount)
	}
}

func TestGetCartDropsDeletedProducts(t *testing.T) {
	cm, store := newTestManager(t)
	sessionID := mustCreateSession(t, cm)

	cm.AddToCart(sessionID, 1, 1)

	// simulate a product that no longer resolves
	session, err := store.GetSession(sessionID)
	if err != nil {
		t.Fatal(err)
	}
	session.Cart = append(session.Cart, models.CartLine{ProductID: 404, Quantity: 2})
	if err := store.UpdateSession(session); err != nil {
		t.Fatal(err)
	}

	result := cm.GetCart(sessionID)
	if !result.Success {
		t.Fatalf("get cart failed: %s", result.Message)
	}
	if result.CartCount != 1 {
		t.Errorf("cart count = %d, want 1 priced line", result.CartCount)
	}
	if result.Subtotal != 10 {
		t.Errorf("subtotal = %.2f, want 10.00", result.Subtotal)
	}
}

func TestCartOperationsOnUnknownSession(t *testing.T) {
	cm, _ := newTestManager(t)

	result := cm.AddToCart("session-nope", 1, 1)
	if result.Success {
		t.Fatal("expected failure for unknown session")
	}
	if result.Message != "Session not found" {
		t.Errorf("message = %q, want %q", result.Message, "Session not found")
	}
}

func TestSwitchChannelPreservesCartAndMessages(t *testing.T) {
	cm, store := newTestManager(t)
	sessionID := mustCreateSession(t, cm)

	cm.AddToCart(sessionID, 1, 1)
	if err := cm.AddMessage(sessionID, "user", "hi"); err != nil {
		t.Fatal(err)
	}

	result := cm.SwitchChannel(sessionID, "whatsapp")
	if !result.Success {
		t.Fatalf("switch failed: %s", result.Message)
	}
	if result.NewChannel != "whatsapp" || !result.ContextPreserved {
		t.Errorf("unexpected switch result %+v", result)
	}
	if result.CartItems != 1 || result.ConversationMessages != 1 {
		t.Errorf("preserved state = (%d items, %d messages), want (1, 1)",
			result.CartItems, result.ConversationMessages)
	}

	session, err := store.GetSession(sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if session.Channel != "whatsapp" {
		t.Errorf("channel = %q, want whatsapp", session.Channel)
	}
}

func TestEndSession(t *testing.T) {
	cm, store := newTestManager(t)
	sessionID := mustCreateSession(t, cm)

	if err := cm.EndSession(sessionID); err != nil {
		t.Fatal(err)
	}

	session, err := store.GetSession(sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if session.IsActive {
		t.Error("session should be inactive after EndSession")
	}
}
