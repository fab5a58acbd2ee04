package agents

import (
	"testing"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

func newInventoryFixture(t *testing.T) (*InventoryAgent, storage.Store) {
	t.Helper()

	store := storage.NewMemoryStore()
	products := []*models.Product{
		{
			Name: "Emerald Silk Midi Dress", SKU: "DRESS-001", Category: "Dresses",
			Brand: "EliteWear", Price: 180, Rating: 4.8,
			Inventory: models.InventoryList{
				{Location: "warehouse", Quantity: 5, Reserved: 2},
				{Location: "downtown", Quantity: 2},
			},
		},
		{
			Name: "Velvet Wrap Dress", SKU: "DRESS-002", Category: "Dresses",
			Brand: "EliteWear", Price: 150, Rating: 4.5,
			Inventory: models.InventoryList{{Location: "warehouse", Quantity: 30}},
		},
	}
	for _, p := range products {
		if _, err := store.CreateProduct(p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	return NewInventoryAgent(store), store
}

func TestCheckAvailable(t *testing.T) {
	agent, _ := newInventoryFixture(t)

	avail := agent.Check(InventoryRequest{ProductID: 1, Quantity: 3})
	if !avail.Available {
		t.Fatalf("expected available, got %+v", avail)
	}
	// 5-2 free in warehouse plus 2 downtown
	if avail.TotalStock != 5 {
		t.Errorf("total stock = %d, want 5", avail.TotalStock)
	}
	if len(avail.Locations) != 2 {
		t.Fatalf("locations = %d, want 2", len(avail.Locations))
	}
	warehouse := avail.Locations[0]
	if !warehouse.CanFulfill || len(warehouse.FulfillmentOptions) == 0 {
		t.Errorf("warehouse should fulfill with options, got %+v", warehouse)
	}
	downtown := avail.Locations[1]
	if downtown.CanFulfill {
		t.Errorf("downtown has 2 units, cannot fulfill 3: %+v", downtown)
	}
}

func TestCheckInsufficientStockSuggestsAlternatives(t *testing.T) {
	agent, _ := newInventoryFixture(t)

	avail := agent.Check(InventoryRequest{ProductID: 1, Quantity: 10})
	if avail.Available {
		t.Fatal("10 units should not be available")
	}
	if len(avail.Alternatives) == 0 {
		t.Fatal("expected in-stock alternatives")
	}
	if avail.Alternatives[0].Name != "Velvet Wrap Dress" {
		t.Errorf("alternative = %q, want the other dress", avail.Alternatives[0].Name)
	}
}

func TestCheckUnknownProduct(t *testing.T) {
	agent, _ := newInventoryFixture(t)

	avail := agent.Check(InventoryRequest{ProductID: 404, Quantity: 1})
	if avail.Available {
		t.Fatal("unknown product should be unavailable")
	}
	if avail.Reason != "Product not found" {
		t.Errorf("reason = %q", avail.Reason)
	}
}

func TestCheckMultipleKeysByProductID(t *testing.T) {
	agent, _ := newInventoryFixture(t)

	result := agent.CheckMultiple([]InventoryRequest{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	})
	if !result.Success {
		t.Fatal("expected success")
	}
	if len(result.Availability) != 2 {
		t.Fatalf("got %d entries, want 2", len(result.Availability))
	}
	if _, ok := result.Availability["1"]; !ok {
		t.Error("missing entry for product 1")
	}
}

func TestReserveItems(t *testing.T) {
	agent, store := newInventoryFixture(t)

	result := agent.ReserveItems([]InventoryRequest{{ProductID: 2, Quantity: 4}})
	if !result.Success {
		t.Fatalf("reservation failed: %s", result.Message)
	}
	if len(result.Reservations) != 1 || result.Reservations[0].Location != "warehouse" {
		t.Fatalf("unexpected reservations %+v", result.Reservations)
	}

	product, err := store.GetProduct(2)
	if err != nil {
		t.Fatal(err)
	}
	if product.Inventory[0].Reserved != 4 {
		t.Errorf("reserved = %d, want 4", product.Inventory[0].Reserved)
	}
}

func TestReserveItemsPartialFailure(t *testing.T) {
	agent, _ := newInventoryFixture(t)

	result := agent.ReserveItems([]InventoryRequest{
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 50},
	})
	if result.Success {
		t.Fatal("expected overall failure flag")
	}
	if len(result.Reservations) != 1 {
		t.Errorf("got %d successful lines, want 1", len(result.Reservations))
	}
	if len(result.Failed) != 1 || result.Failed[0].Reason != "Insufficient stock" {
		t.Errorf("failed lines = %+v", result.Failed)
	}
}
