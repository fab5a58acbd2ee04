package database

import (
	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
	logx "github.com/stylemart/shopbot-backend/pkg/logger"
)

// Seed loads the demo catalog and customers. An already-populated store is
// left untouched.
func Seed(store storage.Store) error {
	count, err := store.CountProducts()
	if err != nil {
		return err
	}
	if count > 0 {
		logx.Debug().Int64("products", count).Msg("store already seeded")
		return nil
	}

	products := []*models.Product{
		{
			Name:          "Emerald Silk Midi Dress",
			SKU:           "DRESS-001",
			Category:      "Dresses",
			Brand:         "EliteWear",
			Price:         180.00,
			OriginalPrice: 220.00,
			Description:   "Flowing silk midi dress in deep emerald, perfect for evening events",
			Attributes: models.JSONMap{
				"color":    "emerald",
				"material": "silk",
				"fit":      "midi",
			},
			Inventory: models.InventoryList{
				{Location: "warehouse", Quantity: 25, Reserved: 2},
				{Location: "downtown", Quantity: 8, Reserved: 0},
			},
			Images:    models.StringList{"https://cdn.stylemart.example/dress-001.jpg"},
			Rating:    4.8,
			Views:     342,
			Purchases: 89,
		},
		{
			Name:     "Classic Black Pumps",
			SKU:      "SHOES-001",
			Category: "Shoes",
			Brand:    "StyleFeet",
			Price:    89.00,
			Attributes: models.JSONMap{
				"color":       "black",
				"heel_height": "3 inch",
			},
			Inventory: models.InventoryList{
				{Location: "warehouse", Quantity: 40, Reserved: 5},
				{Location: "downtown", Quantity: 12, Reserved: 1},
			},
			Description: "Timeless black pumps that pair with everything",
			Images:      models.StringList{"https://cdn.stylemart.example/shoes-001.jpg"},
			Rating:      4.6,
			Views:       518,
			Purchases:   156,
		},
		{
			Name:     "Gold Statement Necklace",
			SKU:      "ACC-001",
			Category: "Accessories",
			Brand:    "GlamAccessories",
			Price:    45.00,
			Attributes: models.JSONMap{
				"metal": "gold plated",
				"style": "statement",
			},
			Inventory: models.InventoryList{
				{Location: "warehouse", Quantity: 60, Reserved: 0},
			},
			Description: "Bold gold-tone necklace to finish any outfit",
			Images:      models.StringList{"https://cdn.stylemart.example/acc-001.jpg"},
			Rating:      4.4,
			Views:       201,
			Purchases:   67,
		},
	}
	for _, p := range products {
		if _, err := store.CreateProduct(p); err != nil {
			return err
		}
	}

	customers := []*models.Customer{
		{
			Name:  "Sarah Johnson",
			Email: "sarah.johnson@example.com",
			Phone: "+15550100",
			Preferences: models.JSONMap{
				"style":           "elegant",
				"favorite_colors": []string{"emerald", "navy"},
				"size":            "M",
			},
			LoyaltyTier:   models.TierSilver,
			LoyaltyPoints: 1250,
			PurchaseHistory: models.PurchaseHistory{
				{OrderID: "ORD-SEED0001", Date: "2026-06-14", Total: 215.60},
			},
		},
		{
			Name:  "Mike Chen",
			Email: "mike.chen@example.com",
			Phone: "+15550101",
			Preferences: models.JSONMap{
				"style": "casual",
				"size":  "L",
			},
			LoyaltyTier:   models.TierGold,
			LoyaltyPoints: 2500,
			PurchaseHistory: models.PurchaseHistory{
				{OrderID: "ORD-SEED0002", Date: "2026-05-02", Total: 96.12},
				{OrderID: "ORD-SEED0003", Date: "2026-07-21", Total: 145.80},
			},
		},
	}
	for _, c := range customers {
		if _, err := store.CreateCustomer(c); err != nil {
			return err
		}
	}

	logx.Info().Int("products", len(products)).Int("customers", len(customers)).Msg("demo data seeded")
	return nil
}
