package models

import (
	"database/sql/driver"

	"gorm.io/gorm"
)

// Loyalty tiers, ordered lowest to highest.
const (
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

// PurchaseRecord is one entry in a customer's purchase history.
type PurchaseRecord struct {
	OrderID string  `json:"order_id"`
	Date    string  `json:"date"`
	Total   float64 `json:"total"`
}

// PurchaseHistory is stored as a JSON column.
type PurchaseHistory []PurchaseRecord

func (h PurchaseHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	return jsonValue(h)
}

func (h *PurchaseHistory) Scan(value interface{}) error {
	return jsonScan(value, h)
}

// Customer stores customer identity, preferences and loyalty standing
type Customer struct {
	gorm.Model
	Name            string          `json:"name" gorm:"not null"`
	Email           string          `json:"email" gorm:"uniqueIndex;not null"`
	Phone           string          `json:"phone"`
	Preferences     JSONMap         `json:"preferences" gorm:"type:text"`
	PurchaseHistory PurchaseHistory `json:"purchase_history" gorm:"type:text"`
	LoyaltyTier     string          `json:"loyalty_tier" gorm:"default:Bronze"`
	LoyaltyPoints   int             `json:"loyalty_points" gorm:"default:0"`
}

// Tier returns the customer's loyalty tier, defaulting to Bronze.
func (c *Customer) Tier() string {
	if c.LoyaltyTier == "" {
		return TierBronze
	}
	return c.LoyaltyTier
}
