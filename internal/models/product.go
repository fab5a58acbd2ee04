package models

import (
	"database/sql/driver"

	"gorm.io/gorm"
)

// StockLevel tracks inventory for a product at one location.
type StockLevel struct {
	Location string `json:"location"`
	Quantity int    `json:"quantity"`
	Reserved int    `json:"reserved,omitempty"`
}

// InventoryList is the per-location inventory of a product, stored as a
// JSON column.
type InventoryList []StockLevel

func (l InventoryList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *InventoryList) Scan(value interface{}) error {
	return jsonScan(value, l)
}

// TotalAvailable returns the stock available for sale across all locations,
// net of reservations.
func (l InventoryList) TotalAvailable() int {
	total := 0
	for _, s := range l {
		total += s.Quantity - s.Reserved
	}
	return total
}

// Product is one catalog entry
type Product struct {
	gorm.Model
	Name          string        `json:"name" gorm:"index;not null"`
	SKU           string        `json:"sku" gorm:"uniqueIndex;not null"`
	Category      string        `json:"category" gorm:"index"`
	Brand         string        `json:"brand"`
	Price         float64       `json:"price" gorm:"not null"`
	OriginalPrice float64       `json:"original_price"` // for showing discounts
	Attributes    JSONMap       `json:"attributes" gorm:"type:text"`
	Inventory     InventoryList `json:"inventory" gorm:"type:text"`
	Description   string        `json:"description" gorm:"type:text"`
	Images        StringList    `json:"images" gorm:"type:text"`
	Views         int           `json:"views" gorm:"default:0"`
	Purchases     int           `json:"purchases" gorm:"default:0"`
	Rating        float64       `json:"rating" gorm:"default:0"`
}

// FirstImage returns the lead image or "" when none exist.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// InStock reports whether any location can sell at least one unit.
func (p *Product) InStock() bool {
	if len(p.Inventory) == 0 {
		// no inventory data recorded, assume sellable
		return true
	}
	return p.Inventory.TotalAvailable() > 0
}

// ProductFilter holds the supported catalog search predicates.
type ProductFilter struct {
	Category string  `json:"category"`
	MaxPrice float64 `json:"max_price"`
	Limit    int     `json:"limit"`
}
