package agents

import (
	"fmt"
	"time"

	logx "github.com/stylemart/shopbot-backend/pkg/logger"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

// InventoryAgent answers availability questions against per-location stock
// and places soft reservations.
type InventoryAgent struct {
	store storage.Store
}

// NewInventoryAgent creates a new inventory agent
func NewInventoryAgent(store storage.Store) *InventoryAgent {
	return &InventoryAgent{store: store}
}

// InventoryRequest asks for a quantity of one product at an optional
// preferred location.
type InventoryRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Location  string `json:"location,omitempty"`
}

// CheckMultiple reports availability for every requested product. Unknown
// products get an unavailable verdict with alternatives rather than failing
// the whole call.
func (a *InventoryAgent) CheckMultiple(requests []InventoryRequest) *InventoryResult {
	availability := make(map[string]ProductAvailability, len(requests))

	for _, req := range requests {
		if req.Quantity <= 0 {
			req.Quantity = 1
		}
		key := fmt.Sprintf("%d", req.ProductID)
		availability[key] = a.checkOne(req)
	}

	return &InventoryResult{
		Success:      true,
		Availability: availability,
		CheckedAt:    time.Now(),
	}
}

// Check reports availability for a single product.
func (a *InventoryAgent) Check(req InventoryRequest) ProductAvailability {
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	return a.checkOne(req)
}

func (a *InventoryAgent) checkOne(req InventoryRequest) ProductAvailability {
	product, err := a.store.GetProduct(req.ProductID)
	if err != nil {
		return ProductAvailability{
			ProductID:         req.ProductID,
			Available:         false,
			Reason:            "Product not found",
			QuantityRequested: req.Quantity,
			Alternatives:      a.findAlternatives(nil, 3),
		}
	}

	totalAvailable := product.Inventory.TotalAvailable()
	avail := ProductAvailability{
		ProductID:         product.ID,
		ProductName:       product.Name,
		Available:         totalAvailable >= req.Quantity,
		TotalStock:        totalAvailable,
		QuantityRequested: req.Quantity,
	}

	for _, level := range product.Inventory {
		free := level.Quantity - level.Reserved
		loc := LocationAvailability{
			Location:          level.Location,
			AvailableQuantity: free,
			CanFulfill:        free >= req.Quantity,
		}
		if loc.CanFulfill {
			loc.FulfillmentOptions = fulfillmentOptions(level.Location)
			loc.EstimatedDelivery = deliveryEstimate(level.Location, req.Location)
		} else {
			loc.Reason = "Insufficient stock"
		}
		avail.Locations = append(avail.Locations, loc)
	}

	if !avail.Available {
		avail.Reason = "Insufficient stock across all locations"
		avail.Alternatives = a.findAlternatives(product, 3)
		avail.Suggestion = "Check out these similar items that are in stock"
	}

	return avail
}

func fulfillmentOptions(location string) []string {
	if location == "warehouse" {
		return []string{"ship_to_home", "ship_to_store"}
	}
	return []string{"pickup_in_store", "ship_to_home"}
}

func deliveryEstimate(stockLocation, preferred string) string {
	if stockLocation == "warehouse" {
		return "3-5 business days"
	}
	if preferred != "" && stockLocation == preferred {
		return "Available today"
	}
	return "1-2 business days"
}

// findAlternatives returns in-stock products from the same category, best
// rated first. With no source product it falls back to overall top rated.
func (a *InventoryAgent) findAlternatives(product *models.Product, limit int) []Alternative {
	var (
		candidates []*models.Product
		err        error
	)
	if product != nil {
		candidates, err = a.store.GetProductsByCategory(product.Category, product.ID, limit*2)
	} else {
		candidates, err = a.store.SearchProducts(&models.ProductFilter{Limit: limit * 2})
	}
	if err != nil {
		logx.Warn().Err(err).Msg("alternative lookup failed")
		return nil
	}

	alternatives := make([]Alternative, 0, limit)
	for _, p := range candidates {
		if len(alternatives) == limit {
			break
		}
		if p.Inventory.TotalAvailable() <= 0 {
			continue
		}
		alternatives = append(alternatives, Alternative{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Brand:     p.Brand,
			Rating:    p.Rating,
			InStock:   true,
			Reason:    "Similar style, currently in stock",
		})
	}
	return alternatives
}

// ReservationResult reports the outcome of reserving one cart's worth of
// stock.
type ReservationResult struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message,omitempty"`
	Reservations []ReservationLine `json:"reservations,omitempty"`
	Failed       []ReservationLine `json:"failed,omitempty"`
	ExpiresAt    time.Time         `json:"expires_at,omitempty"`
}

// ReservationLine is one reserved (or unreservable) product quantity.
type ReservationLine struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Location  string `json:"location,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// ReserveItems soft-reserves stock for each request, bumping the Reserved
// counter at the first location with enough free stock. Partial failure is
// reported per line, not as an overall error.
func (a *InventoryAgent) ReserveItems(requests []InventoryRequest) *ReservationResult {
	result := &ReservationResult{
		Success:   true,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	for _, req := range requests {
		if req.Quantity <= 0 {
			req.Quantity = 1
		}
		line := ReservationLine{ProductID: req.ProductID, Quantity: req.Quantity}

		product, err := a.store.GetProduct(req.ProductID)
		if err != nil {
			line.Reason = "Product not found"
			result.Failed = append(result.Failed, line)
			result.Success = false
			continue
		}

		reserved := false
		for i := range product.Inventory {
			level := &product.Inventory[i]
			if level.Quantity-level.Reserved >= req.Quantity {
				level.Reserved += req.Quantity
				line.Location = level.Location
				reserved = true
				break
			}
		}
		if !reserved {
			line.Reason = "Insufficient stock"
			result.Failed = append(result.Failed, line)
			result.Success = false
			continue
		}

		if err := a.store.UpdateProduct(product); err != nil {
			logx.Error().Err(err).Uint("product_id", product.ID).Msg("reservation write failed")
			line.Reason = "Could not save reservation"
			result.Failed = append(result.Failed, line)
			result.Success = false
			continue
		}
		result.Reservations = append(result.Reservations, line)
	}

	if result.Success {
		result.Message = "All items reserved for 30 minutes"
	} else {
		result.Message = "Some items could not be reserved"
	}
	return result
}
