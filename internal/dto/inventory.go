package dto

import (
	"time"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInventoryRequest is the payload for registering a stocked item at a
// location.
type CreateInventoryRequest struct {
	Name        string          `json:"name" binding:"required"`
	Unit        string          `json:"unit" binding:"required"`
	LocationKey string          `json:"locationKey" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"gte=0"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

// AdjustInventoryRequest is the payload for a direct administrative
// quantity adjustment.
type AdjustInventoryRequest struct {
	LocationKey string `json:"locationKey" binding:"required"`
	Delta       int64  `json:"delta" binding:"required"`
}

// ListInventoryParams narrows inventory listing to one location.
type ListInventoryParams struct {
	LocationKey string `form:"locationKey"`
}

// InventoryResponse is the API representation of an inventory record.
type InventoryResponse struct {
	InventoryID    string          `json:"inventoryID"`
	Name           string          `json:"name"`
	QuantityOnHand int64           `json:"quantityOnHand"`
	Unit           string          `json:"unit"`
	LocationKey    string          `json:"locationKey"`
	UnitCost       decimal.Decimal `json:"unitCost"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListInventoryResponse wraps an inventory listing.
type ListInventoryResponse struct {
	Records []InventoryResponse `json:"records"`
}

// ToInventoryResponse maps a domain record to its API representation.
func ToInventoryResponse(r *domain.InventoryRecord) InventoryResponse {
	return InventoryResponse{
		InventoryID:    r.InventoryID,
		Name:           r.Name,
		QuantityOnHand: r.QuantityOnHand,
		Unit:           r.Unit,
		LocationKey:    r.LocationKey,
		UnitCost:       r.UnitCost,
		CreatedAt:      r.CreatedAt,
	}
}
