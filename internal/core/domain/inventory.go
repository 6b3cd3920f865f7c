package domain

import "github.com/shopspring/decimal"

// InventoryRecord is a stocked asset or material at one location. The same
// item id may exist at several locations, so delta application always matches
// on (InventoryID, LocationKey).
type InventoryRecord struct {
	InventoryID    string          `json:"inventoryID"`
	Name           string          `json:"name"`
	QuantityOnHand int64           `json:"quantityOnHand"` // non-negative
	Unit           string          `json:"unit"`            // e.g. "bags", "m3", "nos"
	LocationKey    string          `json:"locationKey"`     // project or store identifier
	UnitCost       decimal.Decimal `json:"unitCost"`
	AuditFields
}
