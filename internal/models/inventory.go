package models

import "github.com/shopspring/decimal"

// InventoryRecord represents a stocked item row at one location. The pair
// (inventory_id, location_key) carries a unique constraint.
type InventoryRecord struct {
	InventoryID    string          `db:"inventory_id"`
	Name           string          `db:"name"`
	QuantityOnHand int64           `db:"quantity_on_hand"`
	Unit           string          `db:"unit"`
	LocationKey    string          `db:"location_key"`
	UnitCost       decimal.Decimal `db:"unit_cost"`
	AuditFields
}
