package services

import (
	"context"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
	"github.com/buildsuite/site_ops_app/internal/dto"
)

// InventoryReaderSvc defines read operations for inventory.
type InventoryReaderSvc interface {
	// GetRecord retrieves the record matching both the item id and location key.
	GetRecord(ctx context.Context, inventoryID, locationKey string) (*domain.InventoryRecord, error)

	// ListRecords retrieves records, optionally narrowed to one location.
	ListRecords(ctx context.Context, locationKey string) ([]domain.InventoryRecord, error)
}

// InventoryWriterSvc defines write operations for inventory.
type InventoryWriterSvc interface {
	// CreateRecord registers a stocked item at a location. Privileged roles only.
	CreateRecord(ctx context.Context, req dto.CreateInventoryRequest, actor domain.Actor) (*domain.InventoryRecord, error)

	// AdjustQuantity applies a direct administrative quantity edit.
	// Privileged roles only.
	AdjustQuantity(ctx context.Context, inventoryID string, req dto.AdjustInventoryRequest, actor domain.Actor) (*domain.InventoryRecord, error)
}

// InventoryEffectSvc is the post-approval ledger effect. It is invoked by the
// workflow caller after a quantity-carrying approval, never by the transition
// engine itself.
type InventoryEffectSvc interface {
	// ApplyDelta atomically applies quantityOnHand += delta to the record
	// matching both keys.
	ApplyDelta(ctx context.Context, inventoryID, locationKey string, delta int64, updatedBy string) (*domain.InventoryRecord, error)
}

// InventorySvcFacade combines all inventory service interfaces.
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
	InventoryEffectSvc
}
