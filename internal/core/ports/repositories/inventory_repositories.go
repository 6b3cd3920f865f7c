package repositories

import (
	"context"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
)

// InventoryReader defines read operations for inventory data.
type InventoryReader interface {
	// FindRecord retrieves the record matching both the item id and the
	// location key, or apperrors.ErrInventoryNotFound.
	FindRecord(ctx context.Context, inventoryID, locationKey string) (*domain.InventoryRecord, error)

	// ListRecords retrieves records, newest first. An empty locationKey lists
	// across locations.
	ListRecords(ctx context.Context, locationKey string) ([]domain.InventoryRecord, error)
}

// InventoryWriter defines write operations for inventory data.
type InventoryWriter interface {
	// SaveRecord persists a new inventory record.
	SaveRecord(ctx context.Context, record domain.InventoryRecord) error

	// AdjustQuantity atomically applies quantityOnHand += delta to the record
	// matching both keys and returns the updated record. Returns
	// apperrors.ErrInventoryNotFound if no record matches.
	AdjustQuantity(ctx context.Context, inventoryID, locationKey string, delta int64, updatedBy string) (*domain.InventoryRecord, error)
}

// InventoryRepositoryFacade combines all inventory repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
