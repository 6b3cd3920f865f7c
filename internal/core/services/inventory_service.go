package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
	portssvc "github.com/buildsuite/site_ops_app/internal/core/ports/services"
	"github.com/buildsuite/site_ops_app/internal/dto"
)

// inventoryService owns stocked item records. Quantities move only through
// ApplyDelta (the post-approval effect) or an explicit administrative edit.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateRecord registers a stocked item at a location.
func (s *inventoryService) CreateRecord(ctx context.Context, req dto.CreateInventoryRequest, actor domain.Actor) (*domain.InventoryRecord, error) {
	if !actor.Role.IsPrivileged() {
		return nil, fmt.Errorf("%w: role %s may not register inventory", apperrors.ErrForbidden, actor.Role)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: opening quantity must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	record := domain.InventoryRecord{
		InventoryID:    uuid.NewString(),
		Name:           req.Name,
		QuantityOnHand: req.Quantity,
		Unit:           req.Unit,
		LocationKey:    req.LocationKey,
		UnitCost:       req.UnitCost,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.inventoryRepo.SaveRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save inventory record %s: %w", record.Name, err)
	}
	return &record, nil
}

// AdjustQuantity applies a direct administrative quantity edit.
func (s *inventoryService) AdjustQuantity(ctx context.Context, inventoryID string, req dto.AdjustInventoryRequest, actor domain.Actor) (*domain.InventoryRecord, error) {
	if !actor.Role.IsPrivileged() {
		return nil, fmt.Errorf("%w: role %s may not adjust inventory", apperrors.ErrForbidden, actor.Role)
	}
	return s.ApplyDelta(ctx, inventoryID, req.LocationKey, req.Delta, actor.UserID)
}

// ApplyDelta atomically applies quantityOnHand += delta to the record matching
// both the item id and the location key. The same item id can be stocked at
// several locations, so matching on the id alone would credit the wrong site.
func (s *inventoryService) ApplyDelta(ctx context.Context, inventoryID, locationKey string, delta int64, updatedBy string) (*domain.InventoryRecord, error) {
	return s.inventoryRepo.AdjustQuantity(ctx, inventoryID, locationKey, delta, updatedBy)
}

// GetRecord retrieves the record matching both keys.
func (s *inventoryService) GetRecord(ctx context.Context, inventoryID, locationKey string) (*domain.InventoryRecord, error) {
	return s.inventoryRepo.FindRecord(ctx, inventoryID, locationKey)
}

// ListRecords retrieves records, optionally narrowed to one location.
func (s *inventoryService) ListRecords(ctx context.Context, locationKey string) ([]domain.InventoryRecord, error) {
	return s.inventoryRepo.ListRecords(ctx, locationKey)
}
