package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
	"github.com/buildsuite/site_ops_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func toDomainInventory(m models.InventoryRecord) domain.InventoryRecord {
	return domain.InventoryRecord{
		InventoryID:    m.InventoryID,
		Name:           m.Name,
		QuantityOnHand: m.QuantityOnHand,
		Unit:           m.Unit,
		LocationKey:    m.LocationKey,
		UnitCost:       m.UnitCost,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const inventoryColumns = `inventory_id, name, quantity_on_hand, unit, location_key, unit_cost, created_at, created_by, last_updated_at, last_updated_by`

// SaveRecord persists a new inventory record.
func (r *PgxInventoryRepository) SaveRecord(ctx context.Context, record domain.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.InventoryID,
		record.Name,
		record.QuantityOnHand,
		record.Unit,
		record.LocationKey,
		record.UnitCost,
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory record %s: %w", record.InventoryID, err)
	}
	return nil
}

// AdjustQuantity applies quantityOnHand += delta to the record matching both
// the item id and the location key. The row is locked for the duration of the
// read-modify-write so concurrent approvals cannot lose an update.
func (r *PgxInventoryRepository) AdjustQuantity(ctx context.Context, inventoryID, locationKey string, delta int64, updatedBy string) (*domain.InventoryRecord, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT ` + inventoryColumns + `
		FROM inventory_records
		WHERE inventory_id = $1 AND location_key = $2
		FOR UPDATE;
	`
	var m models.InventoryRecord
	err = tx.QueryRow(ctx, lockQuery, inventoryID, locationKey).Scan(
		&m.InventoryID,
		&m.Name,
		&m.QuantityOnHand,
		&m.Unit,
		&m.LocationKey,
		&m.UnitCost,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %s at %s: %w", inventoryID, locationKey, apperrors.ErrInventoryNotFound)
		}
		return nil, fmt.Errorf("failed to lock inventory record %s at %s: %w", inventoryID, locationKey, err)
	}

	m.QuantityOnHand += delta
	if m.QuantityOnHand < 0 {
		return nil, fmt.Errorf("%w: adjustment would drive item %s at %s below zero", apperrors.ErrValidation, inventoryID, locationKey)
	}
	now := time.Now().UTC()

	updateQuery := `
		UPDATE inventory_records
		SET quantity_on_hand = $3, last_updated_at = $4, last_updated_by = $5
		WHERE inventory_id = $1 AND location_key = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, inventoryID, locationKey, m.QuantityOnHand, now, updatedBy); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update quantity of item "+inventoryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.LastUpdatedAt = now
	m.LastUpdatedBy = updatedBy
	d := toDomainInventory(m)
	return &d, nil
}

// FindRecord retrieves the record matching both keys.
func (r *PgxInventoryRepository) FindRecord(ctx context.Context, inventoryID, locationKey string) (*domain.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE inventory_id = $1 AND location_key = $2;`

	var m models.InventoryRecord
	err := r.Pool.QueryRow(ctx, query, inventoryID, locationKey).Scan(
		&m.InventoryID,
		&m.Name,
		&m.QuantityOnHand,
		&m.Unit,
		&m.LocationKey,
		&m.UnitCost,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %s at %s: %w", inventoryID, locationKey, apperrors.ErrInventoryNotFound)
		}
		return nil, fmt.Errorf("failed to find inventory record %s at %s: %w", inventoryID, locationKey, err)
	}
	d := toDomainInventory(m)
	return &d, nil
}

// ListRecords retrieves records, newest first.
func (r *PgxInventoryRepository) ListRecords(ctx context.Context, locationKey string) ([]domain.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records`
	args := []interface{}{}
	if locationKey != "" {
		query += ` WHERE location_key = $1`
		args = append(args, locationKey)
	}
	query += ` ORDER BY created_at DESC, inventory_id DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory records: %w", err)
	}
	defer rows.Close()

	var records []domain.InventoryRecord
	for rows.Next() {
		var m models.InventoryRecord
		if err := rows.Scan(
			&m.InventoryID,
			&m.Name,
			&m.QuantityOnHand,
			&m.Unit,
			&m.LocationKey,
			&m.UnitCost,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		records = append(records, toDomainInventory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory rows: %w", err)
	}
	return records, nil
}
