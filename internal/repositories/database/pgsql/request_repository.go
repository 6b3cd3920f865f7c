package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
	"github.com/buildsuite/site_ops_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRequestRepository struct {
	BaseRepository
}

// newPgxRequestRepository creates a new repository for approval request data.
func newPgxRequestRepository(pool *pgxpool.Pool) portsrepo.RequestRepositoryFacade {
	return &PgxRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

func toModelRequest(d domain.ApprovalRequest) models.ApprovalRequest {
	return models.ApprovalRequest{
		RequestID:       d.RequestID,
		SubjectType:     string(d.SubjectType),
		Payload:         []byte(d.Payload),
		Status:          string(d.Status),
		StatusReason:    d.StatusReason,
		RequestedBy:     d.RequestedBy,
		RequestedByRole: string(d.RequestedByRole),
		ResolvedAt:      d.ResolvedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainRequest(m models.ApprovalRequest) domain.ApprovalRequest {
	return domain.ApprovalRequest{
		RequestID:       m.RequestID,
		SubjectType:     domain.RequestSubject(m.SubjectType),
		Payload:         m.Payload,
		Status:          domain.RequestStatus(m.Status),
		StatusReason:    m.StatusReason,
		RequestedBy:     m.RequestedBy,
		RequestedByRole: domain.Role(m.RequestedByRole),
		ResolvedAt:      m.ResolvedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const requestColumns = `request_id, subject_type, payload, status, status_reason, requested_by, requested_by_role, resolved_at, created_at, created_by, last_updated_at, last_updated_by`

// SaveRequest persists a new approval request.
func (r *PgxRequestRepository) SaveRequest(ctx context.Context, request domain.ApprovalRequest) error {
	m := toModelRequest(request)
	query := `
		INSERT INTO approval_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.SubjectType,
		m.Payload,
		m.Status,
		m.StatusReason,
		m.RequestedBy,
		m.RequestedByRole,
		m.ResolvedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save request %s: %w", m.RequestID, err)
	}
	return nil
}

// UpdateRequest replaces an existing request row wholesale. The full-row
// replace keeps write semantics identical to the in-memory store: no partial
// patches, last write wins.
func (r *PgxRequestRepository) UpdateRequest(ctx context.Context, request domain.ApprovalRequest) error {
	m := toModelRequest(request)
	query := `
		UPDATE approval_requests
		SET subject_type = $2,
		    payload = $3,
		    status = $4,
		    status_reason = $5,
		    requested_by = $6,
		    requested_by_role = $7,
		    resolved_at = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE request_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.SubjectType,
		m.Payload,
		m.Status,
		m.StatusReason,
		m.RequestedBy,
		m.RequestedByRole,
		m.ResolvedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update request %s: %w", m.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s: %w", m.RequestID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteRequest removes a request. Deleting an absent id is a no-op.
func (r *PgxRequestRepository) DeleteRequest(ctx context.Context, requestID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM approval_requests WHERE request_id = $1;`, requestID)
	if err != nil {
		return fmt.Errorf("failed to delete request %s: %w", requestID, err)
	}
	return nil
}

// FindRequestByID retrieves a request by its id.
func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM approval_requests WHERE request_id = $1;`

	var m models.ApprovalRequest
	err := r.Pool.QueryRow(ctx, query, requestID).Scan(
		&m.RequestID,
		&m.SubjectType,
		&m.Payload,
		&m.Status,
		&m.StatusReason,
		&m.RequestedBy,
		&m.RequestedByRole,
		&m.ResolvedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("request %s: %w", requestID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	d := toDomainRequest(m)
	return &d, nil
}

// ListRequests retrieves requests matching the filter, newest first.
func (r *PgxRequestRepository) ListRequests(ctx context.Context, filter portsrepo.RequestFilter) ([]domain.ApprovalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM approval_requests WHERE 1=1`
	args := []interface{}{}
	argN := 1

	if filter.SubjectType != "" {
		query += fmt.Sprintf(" AND subject_type = $%d", argN)
		args = append(args, string(filter.SubjectType))
		argN++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, string(filter.Status))
		argN++
	}
	if filter.RequestedBy != "" {
		query += fmt.Sprintf(" AND requested_by = $%d", argN)
		args = append(args, filter.RequestedBy)
		argN++
	}
	query += " ORDER BY created_at DESC, request_id DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.ApprovalRequest
	for rows.Next() {
		var m models.ApprovalRequest
		if err := rows.Scan(
			&m.RequestID,
			&m.SubjectType,
			&m.Payload,
			&m.Status,
			&m.StatusReason,
			&m.RequestedBy,
			&m.RequestedByRole,
			&m.ResolvedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, toDomainRequest(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}
	return requests, nil
}
