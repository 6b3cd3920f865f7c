package repositories

import (
	"context"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
)

// RequestFilter narrows ListRequests. Zero values mean "no constraint".
type RequestFilter struct {
	SubjectType domain.RequestSubject
	Status      domain.RequestStatus
	RequestedBy string
}

// RequestReader defines read operations for approval request data.
type RequestReader interface {
	// FindRequestByID retrieves a specific request by its unique identifier.
	FindRequestByID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error)

	// ListRequests retrieves requests matching the filter, newest first.
	ListRequests(ctx context.Context, filter RequestFilter) ([]domain.ApprovalRequest, error)
}

// RequestWriter defines write operations for approval request data.
type RequestWriter interface {
	// SaveRequest persists a new request.
	SaveRequest(ctx context.Context, request domain.ApprovalRequest) error

	// UpdateRequest replaces an existing request row wholesale.
	// Returns apperrors.ErrNotFound if no row has the request's id.
	UpdateRequest(ctx context.Context, request domain.ApprovalRequest) error

	// DeleteRequest removes a request. Deleting an absent id is a no-op.
	DeleteRequest(ctx context.Context, requestID string) error
}

// RequestRepositoryFacade combines all request repository interfaces.
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
}
