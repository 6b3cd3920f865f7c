package services

import (
	"context"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
	"github.com/buildsuite/site_ops_app/internal/dto"
)

// RequestReaderSvc defines read operations for approval requests.
type RequestReaderSvc interface {
	// GetRequestByID retrieves a specific request by its ID.
	GetRequestByID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error)

	// ListRequests retrieves requests matching the filter, newest first.
	ListRequests(ctx context.Context, params dto.ListRequestsParams) ([]domain.ApprovalRequest, error)
}

// RequestWriterSvc defines workflow operations for approval requests.
type RequestWriterSvc interface {
	// CreateRequest stores a new proposal in the PENDING state.
	CreateRequest(ctx context.Context, req dto.CreateRequestRequest, actor domain.Actor) (*domain.ApprovalRequest, error)

	// Transition moves a request along one edge of the workflow. On a
	// quantity-carrying approval the inventory effect is dispatched after the
	// workflow write; if that effect fails the transition stands and
	// inventoryWarning describes the pending reconciliation.
	Transition(ctx context.Context, requestID string, target domain.RequestStatus, actor domain.Actor, reason string) (request *domain.ApprovalRequest, inventoryWarning string, err error)
}

// RequestSvcFacade combines all approval request service interfaces.
type RequestSvcFacade interface {
	RequestReaderSvc
	RequestWriterSvc
}
