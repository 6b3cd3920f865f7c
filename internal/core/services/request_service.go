package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portsrepo "github.com/buildsuite/site_ops_app/internal/core/ports/repositories"
	portssvc "github.com/buildsuite/site_ops_app/internal/core/ports/services"
	"github.com/buildsuite/site_ops_app/internal/dto"
	"github.com/buildsuite/site_ops_app/internal/middleware"
)

// requestService runs the approval workflow: creation in PENDING, transitions
// against the edge table, and dispatch of the inventory effect after
// quantity-carrying approvals.
type requestService struct {
	requestRepo  portsrepo.RequestRepositoryFacade
	inventorySvc portssvc.InventoryEffectSvc
}

// NewRequestService creates a new request workflow service.
func NewRequestService(requestRepo portsrepo.RequestRepositoryFacade, inventorySvc portssvc.InventoryEffectSvc) portssvc.RequestSvcFacade {
	return &requestService{
		requestRepo:  requestRepo,
		inventorySvc: inventorySvc,
	}
}

var _ portssvc.RequestSvcFacade = (*requestService)(nil)

// CreateRequest stores a new proposal. Every proposal starts PENDING with no
// status reason, whoever submits it.
func (s *requestService) CreateRequest(ctx context.Context, req dto.CreateRequestRequest, actor domain.Actor) (*domain.ApprovalRequest, error) {
	subject := domain.RequestSubject(req.SubjectType)
	if !subject.IsValid() {
		return nil, fmt.Errorf("%w: unknown subject type %q", apperrors.ErrValidation, req.SubjectType)
	}
	if len(req.Payload) == 0 || !json.Valid(req.Payload) {
		return nil, fmt.Errorf("%w: payload must be a JSON document", apperrors.ErrValidation)
	}
	if !actor.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, actor.Role)
	}

	now := time.Now().UTC()
	request := domain.ApprovalRequest{
		RequestID:       uuid.NewString(),
		SubjectType:     subject,
		Payload:         req.Payload,
		Status:          domain.StatusPending,
		RequestedBy:     actor.UserID,
		RequestedByRole: actor.Role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save %s request: %w", subject, err)
	}
	return &request, nil
}

// Transition applies one workflow edge and persists the result. The engine
// itself is pure; persistence happens only after it has produced the full
// next record, so a failed validation leaves the stored record untouched.
func (s *requestService) Transition(ctx context.Context, requestID string, target domain.RequestStatus, actor domain.Actor, reason string) (*domain.ApprovalRequest, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	current, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	next, err := applyTransition(*current, target, actor, reason, now)
	if err != nil {
		return nil, "", err
	}
	next.LastUpdatedAt = now
	next.LastUpdatedBy = actor.UserID

	if err := s.requestRepo.UpdateRequest(ctx, next); err != nil {
		return nil, "", fmt.Errorf("failed to persist transition of request %s: %w", requestID, err)
	}

	// The inventory effect is a separate write against a separate collection.
	// The approval is a business decision already made, so a failure here is
	// surfaced for reconciliation instead of rolling the workflow back.
	warning := ""
	if next.CarriesQuantity(target) {
		warning = s.dispatchInventoryEffect(ctx, &next, actor)
		if warning != "" {
			logger.Warn("Inventory sync failed after approval",
				slog.String("request_id", next.RequestID),
				slog.String("warning", warning))
		}
	}

	return &next, warning, nil
}

func (s *requestService) dispatchInventoryEffect(ctx context.Context, request *domain.ApprovalRequest, actor domain.Actor) string {
	var qty domain.QuantityPayload
	if err := json.Unmarshal(request.Payload, &qty); err != nil {
		return fmt.Sprintf("request payload is not quantity-bearing: %v", err)
	}
	if qty.InventoryID == "" || qty.LocationKey == "" {
		return "request payload names no inventory target; stock not updated"
	}

	if _, err := s.inventorySvc.ApplyDelta(ctx, qty.InventoryID, qty.LocationKey, qty.Quantity, actor.UserID); err != nil {
		return fmt.Sprintf("inventory update for item %s at %s failed: %v", qty.InventoryID, qty.LocationKey, err)
	}
	return ""
}

// GetRequestByID retrieves one request.
func (s *requestService) GetRequestByID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	return s.requestRepo.FindRequestByID(ctx, requestID)
}

// ListRequests retrieves requests matching the filter, newest first.
func (s *requestService) ListRequests(ctx context.Context, params dto.ListRequestsParams) ([]domain.ApprovalRequest, error) {
	filter := portsrepo.RequestFilter{
		SubjectType: domain.RequestSubject(params.SubjectType),
		Status:      domain.RequestStatus(params.Status),
		RequestedBy: params.RequestedBy,
	}
	return s.requestRepo.ListRequests(ctx, filter)
}
