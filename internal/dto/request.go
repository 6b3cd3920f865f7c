package dto

import (
	"encoding/json"
	"time"

	"github.com/buildsuite/site_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRequestRequest is the payload for creating an approval request.
// The payload is kept opaque to the workflow; the typed payload structs below
// document what the construction front end actually sends per subject.
type CreateRequestRequest struct {
	SubjectType string          `json:"subjectType" binding:"required,oneof=ASSET MANPOWER STOCK"`
	Payload     json.RawMessage `json:"payload" binding:"required"`
}

// AssetRequestPayload is the conventional payload of an ASSET request.
type AssetRequestPayload struct {
	AssetName   string          `json:"assetName"`
	InventoryID string          `json:"inventoryId"`
	LocationKey string          `json:"locationKey"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Remarks     string          `json:"remarks,omitempty"`
}

// StockRequestPayload is the conventional payload of a STOCK request.
type StockRequestPayload struct {
	MaterialName string          `json:"materialName"`
	InventoryID  string          `json:"inventoryId"`
	LocationKey  string          `json:"locationKey"`
	Quantity     int64           `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	Remarks      string          `json:"remarks,omitempty"`
}

// ManpowerRequestPayload is the conventional payload of a MANPOWER request.
type ManpowerRequestPayload struct {
	PersonName  string `json:"personName"`
	Trade       string `json:"trade"` // mason, carpenter, electrician, ...
	Phone       string `json:"phone,omitempty"`
	ProjectID   string `json:"projectId"`
	JoiningDate string `json:"joiningDate,omitempty"` // YYYY-MM-DD
}

// TransitionRequest is the payload for moving a request through the workflow.
type TransitionRequest struct {
	TargetStatus string `json:"targetStatus" binding:"required"`
	Reason       string `json:"reason,omitempty"`
}

// ListRequestsParams narrows request listing.
type ListRequestsParams struct {
	SubjectType string `form:"subjectType" binding:"omitempty,oneof=ASSET MANPOWER STOCK"`
	Status      string `form:"status"`
	RequestedBy string `form:"requestedBy"`
}

// RequestResponse is the API representation of an approval request.
type RequestResponse struct {
	RequestID       string          `json:"requestID"`
	SubjectType     string          `json:"subjectType"`
	Payload         json.RawMessage `json:"payload"`
	Status          string          `json:"status"`
	StatusReason    string          `json:"statusReason,omitempty"`
	RequestedBy     string          `json:"requestedBy"`
	RequestedByRole string          `json:"requestedByRole"`
	CreatedAt       time.Time       `json:"createdAt"`
	ResolvedAt      *time.Time      `json:"resolvedAt,omitempty"`
}

// TransitionResponse is the result of a workflow transition. InventoryWarning
// is set when the transition itself succeeded but the post-approval inventory
// mutation failed and needs operator reconciliation.
type TransitionResponse struct {
	Request          RequestResponse `json:"request"`
	InventoryWarning string          `json:"inventoryWarning,omitempty"`
}

// ListRequestsResponse wraps a request listing.
type ListRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// ToRequestResponse maps a domain request to its API representation.
func ToRequestResponse(r *domain.ApprovalRequest) RequestResponse {
	return RequestResponse{
		RequestID:       r.RequestID,
		SubjectType:     string(r.SubjectType),
		Payload:         r.Payload,
		Status:          string(r.Status),
		StatusReason:    r.StatusReason,
		RequestedBy:     r.RequestedBy,
		RequestedByRole: string(r.RequestedByRole),
		CreatedAt:       r.CreatedAt,
		ResolvedAt:      r.ResolvedAt,
	}
}
