package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portssvc "github.com/buildsuite/site_ops_app/internal/core/ports/services"
	"github.com/buildsuite/site_ops_app/internal/dto"
	"github.com/buildsuite/site_ops_app/internal/middleware"
)

// requestHandler handles HTTP requests related to approval workflows.
type requestHandler struct {
	requestService portssvc.RequestSvcFacade
}

// newRequestHandler creates a new requestHandler.
func newRequestHandler(rs portssvc.RequestSvcFacade) *requestHandler {
	return &requestHandler{requestService: rs}
}

// registerRequestRoutes registers routes related to approval requests.
func registerRequestRoutes(rg *gin.RouterGroup, requestService portssvc.RequestSvcFacade) {
	h := newRequestHandler(requestService)

	requests := rg.Group("/requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/:id", h.getRequest)
		requests.POST("/:id/transition", h.transitionRequest)
	}
}

// createRequest godoc
// @Summary Create an approval request
// @Description Submits a new asset, manpower or stock proposal in the PENDING state
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateRequestRequest true "Proposal"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /requests [post]
func (h *requestHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.requestService.CreateRequest(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		}
		return
	}

	logger.Info("Request created", slog.String("request_id", created.RequestID), slog.String("subject_type", string(created.SubjectType)))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(created))
}

// listRequests godoc
// @Summary List approval requests
// @Description Lists requests newest first, optionally filtered by subject type, status or requester
// @Tags requests
// @Produce  json
// @Param   subjectType query string false "ASSET, MANPOWER or STOCK"
// @Param   status query string false "Workflow status"
// @Param   requestedBy query string false "Requester user id"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /requests [get]
func (h *requestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	requests, err := h.requestService.ListRequests(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}

	responses := make([]dto.RequestResponse, len(requests))
	for i := range requests {
		responses[i] = dto.ToRequestResponse(&requests[i])
	}
	c.JSON(http.StatusOK, dto.ListRequestsResponse{Requests: responses})
}

// getRequest godoc
// @Summary Get an approval request by ID
// @Tags requests
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /requests/{id} [get]
func (h *requestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	request, err := h.requestService.GetRequestByID(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		} else {
			logger.Error("Failed to get request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve request"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// transitionRequest godoc
// @Summary Transition an approval request
// @Description Moves a request along one workflow edge (approve, reject, forward, finalApprove, cancel, deactivate)
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   transition body dto.TransitionRequest true "Target status and optional reason"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} map[string]string "Illegal transition or missing reason"
// @Failure 403 {object} map[string]string "Role not authorized for this edge"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /requests/{id}/transition [post]
func (h *requestHandler) transitionRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transitionRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("request_id", requestID), slog.String("target_status", req.TargetStatus))

	updated, warning, err := h.requestService.Transition(c.Request.Context(), requestID, domain.RequestStatus(req.TargetStatus), actor, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Transition forbidden", slog.String("error", err.Error()))
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrIllegalTransition), errors.Is(err, apperrors.ErrReasonRequired):
			logger.Warn("Transition rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to transition request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transition request"})
		}
		return
	}

	logger.Info("Request transitioned", slog.String("new_status", string(updated.Status)))
	c.JSON(http.StatusOK, dto.TransitionResponse{
		Request:          dto.ToRequestResponse(updated),
		InventoryWarning: warning,
	})
}
