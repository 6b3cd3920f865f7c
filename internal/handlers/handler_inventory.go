package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	portssvc "github.com/buildsuite/site_ops_app/internal/core/ports/services"
	"github.com/buildsuite/site_ops_app/internal/dto"
	"github.com/buildsuite/site_ops_app/internal/middleware"
)

// inventoryHandler handles HTTP requests related to stocked items.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes related to inventory.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("", h.createRecord)
		inventory.GET("", h.listRecords)
		inventory.POST("/:id/adjust", h.adjustQuantity)
	}
}

// createRecord godoc
// @Summary Register a stocked item at a location
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   record body dto.CreateInventoryRequest true "Item details"
// @Success 201 {object} dto.InventoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Admin tier only"
// @Security BearerAuth
// @Router /inventory [post]
func (h *inventoryHandler) createRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.inventoryService.CreateRecord(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create inventory record", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory record"})
		}
		return
	}

	logger.Info("Inventory record created", slog.String("inventory_id", record.InventoryID), slog.String("location", record.LocationKey))
	c.JSON(http.StatusCreated, dto.ToInventoryResponse(record))
}

// listRecords godoc
// @Summary List stocked items
// @Tags inventory
// @Produce  json
// @Param   locationKey query string false "Narrow to one location"
// @Success 200 {object} dto.ListInventoryResponse
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInventoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.inventoryService.ListRecords(c.Request.Context(), params.LocationKey)
	if err != nil {
		logger.Error("Failed to list inventory", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inventory"})
		return
	}

	responses := make([]dto.InventoryResponse, len(records))
	for i := range records {
		responses[i] = dto.ToInventoryResponse(&records[i])
	}
	c.JSON(http.StatusOK, dto.ListInventoryResponse{Records: responses})
}

// adjustQuantity godoc
// @Summary Adjust the quantity of a stocked item
// @Description Applies a direct administrative delta to quantityOnHand. Admin tier only.
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   id path string true "Inventory id"
// @Param   adjustment body dto.AdjustInventoryRequest true "Location and delta"
// @Success 200 {object} dto.InventoryResponse
// @Failure 403 {object} map[string]string "Admin tier only"
// @Failure 404 {object} map[string]string "No record matches both keys"
// @Security BearerAuth
// @Router /inventory/{id}/adjust [post]
func (h *inventoryHandler) adjustQuantity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	inventoryID := c.Param("id")

	var req dto.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.inventoryService.AdjustQuantity(c.Request.Context(), inventoryID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInventoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to adjust inventory", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust inventory"})
		}
		return
	}

	logger.Info("Inventory adjusted", slog.String("inventory_id", inventoryID), slog.Int64("new_quantity", record.QuantityOnHand))
	c.JSON(http.StatusOK, dto.ToInventoryResponse(record))
}
