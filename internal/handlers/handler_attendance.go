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

// attendanceHandler handles HTTP requests related to daily submissions.
type attendanceHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

// newAttendanceHandler creates a new attendanceHandler.
func newAttendanceHandler(as portssvc.AttendanceSvcFacade) *attendanceHandler {
	return &attendanceHandler{attendanceService: as}
}

// registerAttendanceRoutes registers routes related to attendance.
func registerAttendanceRoutes(rg *gin.RouterGroup, attendanceService portssvc.AttendanceSvcFacade) {
	h := newAttendanceHandler(attendanceService)

	attendance := rg.Group("/attendance")
	{
		attendance.POST("", h.submitAttendance)
		attendance.GET("", h.getAttendanceByKey)
		attendance.GET("/logs", h.listLogs)
		attendance.GET("/:id/entries", h.listEntries)
		attendance.DELETE("/:id", h.deleteAttendance)
	}
}

// submitAttendance godoc
// @Summary Submit a daily attendance roster
// @Description Upserts the submission keyed by (date, project, submitter); re-submission replaces the earlier roster wholesale
// @Tags attendance
// @Accept  json
// @Produce  json
// @Param   submission body dto.SubmitAttendanceRequest true "Full roster for one project day"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 423 {object} map[string]string "Submission window closed"
// @Security BearerAuth
// @Router /attendance [post]
func (h *attendanceHandler) submitAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitAttendance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	log, entries, err := h.attendanceService.SubmitAttendance(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrLocked):
			logger.Warn("Submission outside mutability window", slog.String("error", err.Error()))
			c.JSON(http.StatusLocked, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to submit attendance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AttendanceResponse{
		Log:     dto.ToAttendanceLogResponse(log),
		Entries: dto.ToAttendanceEntryResponses(entries),
	})
}

// getAttendanceByKey godoc
// @Summary Get a submission by its composite key
// @Tags attendance
// @Produce  json
// @Param   date query string true "YYYY-MM-DD"
// @Param   projectID query string true "Project id"
// @Param   submitterID query string true "Submitter user id"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 404 {object} map[string]string "No submission for that key"
// @Security BearerAuth
// @Router /attendance [get]
func (h *attendanceHandler) getAttendanceByKey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.GetAttendanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	key := domain.AttendanceKey{Date: params.Date, ProjectID: params.ProjectID, SubmitterID: params.SubmitterID}
	log, entries, err := h.attendanceService.GetAttendanceByKey(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No submission for that key"})
		} else {
			logger.Error("Failed to get attendance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AttendanceResponse{
		Log:     dto.ToAttendanceLogResponse(log),
		Entries: dto.ToAttendanceEntryResponses(entries),
	})
}

// listLogs godoc
// @Summary List submission headers
// @Tags attendance
// @Produce  json
// @Param   projectID query string false "Narrow to one project"
// @Success 200 {array} dto.AttendanceLogResponse
// @Security BearerAuth
// @Router /attendance/logs [get]
func (h *attendanceHandler) listLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	logs, err := h.attendanceService.ListLogs(c.Request.Context(), c.Query("projectID"))
	if err != nil {
		logger.Error("Failed to list attendance logs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list attendance logs"})
		return
	}

	responses := make([]dto.AttendanceLogResponse, len(logs))
	for i := range logs {
		responses[i] = dto.ToAttendanceLogResponse(&logs[i])
	}
	c.JSON(http.StatusOK, responses)
}

// listEntries godoc
// @Summary List the entries of one submission
// @Tags attendance
// @Produce  json
// @Param   id path string true "Attendance log id"
// @Success 200 {array} dto.AttendanceEntryResponse
// @Security BearerAuth
// @Router /attendance/{id}/entries [get]
func (h *attendanceHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.attendanceService.EntriesFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAttendanceEntryResponses(entries))
}

// deleteAttendance godoc
// @Summary Delete a submission
// @Description Hard-deletes a log and its entries. Admin tier only.
// @Tags attendance
// @Produce  json
// @Param   id path string true "Attendance log id"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Role may not delete submissions"
// @Security BearerAuth
// @Router /attendance/{id} [delete]
func (h *attendanceHandler) deleteAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	attendanceID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.attendanceService.DeleteAttendance(c.Request.Context(), attendanceID, actor); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Deletion forbidden", slog.String("attendance_id", attendanceID))
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to delete attendance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete attendance"})
		}
		return
	}

	logger.Info("Attendance deleted", slog.String("attendance_id", attendanceID))
	c.Status(http.StatusNoContent)
}
