package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portssvc "github.com/buildsuite/site_ops_app/internal/core/ports/services"
	"github.com/buildsuite/site_ops_app/internal/dto"
)

type AttendanceHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockAttendanceService *MockAttendanceService
}

func (suite *AttendanceHandlerTestSuite) SetupTest() {
	suite.mockAttendanceService = new(MockAttendanceService)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Request:    new(MockRequestService),
		Attendance: suite.mockAttendanceService,
		Inventory:  new(MockInventoryService),
		User:       new(MockUserService),
	})
}

func (suite *AttendanceHandlerTestSuite) do(method, url string, body any, userID string, role domain.Role) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(suite.T(), userID, role))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func validRoster() dto.SubmitAttendanceRequest {
	return dto.SubmitAttendanceRequest{
		Date:        "2026-03-14",
		ProjectID:   "proj-1",
		ProjectName: "Riverside Tower",
		Entries: []dto.SubmitAttendanceEntry{
			{PersonID: "w-1", PersonName: "Mason One", Status: "PRESENT"},
			{PersonID: "w-2", PersonName: "Mason Two", Status: "ABSENT"},
		},
	}
}

func (suite *AttendanceHandlerTestSuite) TestSubmitAttendance_Success() {
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}
	storedLog := &domain.AttendanceLog{
		AttendanceID: "log-1",
		Date:         "2026-03-14",
		ProjectID:    "proj-1",
		SubmitterID:  actor.UserID,
		Summary:      domain.AttendanceSummary{Present: 1, Absent: 1},
	}
	storedEntries := []domain.AttendanceEntry{
		{EntryID: "e-1", AttendanceID: "log-1", PersonID: "w-1", Status: domain.MarkPresent},
		{EntryID: "e-2", AttendanceID: "log-1", PersonID: "w-2", Status: domain.MarkAbsent},
	}

	suite.mockAttendanceService.On("SubmitAttendance", mock.Anything, mock.AnythingOfType("dto.SubmitAttendanceRequest"), actor).
		Return(storedLog, storedEntries, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/attendance", validRoster(), actor.UserID, actor.Role)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AttendanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("log-1", resp.Log.AttendanceID)
	suite.Len(resp.Entries, 2)
	suite.mockAttendanceService.AssertExpectations(suite.T())
}

func (suite *AttendanceHandlerTestSuite) TestSubmitAttendance_WindowClosedMapsTo423() {
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}

	suite.mockAttendanceService.On("SubmitAttendance", mock.Anything, mock.AnythingOfType("dto.SubmitAttendanceRequest"), actor).
		Return(nil, nil, apperrors.ErrLocked).Once()

	w := suite.do(http.MethodPost, "/api/v1/attendance", validRoster(), actor.UserID, actor.Role)

	suite.Equal(http.StatusLocked, w.Code)
}

func (suite *AttendanceHandlerTestSuite) TestSubmitAttendance_EmptyRosterRejectedAtBinding() {
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}
	roster := validRoster()
	roster.Entries = nil

	w := suite.do(http.MethodPost, "/api/v1/attendance", roster, actor.UserID, actor.Role)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAttendanceService.AssertNotCalled(suite.T(), "SubmitAttendance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AttendanceHandlerTestSuite) TestGetAttendanceByKey_Success() {
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	key := domain.AttendanceKey{Date: "2026-03-14", ProjectID: "proj-1", SubmitterID: "engineer-1"}
	storedLog := &domain.AttendanceLog{AttendanceID: "log-1", Date: key.Date, ProjectID: key.ProjectID, SubmitterID: key.SubmitterID}

	suite.mockAttendanceService.On("GetAttendanceByKey", mock.Anything, key).
		Return(storedLog, []domain.AttendanceEntry{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/attendance?date=2026-03-14&projectID=proj-1&submitterID=engineer-1", nil, actor.UserID, actor.Role)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAttendanceService.AssertExpectations(suite.T())
}

func (suite *AttendanceHandlerTestSuite) TestGetAttendanceByKey_NotFound() {
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	suite.mockAttendanceService.On("GetAttendanceByKey", mock.Anything, mock.AnythingOfType("domain.AttendanceKey")).
		Return(nil, nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/attendance?date=2026-03-14&projectID=proj-9&submitterID=engineer-1", nil, actor.UserID, actor.Role)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AttendanceHandlerTestSuite) TestDeleteAttendance_ForbiddenMapsTo403() {
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}

	suite.mockAttendanceService.On("DeleteAttendance", mock.Anything, "log-1", actor).
		Return(apperrors.ErrForbidden).Once()

	w := suite.do(http.MethodDelete, "/api/v1/attendance/log-1", nil, actor.UserID, actor.Role)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AttendanceHandlerTestSuite) TestDeleteAttendance_AdminNoContent() {
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	suite.mockAttendanceService.On("DeleteAttendance", mock.Anything, "log-1", actor).
		Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/attendance/log-1", nil, actor.UserID, actor.Role)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAttendanceService.AssertExpectations(suite.T())
}

func TestAttendanceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceHandlerTestSuite))
}
