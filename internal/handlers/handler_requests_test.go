package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portssvc "github.com/buildsuite/site_ops_app/internal/core/ports/services"
	"github.com/buildsuite/site_ops_app/internal/dto"
	"github.com/buildsuite/site_ops_app/internal/handlers"
	"github.com/buildsuite/site_ops_app/internal/middleware"
	"github.com/buildsuite/site_ops_app/internal/platform/config"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// --- Mock RequestService ---
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) CreateRequest(ctx context.Context, req dto.CreateRequestRequest, actor domain.Actor) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockRequestService) Transition(ctx context.Context, requestID string, target domain.RequestStatus, actor domain.Actor, reason string) (*domain.ApprovalRequest, string, error) {
	args := m.Called(ctx, requestID, target, actor, reason)
	var request *domain.ApprovalRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.ApprovalRequest)
	}
	return request, args.String(1), args.Error(2)
}

func (m *MockRequestService) GetRequestByID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockRequestService) ListRequests(ctx context.Context, params dto.ListRequestsParams) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

var _ portssvc.RequestSvcFacade = (*MockRequestService)(nil)

// --- Mock AttendanceService ---
type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) SubmitAttendance(ctx context.Context, req dto.SubmitAttendanceRequest, actor domain.Actor) (*domain.AttendanceLog, []domain.AttendanceEntry, error) {
	args := m.Called(ctx, req, actor)
	var log *domain.AttendanceLog
	if args.Get(0) != nil {
		log = args.Get(0).(*domain.AttendanceLog)
	}
	var entries []domain.AttendanceEntry
	if args.Get(1) != nil {
		entries = args.Get(1).([]domain.AttendanceEntry)
	}
	return log, entries, args.Error(2)
}

func (m *MockAttendanceService) DeleteAttendance(ctx context.Context, attendanceID string, actor domain.Actor) error {
	args := m.Called(ctx, attendanceID, actor)
	return args.Error(0)
}

func (m *MockAttendanceService) GetAttendanceByKey(ctx context.Context, key domain.AttendanceKey) (*domain.AttendanceLog, []domain.AttendanceEntry, error) {
	args := m.Called(ctx, key)
	var log *domain.AttendanceLog
	if args.Get(0) != nil {
		log = args.Get(0).(*domain.AttendanceLog)
	}
	var entries []domain.AttendanceEntry
	if args.Get(1) != nil {
		entries = args.Get(1).([]domain.AttendanceEntry)
	}
	return log, entries, args.Error(2)
}

func (m *MockAttendanceService) EntriesFor(ctx context.Context, attendanceID string) ([]domain.AttendanceEntry, error) {
	args := m.Called(ctx, attendanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceEntry), args.Error(1)
}

func (m *MockAttendanceService) ListLogs(ctx context.Context, projectID string) ([]domain.AttendanceLog, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceLog), args.Error(1)
}

var _ portssvc.AttendanceSvcFacade = (*MockAttendanceService)(nil)

// --- Mock InventoryService ---
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) CreateRecord(ctx context.Context, req dto.CreateInventoryRequest, actor domain.Actor) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}

func (m *MockInventoryService) AdjustQuantity(ctx context.Context, inventoryID string, req dto.AdjustInventoryRequest, actor domain.Actor) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, inventoryID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}

func (m *MockInventoryService) ApplyDelta(ctx context.Context, inventoryID, locationKey string, delta int64, updatedBy string) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, inventoryID, locationKey, delta, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}

func (m *MockInventoryService) GetRecord(ctx context.Context, inventoryID, locationKey string) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, inventoryID, locationKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}

func (m *MockInventoryService) ListRecords(ctx context.Context, locationKey string) ([]domain.InventoryRecord, error) {
	args := m.Called(ctx, locationKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryRecord), args.Error(1)
}

var _ portssvc.InventorySvcFacade = (*MockInventoryService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterUserRequest, createdBy string) (*domain.User, error) {
	args := m.Called(ctx, req, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// newTestRouter wires the full route table against mocked services.
func newTestRouter(services *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	handlers.RegisterRoutes(r, cfg, services)
	return r
}

func testToken(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	claims := middleware.SessionClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "site-ops-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

// --- Test Suite ---
type RequestHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockRequestService *MockRequestService
}

func (suite *RequestHandlerTestSuite) SetupTest() {
	suite.mockRequestService = new(MockRequestService)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Request:    suite.mockRequestService,
		Attendance: new(MockAttendanceService),
		Inventory:  new(MockInventoryService),
		User:       new(MockUserService),
	})
}

func (suite *RequestHandlerTestSuite) do(method, url string, body any, userID string, role domain.Role) *httptest.ResponseRecorder {
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

func (suite *RequestHandlerTestSuite) TestCreateRequest_Success() {
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}
	created := &domain.ApprovalRequest{
		RequestID:   "req-1",
		SubjectType: domain.SubjectStock,
		Payload:     json.RawMessage(`{"quantity":50}`),
		Status:      domain.StatusPending,
		RequestedBy: actor.UserID,
	}

	suite.mockRequestService.On("CreateRequest", mock.Anything, mock.AnythingOfType("dto.CreateRequestRequest"), actor).
		Return(created, nil).Once()

	body := dto.CreateRequestRequest{SubjectType: "STOCK", Payload: json.RawMessage(`{"quantity":50}`)}
	w := suite.do(http.MethodPost, "/api/v1/requests", body, actor.UserID, actor.Role)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RequestResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("req-1", resp.RequestID)
	suite.Equal("PENDING", resp.Status)
	suite.mockRequestService.AssertExpectations(suite.T())
}

func (suite *RequestHandlerTestSuite) TestCreateRequest_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRequestService.AssertNotCalled(suite.T(), "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestHandlerTestSuite) TestTransition_SuccessWithWarning() {
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	updated := &domain.ApprovalRequest{
		RequestID:   "req-1",
		SubjectType: domain.SubjectAsset,
		Payload:     json.RawMessage(`{"quantity":3}`),
		Status:      domain.StatusApproved,
	}

	suite.mockRequestService.On("Transition", mock.Anything, "req-1", domain.StatusApproved, actor, "").
		Return(updated, "inventory update for item inv-7 at site-b failed: not found", nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/transition",
		dto.TransitionRequest{TargetStatus: "APPROVED"}, actor.UserID, actor.Role)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransitionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("APPROVED", resp.Request.Status)
	suite.NotEmpty(resp.InventoryWarning)
}

func (suite *RequestHandlerTestSuite) TestTransition_ErrorMapping() {
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"illegal transition", apperrors.ErrIllegalTransition, http.StatusBadRequest},
		{"reason required", apperrors.ErrReasonRequired, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockRequestService.On("Transition", mock.Anything, "req-1", domain.StatusRejected, actor, "").
				Return(nil, "", tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/requests/req-1/transition",
				dto.TransitionRequest{TargetStatus: "REJECTED"}, actor.UserID, actor.Role)

			suite.Equal(tt.wantCode, w.Code)
		})
	}
}

func (suite *RequestHandlerTestSuite) TestGetRequest_NotFound() {
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}

	suite.mockRequestService.On("GetRequestByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/requests/missing", nil, actor.UserID, actor.Role)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RequestHandlerTestSuite) TestListRequests_FilterPassthrough() {
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}

	suite.mockRequestService.On("ListRequests", mock.Anything, dto.ListRequestsParams{SubjectType: "STOCK", Status: "PENDING"}).
		Return([]domain.ApprovalRequest{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/requests?subjectType=STOCK&status=PENDING", nil, actor.UserID, actor.Role)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRequestService.AssertExpectations(suite.T())
}

func TestRequestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RequestHandlerTestSuite))
}
