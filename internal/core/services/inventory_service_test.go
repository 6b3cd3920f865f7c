package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buildsuite/site_ops_app/internal/apperrors"
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	portssvc "github.com/buildsuite/site_ops_app/internal/core/ports/services"
	"github.com/buildsuite/site_ops_app/internal/core/services"
	"github.com/buildsuite/site_ops_app/internal/dto"
)

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) SaveRecord(ctx context.Context, record domain.InventoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInventoryRepository) AdjustQuantity(ctx context.Context, inventoryID, locationKey string, delta int64, updatedBy string) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, inventoryID, locationKey, delta, updatedBy)
	var rec *domain.InventoryRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.InventoryRecord)
	}
	return rec, args.Error(1)
}

func (m *MockInventoryRepository) FindRecord(ctx context.Context, inventoryID, locationKey string) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, inventoryID, locationKey)
	var rec *domain.InventoryRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.InventoryRecord)
	}
	return rec, args.Error(1)
}

func (m *MockInventoryRepository) ListRecords(ctx context.Context, locationKey string) ([]domain.InventoryRecord, error) {
	args := m.Called(ctx, locationKey)
	var recs []domain.InventoryRecord
	if args.Get(0) != nil {
		recs = args.Get(0).([]domain.InventoryRecord)
	}
	return recs, args.Error(1)
}

// --- Test Suite ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	service           portssvc.InventorySvcFacade
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo)
}

// --- CreateRecord Tests ---

func (suite *InventoryServiceTestSuite) TestCreateRecord_Success() {
	ctx := context.Background()
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	req := dto.CreateInventoryRequest{
		Name:        "OPC 53 Cement",
		Quantity:    200,
		Unit:        "bag",
		LocationKey: "site-a",
		UnitCost:    decimal.NewFromInt(420),
	}

	suite.mockInventoryRepo.On("SaveRecord", ctx, mock.MatchedBy(func(rec domain.InventoryRecord) bool {
		return rec.Name == req.Name &&
			rec.QuantityOnHand == req.Quantity &&
			rec.LocationKey == req.LocationKey &&
			rec.InventoryID != ""
	})).Return(nil).Once()

	created, err := suite.service.CreateRecord(ctx, req, actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(200), created.QuantityOnHand)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestCreateRecord_EngineerForbidden() {
	ctx := context.Background()
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}

	created, err := suite.service.CreateRecord(ctx, dto.CreateInventoryRequest{Name: "Sand"}, actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(created)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "SaveRecord", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestCreateRecord_NegativeOpeningQuantity() {
	ctx := context.Background()
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	created, err := suite.service.CreateRecord(ctx, dto.CreateInventoryRequest{Name: "Sand", Quantity: -5}, actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
}

// --- AdjustQuantity Tests ---

func (suite *InventoryServiceTestSuite) TestAdjustQuantity_DelegatesToRepo() {
	ctx := context.Background()
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	updated := &domain.InventoryRecord{InventoryID: "inv-1", LocationKey: "site-a", QuantityOnHand: 150}

	suite.mockInventoryRepo.On("AdjustQuantity", ctx, "inv-1", "site-a", int64(-50), actor.UserID).
		Return(updated, nil).Once()

	rec, err := suite.service.AdjustQuantity(ctx, "inv-1", dto.AdjustInventoryRequest{LocationKey: "site-a", Delta: -50}, actor)

	suite.Require().NoError(err)
	suite.Equal(updated, rec)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestAdjustQuantity_EngineerForbidden() {
	ctx := context.Background()
	actor := domain.Actor{UserID: "engineer-1", Role: domain.RoleEngineer}

	rec, err := suite.service.AdjustQuantity(ctx, "inv-1", dto.AdjustInventoryRequest{LocationKey: "site-a", Delta: 10}, actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(rec)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ApplyDelta Tests ---

func (suite *InventoryServiceTestSuite) TestApplyDelta_MissingRecord() {
	ctx := context.Background()

	suite.mockInventoryRepo.On("AdjustQuantity", ctx, "inv-gone", "site-a", int64(5), "admin-1").
		Return(nil, apperrors.ErrInventoryNotFound).Once()

	rec, err := suite.service.ApplyDelta(ctx, "inv-gone", "site-a", 5, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInventoryNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound) // the inventory sentinel wraps the general one
	suite.Nil(rec)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
