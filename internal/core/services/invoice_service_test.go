package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/core/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/platform/config"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockUserSvc     *MockUserService
	service         portssvc.InvoiceSvcFacade
	userID          string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockUserSvc = new(MockUserService)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockUserSvc, &config.Config{
		SellerName: "Engineering Consultancy Office",
		VATNumber:  "300000000000003",
	})
	suite.userID = uuid.NewString()
}

func (suite *InvoiceServiceTestSuite) allowInvoiceAccess() {
	suite.mockUserSvc.On("GetActor", mock.Anything, suite.userID).
		Return(actorWith(suite.userID, domain.CapInvoicesViewAll), nil)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_TotalAndQRComputed() {
	ctx := context.Background()
	suite.allowInvoiceAccess()

	req := dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-0001",
		ClientID:      uuid.NewString(),
		IssueDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Structural design", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(1500)},
			{Description: "Site visit", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(200)},
		},
	}

	var saved domain.Invoice
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Invoice)
		}).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceDraft, inv.Status)
	suite.True(inv.TotalAmount.Equal(decimal.NewFromInt(3600)))
	suite.NotEmpty(inv.QRCodeData)
	suite.NotEmpty(inv.QRCodeImage)
	suite.True(saved.TotalAmount.Equal(decimal.NewFromInt(3600)))
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RejectsNonPositiveQuantity() {
	ctx := context.Background()
	suite.allowInvoiceAccess()

	req := dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2026-0002",
		ClientID:      uuid.NewString(),
		IssueDate:     time.Now(),
		DueDate:       time.Now(),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "x", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_WithoutCapability() {
	ctx := context.Background()
	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(actorWith(suite.userID), nil).Once()

	_, err := suite.service.CreateInvoice(ctx, dto.CreateInvoiceRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ItemReplacementRecomputesTotal() {
	ctx := context.Background()
	suite.allowInvoiceAccess()
	invoiceID := uuid.NewString()

	existing := &domain.Invoice{
		InvoiceID:   invoiceID,
		Status:      domain.InvoiceDraft,
		IssueDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(100),
		Items: []domain.InvoiceItem{
			{ItemID: uuid.NewString(), InvoiceID: invoiceID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()

	var saved domain.Invoice
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Invoice)
		}).Return(nil).Once()

	inv, err := suite.service.UpdateInvoice(ctx, invoiceID, dto.UpdateInvoiceRequest{
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Revised design", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(250)},
		},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(inv.TotalAmount.Equal(decimal.NewFromInt(1000)))
	suite.Len(saved.Items, 1)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_HeaderOnlyKeepsItems() {
	ctx := context.Background()
	suite.allowInvoiceAccess()
	invoiceID := uuid.NewString()

	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		Status:    domain.InvoiceDraft,
		IssueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Items: []domain.InvoiceItem{
			{ItemID: uuid.NewString(), InvoiceID: invoiceID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(300)},
		},
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	status := "sent"
	inv, err := suite.service.UpdateInvoice(ctx, invoiceID, dto.UpdateInvoiceRequest{Status: &status}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceSent, inv.Status)
	suite.True(inv.TotalAmount.Equal(decimal.NewFromInt(600)))
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_SettlementFlipsToPaid() {
	ctx := context.Background()
	suite.allowInvoiceAccess()
	invoiceID := uuid.NewString()

	inv := &domain.Invoice{
		InvoiceID:   invoiceID,
		Status:      domain.InvoiceSent,
		TotalAmount: decimal.NewFromInt(1000),
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockInvoiceRepo.On("SumPaymentsForInvoice", ctx, invoiceID).Return(decimal.NewFromInt(1000), nil).Once()

	var updated domain.Invoice
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Invoice)
		}).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, invoiceID, dto.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(400),
		PaymentDate:   time.Now(),
		PaymentMethod: "bank_transfer",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(invoiceID, payment.InvoiceID)
	suite.Equal(domain.InvoicePaid, updated.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_PartialKeepsStatus() {
	ctx := context.Background()
	suite.allowInvoiceAccess()
	invoiceID := uuid.NewString()

	inv := &domain.Invoice{
		InvoiceID:   invoiceID,
		Status:      domain.InvoiceSent,
		TotalAmount: decimal.NewFromInt(1000),
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockInvoiceRepo.On("SumPaymentsForInvoice", ctx, invoiceID).Return(decimal.NewFromInt(400), nil).Once()

	_, err := suite.service.RecordPayment(ctx, invoiceID, dto.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(400),
		PaymentDate:   time.Now(),
		PaymentMethod: "cash",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_AlreadyPaidStaysPaid() {
	ctx := context.Background()
	suite.allowInvoiceAccess()
	invoiceID := uuid.NewString()

	inv := &domain.Invoice{
		InvoiceID:   invoiceID,
		Status:      domain.InvoicePaid,
		TotalAmount: decimal.NewFromInt(1000),
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockInvoiceRepo.On("SumPaymentsForInvoice", ctx, invoiceID).Return(decimal.NewFromInt(1500), nil).Once()

	_, err := suite.service.RecordPayment(ctx, invoiceID, dto.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(500),
		PaymentDate:   time.Now(),
		PaymentMethod: "cash",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	suite.allowInvoiceAccess()

	_, err := suite.service.RecordPayment(ctx, uuid.NewString(), dto.RecordPaymentRequest{
		Amount: decimal.Zero,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
