package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/core/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo    *MockTransactionRepository
	mockTaskRepo   *MockTaskRepository
	mockClientRepo *MockClientRepository
	mockUserSvc    *MockUserService
	mockNotifier   *MockNotificationService
	service        portssvc.TransactionSvcFacade
	userID         string
	superuser      *domain.Actor
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockTaskRepo = new(MockTaskRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockUserSvc = new(MockUserService)
	suite.mockNotifier = new(MockNotificationService)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockTaskRepo,
		suite.mockClientRepo,
		suite.mockUserSvc,
		suite.mockNotifier,
	)

	suite.userID = uuid.NewString()
	suite.superuser = &domain.Actor{UserID: suite.userID, IsSuperuser: true}
}

// actorWith builds a non-superuser actor holding the given capability codes.
func actorWith(userID string, codes ...string) *domain.Actor {
	caps := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		caps[c] = struct{}{}
	}
	return &domain.Actor{UserID: userID, Capabilities: caps}
}

func (suite *TransactionServiceTestSuite) expectDefaultChecklist() {
	for _, code := range []string{"DOC001", "DOC005"} {
		suite.mockTxnRepo.On("FindDocumentTypeByCode", mock.Anything, code).
			Return(&domain.DocumentType{Code: code}, nil).Once()
	}
	suite.mockTxnRepo.On("SaveTransactionDocuments", mock.Anything, mock.AnythingOfType("[]domain.TransactionDocument")).Return(nil).Once()
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FirstOfMonth() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Title: "Villa design", Discipline: "ARCH"}

	suite.mockTxnRepo.On("MaxShortCodeInMonth", ctx, mock.AnythingOfType("int"), mock.AnythingOfType("time.Month")).
		Return("", nil).Once()

	var savedCode string
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			savedCode = args.Get(1).(domain.Transaction).ShortCode
		}).Return(nil).Once()
	suite.expectDefaultChecklist()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)

	now := time.Now().UTC()
	expected := fmt.Sprintf("PROJ-ARCH-%d-%02d-0001", now.Year(), int(now.Month()))
	suite.Equal(expected, savedCode)
	suite.Equal(expected, txn.ShortCode)
	suite.Equal(domain.TxnNew, txn.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ContinuesSequence() {
	ctx := context.Background()
	now := time.Now().UTC()
	prior := fmt.Sprintf("PROJ-STRU-%d-%02d-0041", now.Year(), int(now.Month()))

	suite.mockTxnRepo.On("MaxShortCodeInMonth", ctx, now.Year(), now.Month()).Return(prior, nil).Once()

	var savedCode string
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			savedCode = args.Get(1).(domain.Transaction).ShortCode
		}).Return(nil).Once()
	suite.expectDefaultChecklist()

	_, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{Title: "t", Discipline: "ELEC"}, suite.userID)

	suite.Require().NoError(err)
	expected := fmt.Sprintf("PROJ-ELEC-%d-%02d-0042", now.Year(), int(now.Month()))
	suite.Equal(expected, savedCode)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MalformedPriorCodeRestartsSequence() {
	ctx := context.Background()

	suite.mockTxnRepo.On("MaxShortCodeInMonth", ctx, mock.Anything, mock.Anything).
		Return("PROJ-ARCH-garbage", nil).Once()

	var savedCode string
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			savedCode = args.Get(1).(domain.Transaction).ShortCode
		}).Return(nil).Once()
	suite.expectDefaultChecklist()

	_, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{Title: "t", Discipline: "ARCH"}, suite.userID)

	suite.Require().NoError(err)
	suite.Contains(savedCode, "-0001")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RetriesOnceOnCollision() {
	ctx := context.Background()
	now := time.Now().UTC()

	// First attempt sees an empty month but a concurrent writer takes 0001.
	suite.mockTxnRepo.On("MaxShortCodeInMonth", ctx, now.Year(), now.Month()).Return("", nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(apperrors.ErrDuplicate).Once()

	taken := fmt.Sprintf("PROJ-MECH-%d-%02d-0001", now.Year(), int(now.Month()))
	suite.mockTxnRepo.On("MaxShortCodeInMonth", ctx, now.Year(), now.Month()).Return(taken, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(nil).Once()
	suite.expectDefaultChecklist()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{Title: "t", Discipline: "MECH"}, suite.userID)

	suite.Require().NoError(err)
	suite.Contains(txn.ShortCode, "-0002")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SecondCollisionFails() {
	ctx := context.Background()

	suite.mockTxnRepo.On("MaxShortCodeInMonth", ctx, mock.Anything, mock.Anything).Return("", nil).Twice()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(apperrors.ErrDuplicate).Twice()

	_, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{Title: "t", Discipline: "CIVL"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownDiscipline() {
	ctx := context.Background()

	_, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{Title: "t", Discipline: "NAVL"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidDiscipline)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BuildingLicenceChecklist() {
	ctx := context.Background()
	subCategoryID := uuid.NewString()

	suite.mockClientRepo.On("FindSubCategoryByID", ctx, subCategoryID).
		Return(&domain.TransactionSubCategory{SubCategoryID: subCategoryID, Code: "BUILD-LIC"}, nil).Once()

	suite.mockTxnRepo.On("MaxShortCodeInMonth", ctx, mock.Anything, mock.Anything).Return("", nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	for i := 1; i <= 22; i++ {
		code := fmt.Sprintf("DOC%03d", i)
		suite.mockTxnRepo.On("FindDocumentTypeByCode", ctx, code).
			Return(&domain.DocumentType{Code: code}, nil).Once()
	}

	var savedSlots []domain.TransactionDocument
	suite.mockTxnRepo.On("SaveTransactionDocuments", ctx, mock.AnythingOfType("[]domain.TransactionDocument")).
		Run(func(args mock.Arguments) {
			savedSlots = args.Get(1).([]domain.TransactionDocument)
		}).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Title:         "Commercial tower licence",
		Discipline:    "ARCH",
		SubCategoryID: &subCategoryID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(savedSlots, 22)
	for _, slot := range savedSlots {
		suite.Equal(domain.DocMissing, slot.Status)
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SkipsUncataloguedDocumentTypes() {
	ctx := context.Background()

	suite.mockTxnRepo.On("MaxShortCodeInMonth", ctx, mock.Anything, mock.Anything).Return("", nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	suite.mockTxnRepo.On("FindDocumentTypeByCode", ctx, "DOC001").
		Return(&domain.DocumentType{Code: "DOC001"}, nil).Once()
	suite.mockTxnRepo.On("FindDocumentTypeByCode", ctx, "DOC005").
		Return(nil, apperrors.ErrNotFound).Once()

	var savedSlots []domain.TransactionDocument
	suite.mockTxnRepo.On("SaveTransactionDocuments", ctx, mock.AnythingOfType("[]domain.TransactionDocument")).
		Run(func(args mock.Arguments) {
			savedSlots = args.Get(1).([]domain.TransactionDocument)
		}).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{Title: "t", Discipline: "ENV"}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(savedSlots, 1)
	suite.Equal("DOC001", savedSlots[0].DocumentTypeCode)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ViewAllUnscoped() {
	ctx := context.Background()
	actor := actorWith(suite.userID, domain.CapTransactionsViewAll)
	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(actor, nil).Once()

	suite.mockTxnRepo.On("ListTransactions", ctx, mock.MatchedBy(func(f portsrepo.TransactionListFilter) bool {
		return f.AssignedToID == nil
	})).Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{}, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ViewOwnScopedToSelf() {
	ctx := context.Background()
	actor := actorWith(suite.userID, domain.CapTransactionsViewOwn)
	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(actor, nil).Once()

	suite.mockTxnRepo.On("ListTransactions", ctx, mock.MatchedBy(func(f portsrepo.TransactionListFilter) bool {
		return f.AssignedToID != nil && *f.AssignedToID == suite.userID
	})).Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{}, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_NoViewCapability() {
	ctx := context.Background()
	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(actorWith(suite.userID), nil).Once()

	_, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestStartProcessing_RequiresUnderReview() {
	ctx := context.Background()
	txnID := uuid.NewString()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(suite.superuser, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID, Status: domain.TxnNew}, nil).Once()

	_, err := suite.service.StartProcessing(ctx, txnID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestStartProcessing_AssigneeAllowed() {
	ctx := context.Background()
	txnID := uuid.NewString()
	assigneeID := suite.userID

	suite.mockUserSvc.On("GetActor", ctx, assigneeID).Return(actorWith(assigneeID), nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID, Status: domain.TxnUnderReview, AssignedToID: &assigneeID}, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txnID, domain.TxnProcessing, assigneeID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	txn, err := suite.service.StartProcessing(ctx, txnID, assigneeID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnProcessing, txn.Status)
}

func (suite *TransactionServiceTestSuite) TestRequestDocuments_NonAssigneeForbidden() {
	ctx := context.Background()
	txnID := uuid.NewString()
	otherID := uuid.NewString()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(actorWith(suite.userID), nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID, Status: domain.TxnProcessing, AssignedToID: &otherID}, nil).Once()

	_, err := suite.service.RequestDocuments(ctx, txnID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestDistribute_RequiresAssignCapability() {
	ctx := context.Background()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(actorWith(suite.userID, domain.CapTransactionsViewAll), nil).Once()

	_, err := suite.service.Distribute(ctx, dto.DistributeRequest{
		TransactionID: uuid.NewString(),
		AssignedToID:  uuid.NewString(),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveDistribution", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDistribute_Success() {
	ctx := context.Background()
	txnID := uuid.NewString()
	assigneeID := uuid.NewString()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).
		Return(actorWith(suite.userID, domain.CapTransactionsAssign), nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID, ShortCode: "PROJ-ARCH-2026-08-0004", Status: domain.TxnNew}, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, assigneeID).
		Return(&domain.User{UserID: assigneeID, IsActive: true}, nil).Once()
	suite.mockTxnRepo.On("SaveDistribution", ctx, mock.AnythingOfType("domain.TransactionDistribution")).Return(nil).Once()

	var sent domain.Notification
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("domain.Notification")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(domain.Notification)
		}).Return(nil).Once()

	dist, err := suite.service.Distribute(ctx, dto.DistributeRequest{
		TransactionID: txnID,
		AssignedToID:  assigneeID,
		ManagerNotes:  "urgent",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(txnID, dist.TransactionID)
	suite.Equal(assigneeID, dist.AssignedToID)
	suite.Require().NotNil(dist.AssignedFromID)
	suite.Equal(suite.userID, *dist.AssignedFromID)

	suite.Equal(assigneeID, sent.UserID)
	suite.Equal(domain.EventTransactionAssigned, sent.EventType)
	suite.Contains(sent.Message, "PROJ-ARCH-2026-08-0004")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDistribute_UnknownAssignee() {
	ctx := context.Background()
	txnID := uuid.NewString()
	assigneeID := uuid.NewString()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(suite.superuser, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID}, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, assigneeID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Distribute(ctx, dto.DistributeRequest{TransactionID: txnID, AssignedToID: assigneeID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveDistribution", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDistribute_NotifyFailureIsSwallowed() {
	ctx := context.Background()
	txnID := uuid.NewString()
	assigneeID := uuid.NewString()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(suite.superuser, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID, ShortCode: "PROJ-ENV-2026-08-0002"}, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, assigneeID).
		Return(&domain.User{UserID: assigneeID, IsActive: true}, nil).Once()
	suite.mockTxnRepo.On("SaveDistribution", ctx, mock.AnythingOfType("domain.TransactionDistribution")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("domain.Notification")).
		Return(fmt.Errorf("pusher unreachable")).Once()

	dist, err := suite.service.Distribute(ctx, dto.DistributeRequest{TransactionID: txnID, AssignedToID: assigneeID}, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(dist)
}

func (suite *TransactionServiceTestSuite) TestAttachDocument_FilledSlotRejected() {
	ctx := context.Background()
	txnID := uuid.NewString()
	slotID := uuid.NewString()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(suite.superuser, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID}, nil).Once()
	suite.mockTxnRepo.On("FindTransactionDocumentByID", ctx, slotID).
		Return(&domain.TransactionDocument{
			TransactionDocumentID: slotID,
			TransactionID:         txnID,
			Status:                domain.DocUploaded,
		}, nil).Once()

	_, err := suite.service.AttachDocument(ctx, dto.AttachDocumentRequest{
		TransactionID:         txnID,
		TransactionDocumentID: &slotID,
		FilePath:              "uploads/deed.pdf",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestAttachDocument_FillsSlot() {
	ctx := context.Background()
	txnID := uuid.NewString()
	slotID := uuid.NewString()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(suite.superuser, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID}, nil).Once()
	suite.mockTxnRepo.On("FindTransactionDocumentByID", ctx, slotID).
		Return(&domain.TransactionDocument{
			TransactionDocumentID: slotID,
			TransactionID:         txnID,
			Status:                domain.DocRejected,
		}, nil).Once()
	suite.mockTxnRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionDocumentStatus", ctx, slotID, domain.DocUploaded, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	doc, err := suite.service.AttachDocument(ctx, dto.AttachDocumentRequest{
		TransactionID:         txnID,
		TransactionDocumentID: &slotID,
		FilePath:              "uploads/deed.pdf",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(txnID, doc.TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
