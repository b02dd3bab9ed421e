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
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/core/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockUserSvc    *MockUserService
	service        portssvc.LedgerSvcFacade
	userID         string
	cashAccount    domain.Account
	revenueAccount domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockUserSvc = new(MockUserService)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockUserSvc)

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1010",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4010",
		Name:        "Design fees",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
}

func (suite *LedgerServiceTestSuite) balancedRequest(amount int64) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Design fee received",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(amount), EntryType: "DEBIT"},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(amount), EntryType: "CREDIT"},
		},
	}
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(500)

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockLedgerRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(entry.EntryID)
	suite.Len(entry.Lines, 2)

	// Debiting an asset raises it; crediting revenue raises it.
	suite.True(savedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(500)))
	suite.True(savedChanges[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(500)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(500), EntryType: "DEBIT"},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(400), EntryType: "CREDIT"},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_SingleLine() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(500), EntryType: "DEBIT"},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinLines)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(500), EntryType: "DEBIT"},
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(500), EntryType: "CREDIT"},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinAccounts)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.Zero, EntryType: "DEBIT"},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.Zero, EntryType: "CREDIT"},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(100)

	inactive := suite.revenueAccount
	inactive.IsActive = false
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		inactive.AccountID:          inactive,
	}
	suite.mockLedgerRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(100)

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
	}
	suite.mockLedgerRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ExpenseDebitSigns() {
	ctx := context.Background()
	expense := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5010",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: expense.AccountID, Amount: decimal.NewFromInt(250), EntryType: "DEBIT"},
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(250), EntryType: "CREDIT"},
		},
	}

	accountsMap := map[string]domain.Account{
		expense.AccountID:           expense,
		suite.cashAccount.AccountID: suite.cashAccount,
	}
	suite.mockLedgerRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything, mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// Debiting an expense raises it; crediting cash (asset) lowers it.
	suite.True(savedChanges[expense.AccountID].Equal(decimal.NewFromInt(250)))
	suite.True(savedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-250)))
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:        "1010",
		Name:        "Cash",
		AccountType: "ASSET",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_UnknownParent() {
	ctx := context.Background()
	parentID := uuid.NewString()

	suite.mockLedgerRepo.On("FindAccountByID", ctx, parentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:            "1011",
		Name:            "Petty cash",
		AccountType:     "ASSET",
		ParentAccountID: &parentID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTrialBalance_RequiresCapability() {
	ctx := context.Background()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).Return(actorWith(suite.userID), nil).Once()

	_, err := suite.service.TrialBalance(ctx, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "EntryTotalsByAccount", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTrialBalance_TotalsMatch() {
	ctx := context.Background()

	suite.mockUserSvc.On("GetActor", ctx, suite.userID).
		Return(actorWith(suite.userID, domain.CapReportsGenerate), nil).Once()

	totals := []portsrepo.AccountEntryTotals{
		{AccountID: suite.cashAccount.AccountID, Code: "1010", Name: "Cash", AccountType: domain.Asset,
			TotalDebit: decimal.NewFromInt(900), TotalCredit: decimal.NewFromInt(200)},
		{AccountID: suite.revenueAccount.AccountID, Code: "4010", Name: "Design fees", AccountType: domain.Revenue,
			TotalDebit: decimal.NewFromInt(0), TotalCredit: decimal.NewFromInt(700)},
	}
	suite.mockLedgerRepo.On("EntryTotalsByAccount", ctx).Return(totals, nil).Once()

	resp, err := suite.service.TrialBalance(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Len(resp.Rows, 2)
	suite.True(resp.TotalDebits.Equal(decimal.NewFromInt(900)))
	suite.True(resp.TotalCredits.Equal(decimal.NewFromInt(900)))
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
