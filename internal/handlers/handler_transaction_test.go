package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/handlers"
	"github.com/faroukh/office_mgmt_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams, requestingUserID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) StartProcessing(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) RequestDocuments(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) Complete(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) Distribute(ctx context.Context, req dto.DistributeRequest, assignerUserID string) (*domain.TransactionDistribution, error) {
	args := m.Called(ctx, req, assignerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionDistribution), args.Error(1)
}
func (m *MockTransactionService) GetChecklist(ctx context.Context, transactionID string, requestingUserID string) ([]domain.TransactionDocument, error) {
	args := m.Called(ctx, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionDocument), args.Error(1)
}
func (m *MockTransactionService) AttachDocument(ctx context.Context, req dto.AttachDocumentRequest, uploaderUserID string) (*domain.Document, error) {
	args := m.Called(ctx, req, uploaderUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockTransactionService) ListDocuments(ctx context.Context, transactionID string, requestingUserID string) ([]domain.Document, error) {
	args := m.Called(ctx, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}
func (m *MockTransactionService) StampDocument(ctx context.Context, documentID string, stampedFilePath string, requestingUserID string) error {
	args := m.Called(ctx, documentID, stampedFilePath, requestingUserID)
	return args.Error(0)
}
func (m *MockTransactionService) GetDashboardStats(ctx context.Context, requestingUserID string) (*dto.DashboardStats, error) {
	args := m.Called(ctx, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardStats), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "oma-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockService = new(MockTransactionService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // keeps swagger routes off
	}
	container := &portssvc.ServiceContainer{Transaction: suite.mockService}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *TransactionHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestGetTransaction_Success() {
	transactionID := uuid.NewString()
	requestingUserID := uuid.NewString()
	expected := &domain.Transaction{
		TransactionID: transactionID,
		ShortCode:     "PROJ-ARCH-2026-08-0001",
		Title:         "Villa licence",
		Status:        domain.TxnUnderReview,
		Discipline:    domain.DisciplineArch,
	}

	suite.mockService.On("GetTransactionByID",
		mock.Anything, transactionID, requestingUserID,
	).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, nil, requestingUserID)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(transactionID, body.TransactionID)
	suite.Equal("PROJ-ARCH-2026-08-0001", body.ShortCode)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	transactionID := uuid.NewString()
	requestingUserID := uuid.NewString()

	suite.mockService.On("GetTransactionByID",
		mock.Anything, transactionID, requestingUserID,
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, nil, requestingUserID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetTransactionByID")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	creatorUserID := uuid.NewString()
	reqBody := dto.CreateTransactionRequest{
		Title:      "Structural review",
		Discipline: "STRU",
	}
	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		ShortCode:     "PROJ-STRU-2026-08-0002",
		Title:         reqBody.Title,
		Status:        domain.TxnNew,
		Discipline:    domain.DisciplineStru,
	}

	suite.mockService.On("CreateTransaction",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.Title == reqBody.Title && r.Discipline == "STRU"
		}),
		creatorUserID,
	).Return(expected, nil).Once()

	payload, _ := json.Marshal(reqBody)
	w := suite.authedRequest(http.MethodPost, "/api/v1/transactions", payload, creatorUserID)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(expected.ShortCode, body.ShortCode)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_InvalidDiscipline() {
	payload, _ := json.Marshal(map[string]string{
		"title":      "Bad discipline",
		"discipline": "NOPE",
	})
	w := suite.authedRequest(http.MethodPost, "/api/v1/transactions", payload, uuid.NewString())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_PassesFilters() {
	requestingUserID := uuid.NewString()
	status := "processing"

	suite.mockService.On("ListTransactions",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Status != nil && *p.Status == status && p.Limit == 5
		}),
		requestingUserID,
	).Return([]domain.Transaction{}, nil).Once()

	url := fmt.Sprintf("/api/v1/transactions?status=%s&limit=5", status)
	w := suite.authedRequest(http.MethodGet, url, nil, requestingUserID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDistribute_Forbidden() {
	assignerUserID := uuid.NewString()
	reqBody := dto.DistributeRequest{
		TransactionID: uuid.NewString(),
		AssignedToID:  uuid.NewString(),
	}

	suite.mockService.On("Distribute",
		mock.Anything,
		mock.MatchedBy(func(r dto.DistributeRequest) bool {
			return r.TransactionID == reqBody.TransactionID
		}),
		assignerUserID,
	).Return(nil, apperrors.ErrForbidden).Once()

	payload, _ := json.Marshal(reqBody)
	w := suite.authedRequest(http.MethodPost, "/api/v1/distributions", payload, assignerUserID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDashboardStats_Success() {
	requestingUserID := uuid.NewString()
	expected := &dto.DashboardStats{
		TransactionsByStatus: map[string]int{"new": 3, "processing": 1},
		TasksByStatus:        map[string]int{"pending": 2},
	}

	suite.mockService.On("GetDashboardStats",
		mock.Anything, requestingUserID,
	).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/dashboard/stats", nil, requestingUserID)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.DashboardStats
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(3, body.TransactionsByStatus["new"])
	suite.mockService.AssertExpectations(suite.T())
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
