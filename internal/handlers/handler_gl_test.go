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

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	portssvc "github.com/openfmis/ipsas_ledger/internal/core/ports/services"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/handlers"
	"github.com/openfmis/ipsas_ledger/internal/middleware"
	"github.com/openfmis/ipsas_ledger/internal/platform/config"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// --- Mock GLService ---
type MockGLService struct {
	mock.Mock
}

var _ portssvc.GLSvcFacade = (*MockGLService)(nil)

func (m *MockGLService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.GLTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLTransaction), args.Error(1)
}

func (m *MockGLService) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, params pagination.Params) ([]domain.GLTransaction, pagination.PageInfo, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(pagination.PageInfo), args.Error(2)
	}
	return args.Get(0).([]domain.GLTransaction), args.Get(1).(pagination.PageInfo), args.Error(2)
}

func (m *MockGLService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.GLTransaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLTransaction), args.Error(1)
}

func (m *MockGLService) ApproveTransaction(ctx context.Context, transactionID string, approverUserID string) (*domain.GLTransaction, error) {
	args := m.Called(ctx, transactionID, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLTransaction), args.Error(1)
}

func (m *MockGLService) PostTransaction(ctx context.Context, transactionID string, posterUserID string) (*domain.GLTransaction, error) {
	args := m.Called(ctx, transactionID, posterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLTransaction), args.Error(1)
}

func (m *MockGLService) ReverseTransaction(ctx context.Context, transactionID string, reason string, reverserUserID string) (*domain.GLTransaction, error) {
	args := m.Called(ctx, transactionID, reason, reverserUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLTransaction), args.Error(1)
}

// --- Test Suite ---
type GLHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockGLService *MockGLService
	actorID       string
}

func (suite *GLHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockGLService = new(MockGLService)
	suite.actorID = uuid.NewString()

	handlers.RegisterRoutes(suite.router, &config.Config{}, &portssvc.ServiceContainer{
		GL: suite.mockGLService,
	})
}

func (suite *GLHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, suite.actorID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *GLHandlerTestSuite) sampleTransaction(status domain.TransactionStatus) *domain.GLTransaction {
	amount := decimal.RequireFromString("150000.00")
	return &domain.GLTransaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: "GL2702A1B2C3",
		TransactionDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		PostingDate:       time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description:       "August property tax revenue recognition",
		SourceModule:      "MANUAL",
		FundID:            uuid.NewString(),
		EntityID:          uuid.NewString(),
		FiscalYear:        2027,
		Period:            2,
		Status:            status,
		TotalDebit:        amount,
		TotalCredit:       amount,
	}
}

func (suite *GLHandlerTestSuite) createRequestBody() dto.CreateJournalEntryRequest {
	amount := decimal.RequireFromString("150000.00")
	return dto.CreateJournalEntryRequest{
		TransactionDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		PostingDate:     time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description:     "August property tax revenue recognition",
		FundID:          uuid.NewString(),
		EntityID:        uuid.NewString(),
		Entries: []dto.JournalEntryLineRequest{
			{AccountID: uuid.NewString(), DebitAmount: &amount},
			{AccountID: uuid.NewString(), CreditAmount: &amount},
		},
	}
}

func (suite *GLHandlerTestSuite) TestCreateJournalEntrySuccess() {
	expected := suite.sampleTransaction(domain.StatusDraft)
	suite.mockGLService.On("CreateJournalEntry", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.actorID).
		Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", suite.createRequestBody())

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.GLTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionNumber, resp.TransactionNumber)
	suite.Equal(domain.StatusDraft, resp.Status)
	suite.mockGLService.AssertExpectations(suite.T())
}

func (suite *GLHandlerTestSuite) TestCreateJournalEntryMissingActorHeader() {
	body, _ := json.Marshal(suite.createRequestBody())
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockGLService.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GLHandlerTestSuite) TestCreateJournalEntryTooFewLines() {
	body := suite.createRequestBody()
	body.Entries = body.Entries[:1]

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockGLService.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GLHandlerTestSuite) TestCreateJournalEntryUnbalancedMapsTo422() {
	suite.mockGLService.On("CreateJournalEntry", mock.Anything, mock.Anything, suite.actorID).
		Return(nil, fmt.Errorf("%w: debits total 100.00 but credits total 90.00", apperrors.ErrUnbalanced)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", suite.createRequestBody())

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *GLHandlerTestSuite) TestGetTransactionNotFound() {
	transactionID := uuid.NewString()
	suite.mockGLService.On("GetTransactionByID", mock.Anything, transactionID).
		Return(nil, fmt.Errorf("transaction: %w", apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *GLHandlerTestSuite) TestApproveTransactionInvalidStateMapsTo409() {
	transactionID := uuid.NewString()
	suite.mockGLService.On("ApproveTransaction", mock.Anything, transactionID, suite.actorID).
		Return(nil, fmt.Errorf("%w: only DRAFT transactions can be approved", apperrors.ErrInvalidState)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/"+transactionID+"/approve", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *GLHandlerTestSuite) TestPostTransactionSuccess() {
	expected := suite.sampleTransaction(domain.StatusPosted)
	suite.mockGLService.On("PostTransaction", mock.Anything, expected.TransactionID, suite.actorID).
		Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/"+expected.TransactionID+"/post", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GLTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusPosted, resp.Status)
}

func (suite *GLHandlerTestSuite) TestReverseTransactionSuccess() {
	originalID := uuid.NewString()
	reversal := suite.sampleTransaction(domain.StatusPosted)
	reversal.SourceModule = "SYSTEM"

	suite.mockGLService.On("ReverseTransaction", mock.Anything, originalID, "Duplicate capture", suite.actorID).
		Return(reversal, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/"+originalID+"/reverse", dto.ReverseTransactionRequest{Reason: "Duplicate capture"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.GLTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("SYSTEM", resp.SourceModule)
	suite.mockGLService.AssertExpectations(suite.T())
}

func (suite *GLHandlerTestSuite) TestReverseTransactionMissingReason() {
	originalID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/"+originalID+"/reverse", gin.H{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockGLService.AssertNotCalled(suite.T(), "ReverseTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GLHandlerTestSuite) TestListTransactionsPaginatedEnvelope() {
	txns := []domain.GLTransaction{*suite.sampleTransaction(domain.StatusPosted), *suite.sampleTransaction(domain.StatusPosted)}
	pageInfo := pagination.NewPageInfo(pagination.Normalize(1, 10, "", ""), 2)

	suite.mockGLService.On("ListTransactions", mock.Anything,
		mock.MatchedBy(func(f portsrepo.TransactionFilter) bool { return f.Status == domain.StatusPosted }),
		mock.AnythingOfType("pagination.Params"),
	).Return(txns, pageInfo, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?status=POSTED", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PaginatedResponse[dto.GLTransactionResponse]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Items, 2)
	suite.Equal(int64(2), resp.TotalItems)
	suite.Equal(1, resp.CurrentPage)
	suite.mockGLService.AssertExpectations(suite.T())
}

func TestGLHandler(t *testing.T) {
	suite.Run(t, new(GLHandlerTestSuite))
}
