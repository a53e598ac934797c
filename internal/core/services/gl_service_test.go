package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	portssvc "github.com/openfmis/ipsas_ledger/internal/core/ports/services"
	"github.com/openfmis/ipsas_ledger/internal/core/services"
	"github.com/openfmis/ipsas_ledger/internal/dto"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// fakeGLRepository is an in-memory stand-in for the GL store. The reversal
// flow creates a transaction and immediately re-reads it by a generated ID,
// which static mock expectations cannot express, so this fake keeps real
// state across calls and counts begin/commit/rollback to assert atomicity.
type fakeGLRepository struct {
	txns      map[string]domain.GLTransaction
	entries   map[string][]domain.GLEntry
	begins    int
	commits   int
	rollbacks int
	saveErr   error
}

var _ portsrepo.GLRepositoryWithTx = (*fakeGLRepository)(nil)

func newFakeGLRepository() *fakeGLRepository {
	return &fakeGLRepository{
		txns:    make(map[string]domain.GLTransaction),
		entries: make(map[string][]domain.GLEntry),
	}
}

func (f *fakeGLRepository) seed(txn domain.GLTransaction, entries []domain.GLEntry) {
	f.txns[txn.TransactionID] = txn
	f.entries[txn.TransactionID] = entries
}

func (f *fakeGLRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	f.begins++
	return nil, nil
}

func (f *fakeGLRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	f.commits++
	return nil
}

func (f *fakeGLRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	f.rollbacks++
	return nil
}

func (f *fakeGLRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.GLTransaction, entries []domain.GLEntry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.txns[txn.TransactionID] = txn
	f.entries[txn.TransactionID] = append([]domain.GLEntry(nil), entries...)
	return nil
}

func (f *fakeGLRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.GLTransaction, error) {
	txn, found := f.txns[transactionID]
	if !found {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (f *fakeGLRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.GLTransaction, error) {
	return f.FindTransactionByID(ctx, transactionID)
}

func (f *fakeGLRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.GLEntry, error) {
	return append([]domain.GLEntry(nil), f.entries[transactionID]...), nil
}

func (f *fakeGLRepository) FindEntriesByTransactionIDInTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.GLEntry, error) {
	return f.FindEntriesByTransactionID(ctx, transactionID)
}

func (f *fakeGLRepository) UpdateTransactionLifecycleInTx(ctx context.Context, tx pgx.Tx, txn domain.GLTransaction) error {
	if _, found := f.txns[txn.TransactionID]; !found {
		return apperrors.ErrNotFound
	}
	f.txns[txn.TransactionID] = txn
	return nil
}

func (f *fakeGLRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, params pagination.Params) ([]domain.GLTransaction, int64, error) {
	var out []domain.GLTransaction
	for _, txn := range f.txns {
		if filter.Status != "" && txn.Status != filter.Status {
			continue
		}
		if filter.EntityID != "" && txn.EntityID != filter.EntityID {
			continue
		}
		if filter.FundID != "" && txn.FundID != filter.FundID {
			continue
		}
		out = append(out, txn)
	}
	return out, int64(len(out)), nil
}

type GLServiceTestSuite struct {
	suite.Suite
	fakeRepo        *fakeGLRepository
	mockAccountRepo *MockAccountRepository
	mockEntitySvc   *MockEntityService
	mockFundSvc     *MockFundService
	service         portssvc.GLSvcFacade
	ctx             context.Context
	userID          string
	entityID        string
	fundID          string
	cashAccount     domain.Account
	revenueAccount  domain.Account
}

func (suite *GLServiceTestSuite) SetupTest() {
	suite.fakeRepo = newFakeGLRepository()
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockEntitySvc = new(MockEntityService)
	suite.mockFundSvc = new(MockFundService)
	suite.service = services.NewGLService(suite.fakeRepo, suite.mockAccountRepo, suite.mockEntitySvc, suite.mockFundSvc)
	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
	suite.entityID = uuid.NewString()
	suite.fundID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:       uuid.NewString(),
		AccountCode:     "1010",
		AccountType:     domain.Asset,
		FundID:          suite.fundID,
		EntityID:        suite.entityID,
		IsDetailAccount: true,
		IsActive:        true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:       uuid.NewString(),
		AccountCode:     "4010",
		AccountType:     domain.Revenue,
		FundID:          suite.fundID,
		EntityID:        suite.entityID,
		IsDetailAccount: true,
		IsActive:        true,
	}
}

func (suite *GLServiceTestSuite) entity() *domain.Entity {
	return &domain.Entity{EntityID: suite.entityID, EntityCode: "MOF01", FiscalYearEnd: "06-30", IsActive: true}
}

func (suite *GLServiceTestSuite) fund() *domain.Fund {
	return &domain.Fund{FundID: suite.fundID, FundCode: "GF01", EntityID: suite.entityID, IsActive: true}
}

func (suite *GLServiceTestSuite) accountsByID() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
}

func (suite *GLServiceTestSuite) expectScopeLookups() {
	suite.mockEntitySvc.On("GetEntityByID", suite.ctx, suite.entityID).Return(suite.entity(), nil)
	suite.mockFundSvc.On("GetFundByID", suite.ctx, suite.fundID).Return(suite.fund(), nil)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.Anything).Return(suite.accountsByID(), nil)
}

func (suite *GLServiceTestSuite) createRequest(debit, credit string) dto.CreateJournalEntryRequest {
	debitAmount := decimal.RequireFromString(debit)
	creditAmount := decimal.RequireFromString(credit)
	return dto.CreateJournalEntryRequest{
		TransactionDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		PostingDate:     time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description:     "August property tax revenue recognition",
		FundID:          suite.fundID,
		EntityID:        suite.entityID,
		Entries: []dto.JournalEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: &debitAmount, Description: "Cash receipt"},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: &creditAmount, Description: "Tax revenue"},
		},
	}
}

// seedTransaction stores a transaction in the given status with its two
// standard lines and returns it.
func (suite *GLServiceTestSuite) seedTransaction(status domain.TransactionStatus) domain.GLTransaction {
	transactionID := uuid.NewString()
	amount := decimal.RequireFromString("500.00")
	txn := domain.GLTransaction{
		TransactionID:     transactionID,
		TransactionNumber: "GL2702A1B2C3",
		TransactionDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		PostingDate:       time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description:       "August property tax revenue recognition",
		SourceModule:      "MANUAL",
		FundID:            suite.fundID,
		EntityID:          suite.entityID,
		FiscalYear:        2027,
		Period:            2,
		Status:            status,
		TotalDebit:        amount,
		TotalCredit:       amount,
	}
	entries := []domain.GLEntry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     suite.cashAccount.AccountID,
			DebitAmount:   amount,
			CreditAmount:  decimal.Zero,
			Description:   "Cash receipt",
			LineNumber:    1,
		},
		{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     suite.revenueAccount.AccountID,
			DebitAmount:   decimal.Zero,
			CreditAmount:  amount,
			Description:   "Tax revenue",
			LineNumber:    2,
		},
	}
	suite.fakeRepo.seed(txn, entries)
	return txn
}

func (suite *GLServiceTestSuite) TestCreateJournalEntrySuccess() {
	suite.expectScopeLookups()
	req := suite.createRequest("150000.00", "150000.00")

	txn, err := suite.service.CreateJournalEntry(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.StatusDraft, txn.Status)
	suite.True(txn.TotalDebit.Equal(decimal.RequireFromString("150000.00")))
	suite.True(txn.TotalCredit.Equal(decimal.RequireFromString("150000.00")))

	// August with a June 30 year-end lands in period 2 of the next fiscal year.
	suite.Equal(2027, txn.FiscalYear)
	suite.Equal(2, txn.Period)
	suite.True(strings.HasPrefix(txn.TransactionNumber, "GL2702"), "got %s", txn.TransactionNumber)
	suite.Len(txn.TransactionNumber, 12)

	suite.Equal("MANUAL", txn.SourceModule)
	suite.Require().Len(txn.Entries, 2)
	suite.Equal(1, txn.Entries[0].LineNumber)
	suite.Equal(2, txn.Entries[1].LineNumber)

	suite.Equal(1, suite.fakeRepo.begins)
	suite.Equal(1, suite.fakeRepo.commits)
	suite.Equal(0, suite.fakeRepo.rollbacks)
	suite.Contains(suite.fakeRepo.txns, txn.TransactionID)
}

func (suite *GLServiceTestSuite) TestCreateJournalEntryKeepsExplicitNumber() {
	suite.expectScopeLookups()
	req := suite.createRequest("100.00", "100.00")
	req.TransactionNumber = "GL2702CUSTOM"

	txn, err := suite.service.CreateJournalEntry(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("GL2702CUSTOM", txn.TransactionNumber)
}

func (suite *GLServiceTestSuite) TestCreateJournalEntryUnbalanced() {
	suite.expectScopeLookups()
	req := suite.createRequest("150000.00", "149000.00")

	txn, err := suite.service.CreateJournalEntry(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.Nil(txn)
	suite.Equal(1, suite.fakeRepo.rollbacks)
	suite.Equal(0, suite.fakeRepo.commits)
	suite.Empty(suite.fakeRepo.txns)
}

func (suite *GLServiceTestSuite) TestCreateJournalEntryFundMismatch() {
	otherFund := &domain.Fund{FundID: suite.fundID, EntityID: uuid.NewString(), IsActive: true}
	suite.mockEntitySvc.On("GetEntityByID", suite.ctx, suite.entityID).Return(suite.entity(), nil)
	suite.mockFundSvc.On("GetFundByID", suite.ctx, suite.fundID).Return(otherFund, nil)

	_, err := suite.service.CreateJournalEntry(suite.ctx, suite.createRequest("100.00", "100.00"), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.fakeRepo.txns)
}

func (suite *GLServiceTestSuite) TestCreateJournalEntryInactiveEntity() {
	inactive := &domain.Entity{EntityID: suite.entityID, FiscalYearEnd: "06-30", IsActive: false}
	suite.mockEntitySvc.On("GetEntityByID", suite.ctx, suite.entityID).Return(inactive, nil)

	_, err := suite.service.CreateJournalEntry(suite.ctx, suite.createRequest("100.00", "100.00"), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.fakeRepo.txns)
}

func (suite *GLServiceTestSuite) TestApproveTransactionSuccess() {
	seeded := suite.seedTransaction(domain.StatusDraft)

	txn, err := suite.service.ApproveTransaction(suite.ctx, seeded.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, txn.Status)
	suite.Equal(suite.userID, txn.ApprovedBy)
	suite.Equal(domain.StatusApproved, suite.fakeRepo.txns[seeded.TransactionID].Status)
	suite.Equal(1, suite.fakeRepo.commits)
}

func (suite *GLServiceTestSuite) TestApproveTransactionNotDraft() {
	seeded := suite.seedTransaction(domain.StatusApproved)

	_, err := suite.service.ApproveTransaction(suite.ctx, seeded.TransactionID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.Equal(1, suite.fakeRepo.rollbacks)
}

func (suite *GLServiceTestSuite) TestApproveTransactionUnbalancedDraft() {
	seeded := suite.seedTransaction(domain.StatusDraft)
	stored := suite.fakeRepo.txns[seeded.TransactionID]
	stored.TotalCredit = decimal.RequireFromString("400.00")
	suite.fakeRepo.txns[seeded.TransactionID] = stored

	_, err := suite.service.ApproveTransaction(suite.ctx, seeded.TransactionID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.Equal(domain.StatusDraft, suite.fakeRepo.txns[seeded.TransactionID].Status)
}

func (suite *GLServiceTestSuite) TestPostTransactionSuccess() {
	seeded := suite.seedTransaction(domain.StatusApproved)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, mock.Anything, mock.Anything).Return(suite.accountsByID(), nil).Once()

	txn, err := suite.service.PostTransaction(suite.ctx, seeded.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, txn.Status)
	suite.Equal(suite.userID, txn.PostedBy)
	suite.Require().NotNil(txn.PostedAt)
	suite.Equal(domain.StatusPosted, suite.fakeRepo.txns[seeded.TransactionID].Status)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *GLServiceTestSuite) TestPostTransactionNotApproved() {
	seeded := suite.seedTransaction(domain.StatusDraft)

	_, err := suite.service.PostTransaction(suite.ctx, seeded.TransactionID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.Equal(domain.StatusDraft, suite.fakeRepo.txns[seeded.TransactionID].Status)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GLServiceTestSuite) TestPostTransactionDeactivatedAccount() {
	seeded := suite.seedTransaction(domain.StatusApproved)

	accounts := suite.accountsByID()
	deactivated := accounts[suite.cashAccount.AccountID]
	deactivated.IsActive = false
	accounts[suite.cashAccount.AccountID] = deactivated
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, mock.Anything, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.PostTransaction(suite.ctx, seeded.TransactionID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(domain.StatusApproved, suite.fakeRepo.txns[seeded.TransactionID].Status)
	suite.Equal(1, suite.fakeRepo.rollbacks)
}

func (suite *GLServiceTestSuite) TestReverseTransactionSuccess() {
	original := suite.seedTransaction(domain.StatusPosted)
	suite.expectScopeLookups()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, mock.Anything, mock.Anything).Return(suite.accountsByID(), nil)

	reversal, err := suite.service.ReverseTransaction(suite.ctx, original.TransactionID, "Duplicate capture", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.NotEqual(original.TransactionID, reversal.TransactionID)
	suite.Equal(domain.StatusPosted, reversal.Status)
	suite.Equal("SYSTEM", reversal.SourceModule)
	suite.Equal(original.TransactionNumber, reversal.ReferenceNumber)
	suite.Equal(original.TransactionID, reversal.SourceDocumentID)
	suite.Equal("Reversal of GL2702A1B2C3: Duplicate capture", reversal.Description)

	// Per-line mirror: the cash debit becomes a credit and vice versa.
	suite.Require().Len(reversal.Entries, 2)
	byAccount := make(map[string]domain.GLEntry, 2)
	for _, e := range reversal.Entries {
		byAccount[e.AccountID] = e
	}
	cashLine := byAccount[suite.cashAccount.AccountID]
	suite.True(cashLine.DebitAmount.IsZero())
	suite.True(cashLine.CreditAmount.Equal(decimal.RequireFromString("500.00")))
	suite.Equal("Reversal: Cash receipt", cashLine.Description)
	revenueLine := byAccount[suite.revenueAccount.AccountID]
	suite.True(revenueLine.DebitAmount.Equal(decimal.RequireFromString("500.00")))
	suite.True(revenueLine.CreditAmount.IsZero())

	stored := suite.fakeRepo.txns[original.TransactionID]
	suite.Equal(domain.StatusReversed, stored.Status)
	suite.Equal("Duplicate capture", stored.ReversalReason)
	suite.Equal(suite.userID, stored.ReversedBy)
	suite.Require().NotNil(stored.ReversedAt)

	// The whole sequence ran in a single storage transaction.
	suite.Equal(1, suite.fakeRepo.begins)
	suite.Equal(1, suite.fakeRepo.commits)
	suite.Equal(0, suite.fakeRepo.rollbacks)
}

func (suite *GLServiceTestSuite) TestReverseTransactionNotPosted() {
	original := suite.seedTransaction(domain.StatusApproved)

	_, err := suite.service.ReverseTransaction(suite.ctx, original.TransactionID, "Entered twice", suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.Equal(domain.StatusApproved, suite.fakeRepo.txns[original.TransactionID].Status)
	suite.Equal(1, suite.fakeRepo.rollbacks)
}

func (suite *GLServiceTestSuite) TestReverseTransactionAlreadyReversed() {
	original := suite.seedTransaction(domain.StatusReversed)

	_, err := suite.service.ReverseTransaction(suite.ctx, original.TransactionID, "Entered twice", suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.Len(suite.fakeRepo.txns, 1)
}

func (suite *GLServiceTestSuite) TestReverseTransactionBlankReason() {
	original := suite.seedTransaction(domain.StatusPosted)

	_, err := suite.service.ReverseTransaction(suite.ctx, original.TransactionID, "   ", suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(0, suite.fakeRepo.begins)
}

func (suite *GLServiceTestSuite) TestGetTransactionByIDLoadsEntries() {
	seeded := suite.seedTransaction(domain.StatusPosted)

	txn, err := suite.service.GetTransactionByID(suite.ctx, seeded.TransactionID)

	suite.Require().NoError(err)
	suite.Len(txn.Entries, 2)
}

func (suite *GLServiceTestSuite) TestGetTransactionByIDNotFound() {
	_, err := suite.service.GetTransactionByID(suite.ctx, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GLServiceTestSuite) TestListTransactionsFiltersByStatus() {
	suite.seedTransaction(domain.StatusDraft)
	suite.seedTransaction(domain.StatusPosted)
	suite.seedTransaction(domain.StatusPosted)

	filter := portsrepo.TransactionFilter{Status: domain.StatusPosted}
	txns, pageInfo, err := suite.service.ListTransactions(suite.ctx, filter, pagination.Normalize(1, 10, "", ""))

	suite.Require().NoError(err)
	suite.Len(txns, 2)
	suite.Equal(int64(2), pageInfo.TotalItems)
}

func TestGLService(t *testing.T) {
	suite.Run(t, new(GLServiceTestSuite))
}
