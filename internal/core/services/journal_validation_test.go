package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/core/services"
)

func validationAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"acct-cash": {
			AccountID:       "acct-cash",
			AccountCode:     "1010",
			AccountType:     domain.Asset,
			IsDetailAccount: true,
			IsActive:        true,
		},
		"acct-revenue": {
			AccountID:       "acct-revenue",
			AccountCode:     "4010",
			AccountType:     domain.Revenue,
			IsDetailAccount: true,
			IsActive:        true,
		},
		"acct-dormant": {
			AccountID:       "acct-dormant",
			AccountCode:     "1020",
			AccountType:     domain.Asset,
			IsDetailAccount: true,
			IsActive:        false,
		},
		"acct-summary": {
			AccountID:       "acct-summary",
			AccountCode:     "1000",
			AccountType:     domain.Asset,
			IsDetailAccount: false,
			IsActive:        true,
		},
	}
}

func line(accountID, debit, credit string, lineNumber int) domain.GLEntry {
	return domain.GLEntry{
		AccountID:    accountID,
		DebitAmount:  decimal.RequireFromString(debit),
		CreditAmount: decimal.RequireFromString(credit),
		LineNumber:   lineNumber,
	}
}

func TestValidateJournalEntries(t *testing.T) {
	accounts := validationAccounts()

	testCases := []struct {
		name        string
		entries     []domain.GLEntry
		expectedErr error
	}{
		{
			name: "valid two-line entry",
			entries: []domain.GLEntry{
				line("acct-cash", "150000.00", "0", 1),
				line("acct-revenue", "0", "150000.00", 2),
			},
			expectedErr: nil,
		},
		{
			name:        "single line rejected",
			entries:     []domain.GLEntry{line("acct-cash", "100.00", "0", 1)},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "empty set rejected",
			entries:     nil,
			expectedErr: apperrors.ErrValidation,
		},
		{
			name: "both sides on one line",
			entries: []domain.GLEntry{
				line("acct-cash", "100.00", "100.00", 1),
				line("acct-revenue", "0", "100.00", 2),
			},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name: "neither side on one line",
			entries: []domain.GLEntry{
				line("acct-cash", "0", "0", 1),
				line("acct-revenue", "0", "100.00", 2),
			},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name: "negative amount",
			entries: []domain.GLEntry{
				line("acct-cash", "-50.00", "0", 1),
				line("acct-revenue", "0", "50.00", 2),
			},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name: "duplicate account across lines",
			entries: []domain.GLEntry{
				line("acct-cash", "100.00", "0", 1),
				line("acct-cash", "0", "100.00", 2),
			},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name: "unknown account",
			entries: []domain.GLEntry{
				line("acct-missing", "100.00", "0", 1),
				line("acct-revenue", "0", "100.00", 2),
			},
			expectedErr: apperrors.ErrNotFound,
		},
		{
			name: "inactive account",
			entries: []domain.GLEntry{
				line("acct-dormant", "100.00", "0", 1),
				line("acct-revenue", "0", "100.00", 2),
			},
			expectedErr: apperrors.ErrConflict,
		},
		{
			name: "summary account",
			entries: []domain.GLEntry{
				line("acct-summary", "100.00", "0", 1),
				line("acct-revenue", "0", "100.00", 2),
			},
			expectedErr: apperrors.ErrConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := services.ValidateJournalEntries(tc.entries, accounts)
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestCheckBalance(t *testing.T) {
	debit, credit, err := services.CheckBalance([]domain.GLEntry{
		line("acct-cash", "150000.00", "0", 1),
		line("acct-revenue", "0", "150000.00", 2),
	})
	assert.NoError(t, err)
	assert.True(t, debit.Equal(decimal.RequireFromString("150000.00")))
	assert.True(t, credit.Equal(decimal.RequireFromString("150000.00")))

	// A one-cent difference is within tolerance.
	_, _, err = services.CheckBalance([]domain.GLEntry{
		line("acct-cash", "100.01", "0", 1),
		line("acct-revenue", "0", "100.00", 2),
	})
	assert.NoError(t, err)

	_, _, err = services.CheckBalance([]domain.GLEntry{
		line("acct-cash", "100.02", "0", 1),
		line("acct-revenue", "0", "100.00", 2),
	})
	assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
}
