package domain_test

import (
	"testing"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsBalanced(t *testing.T) {
	testCases := []struct {
		name     string
		debit    string
		credit   string
		expected bool
	}{
		{"exactly equal", "150000.00", "150000.00", true},
		{"within one cent", "100.00", "100.01", true},
		{"just over tolerance", "100.00", "100.02", false},
		{"wildly unbalanced", "500.00", "100.00", false},
		{"zero amounts", "0.00", "0.00", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txn := domain.GLTransaction{
				TotalDebit:  decimal.RequireFromString(tc.debit),
				TotalCredit: decimal.RequireFromString(tc.credit),
			}
			assert.Equal(t, tc.expected, txn.IsBalanced())
		})
	}
}

func TestLifecycleGuards(t *testing.T) {
	balanced := func(status domain.TransactionStatus) domain.GLTransaction {
		return domain.GLTransaction{
			Status:      status,
			TotalDebit:  decimal.RequireFromString("250.00"),
			TotalCredit: decimal.RequireFromString("250.00"),
		}
	}

	assert.True(t, balanced(domain.StatusDraft).CanBeApproved())
	assert.False(t, balanced(domain.StatusApproved).CanBeApproved())
	assert.False(t, balanced(domain.StatusPosted).CanBeApproved())

	assert.True(t, balanced(domain.StatusApproved).CanBePosted())
	assert.False(t, balanced(domain.StatusDraft).CanBePosted())
	assert.False(t, balanced(domain.StatusReversed).CanBePosted())

	assert.True(t, balanced(domain.StatusPosted).CanBeReversed())
	assert.False(t, balanced(domain.StatusDraft).CanBeReversed())
	assert.False(t, balanced(domain.StatusApproved).CanBeReversed())
	assert.False(t, balanced(domain.StatusReversed).CanBeReversed())
}

func TestCanBeApprovedRequiresBalance(t *testing.T) {
	txn := domain.GLTransaction{
		Status:      domain.StatusDraft,
		TotalDebit:  decimal.RequireFromString("100.00"),
		TotalCredit: decimal.RequireFromString("90.00"),
	}
	assert.False(t, txn.CanBeApproved())
}

func TestEntrySides(t *testing.T) {
	debit := domain.GLEntry{
		DebitAmount:  decimal.RequireFromString("75.50"),
		CreditAmount: decimal.Zero,
	}
	credit := domain.GLEntry{
		DebitAmount:  decimal.Zero,
		CreditAmount: decimal.RequireFromString("75.50"),
	}

	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())
	assert.True(t, credit.IsCredit())
	assert.False(t, credit.IsDebit())

	assert.True(t, debit.Amount().Equal(decimal.RequireFromString("75.50")))
	assert.True(t, credit.Amount().Equal(decimal.RequireFromString("75.50")))
}
