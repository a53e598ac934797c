package accounting_test

import (
	"testing"

	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/openfmis/ipsas_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSums(t *testing.T) {
	entries := []domain.GLEntry{
		{DebitAmount: amount("150000.00"), CreditAmount: decimal.Zero},
		{DebitAmount: amount("2500.50"), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.Zero, CreditAmount: amount("152500.50")},
	}

	assert.True(t, accounting.SumDebits(entries).Equal(amount("152500.50")))
	assert.True(t, accounting.SumCredits(entries).Equal(amount("152500.50")))
	assert.True(t, accounting.SumDebits(nil).IsZero())
	assert.True(t, accounting.SumCredits(nil).IsZero())
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, accounting.IsBalanced(amount("100.00"), amount("100.00")))
	assert.True(t, accounting.IsBalanced(amount("100.00"), amount("100.01")))
	assert.True(t, accounting.IsBalanced(amount("100.01"), amount("100.00")))
	assert.False(t, accounting.IsBalanced(amount("100.00"), amount("100.011")))
	assert.False(t, accounting.IsBalanced(amount("100.00"), amount("99.98")))
}

func TestDefaultNormalBalance(t *testing.T) {
	testCases := []struct {
		accountType domain.AccountType
		expected    domain.NormalBalance
	}{
		{domain.Asset, domain.DebitBalance},
		{domain.Expense, domain.DebitBalance},
		{domain.Liability, domain.CreditBalance},
		{domain.NetPosition, domain.CreditBalance},
		{domain.Revenue, domain.CreditBalance},
	}

	for _, tc := range testCases {
		t.Run(string(tc.accountType), func(t *testing.T) {
			assert.Equal(t, tc.expected, accounting.DefaultNormalBalance(tc.accountType))
		})
	}
}

func TestMirrorEntries(t *testing.T) {
	original := []domain.GLEntry{
		{
			AccountID:    "acct-cash",
			DebitAmount:  amount("500.00"),
			CreditAmount: decimal.Zero,
			Description:  "Cash receipt",
			LineNumber:   1,
			CostCenter:   "CC-10",
		},
		{
			AccountID:    "acct-revenue",
			DebitAmount:  decimal.Zero,
			CreditAmount: amount("500.00"),
			Description:  "Tax revenue",
			LineNumber:   2,
			ProjectCode:  "PRJ-7",
		},
	}

	mirrored := accounting.MirrorEntries(original)
	assert.Len(t, mirrored, 2)

	assert.Equal(t, "acct-cash", mirrored[0].AccountID)
	assert.True(t, mirrored[0].DebitAmount.IsZero())
	assert.True(t, mirrored[0].CreditAmount.Equal(amount("500.00")))
	assert.Equal(t, "Reversal: Cash receipt", mirrored[0].Description)
	assert.Equal(t, 1, mirrored[0].LineNumber)
	assert.Equal(t, "CC-10", mirrored[0].CostCenter)

	assert.Equal(t, "acct-revenue", mirrored[1].AccountID)
	assert.True(t, mirrored[1].DebitAmount.Equal(amount("500.00")))
	assert.True(t, mirrored[1].CreditAmount.IsZero())
	assert.Equal(t, "Reversal: Tax revenue", mirrored[1].Description)
	assert.Equal(t, "PRJ-7", mirrored[1].ProjectCode)

	// Mirroring a mirrored set restores the original sides.
	restored := accounting.MirrorEntries(mirrored)
	assert.True(t, restored[0].DebitAmount.Equal(original[0].DebitAmount))
	assert.True(t, restored[1].CreditAmount.Equal(original[1].CreditAmount))
}
