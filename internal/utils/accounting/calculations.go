package accounting

import (
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumDebits returns the sum of the debit side across all entries.
func SumDebits(entries []domain.GLEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.DebitAmount)
	}
	return sum
}

// SumCredits returns the sum of the credit side across all entries.
func SumCredits(entries []domain.GLEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.CreditAmount)
	}
	return sum
}

// IsBalanced reports whether total debits and credits match within the
// one-cent tolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(domain.BalanceTolerance)
}

// DefaultNormalBalance derives the normal balance from the account type.
// ASSET and EXPENSE accounts increase with debits; LIABILITY, NET_POSITION
// and REVENUE accounts increase with credits.
func DefaultNormalBalance(accountType domain.AccountType) domain.NormalBalance {
	switch accountType {
	case domain.Asset, domain.Expense:
		return domain.DebitBalance
	case domain.Liability, domain.NetPosition, domain.Revenue:
		return domain.CreditBalance
	default:
		return domain.DebitBalance
	}
}

// MirrorEntries builds the reversing line set for a posted transaction:
// debit and credit amounts swapped per line, same accounts and analysis
// codes, line descriptions prefixed to mark them as reversal lines.
func MirrorEntries(original []domain.GLEntry) []domain.GLEntry {
	mirrored := make([]domain.GLEntry, len(original))
	for i, e := range original {
		mirrored[i] = domain.GLEntry{
			AccountID:      e.AccountID,
			DebitAmount:    e.CreditAmount,
			CreditAmount:   e.DebitAmount,
			Description:    "Reversal: " + e.Description,
			LineNumber:     e.LineNumber,
			CostCenter:     e.CostCenter,
			ProjectCode:    e.ProjectCode,
			DepartmentCode: e.DepartmentCode,
		}
	}
	return mirrored
}
