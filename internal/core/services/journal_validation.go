package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	"github.com/openfmis/ipsas_ledger/internal/core/domain"
)

// ValidateJournalEntries checks well-formedness of a journal line set against
// the accounts it references. It is a pure function invoked before any
// persistence; the caller separately checks the debit/credit balance.
//
// Rules enforced per line: exactly one of debit/credit is positive, the
// referenced account exists, is active, and is a detail (leaf) account.
// Across the set: at least two lines, and no account appears twice.
func ValidateJournalEntries(entries []domain.GLEntry, accounts map[string]domain.Account) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: a journal entry requires at least two lines", apperrors.ErrValidation)
	}

	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		if e.DebitAmount.LessThan(decimal.Zero) || e.CreditAmount.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, e.LineNumber)
		}
		debit := e.DebitAmount.IsPositive()
		credit := e.CreditAmount.IsPositive()
		if debit && credit {
			return fmt.Errorf("%w: line %d has both a debit and a credit amount", apperrors.ErrValidation, e.LineNumber)
		}
		if !debit && !credit {
			return fmt.Errorf("%w: line %d has neither a debit nor a credit amount", apperrors.ErrValidation, e.LineNumber)
		}

		if prev, dup := seen[e.AccountID]; dup {
			return fmt.Errorf("%w: account %s appears on lines %d and %d; each account may appear once per journal entry", apperrors.ErrValidation, e.AccountID, prev, e.LineNumber)
		}
		seen[e.AccountID] = e.LineNumber

		account, found := accounts[e.AccountID]
		if !found {
			return fmt.Errorf("account %s on line %d: %w", e.AccountID, e.LineNumber, apperrors.ErrNotFound)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrConflict, account.AccountCode, account.AccountID)
		}
		if !account.IsDetailAccount {
			return fmt.Errorf("%w: cannot post to summary account %s (%s)", apperrors.ErrConflict, account.AccountCode, account.AccountID)
		}
	}

	return nil
}

// CheckBalance verifies total debits equal total credits within the one-cent
// tolerance and returns the totals.
func CheckBalance(entries []domain.GLEntry) (totalDebit, totalCredit decimal.Decimal, err error) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, e := range entries {
		totalDebit = totalDebit.Add(e.DebitAmount)
		totalCredit = totalCredit.Add(e.CreditAmount)
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(domain.BalanceTolerance) {
		return totalDebit, totalCredit, fmt.Errorf("%w: debits total %s but credits total %s", apperrors.ErrUnbalanced, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}
	return totalDebit, totalCredit, nil
}
