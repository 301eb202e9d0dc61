package accounting

import (
	"fmt"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateJournalBalance checks that a journal has at least two positive lines
// on known accounts and that total debits equal total credits.
func ValidateJournalBalance(transactions []domain.Transaction, accountTypes map[string]domain.AccountType) error {
	if len(transactions) < 2 {
		return fmt.Errorf("journal must have at least two transaction entries")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for i, txn := range transactions {
		if !txn.Amount.IsPositive() {
			return fmt.Errorf("transaction amount must be positive (line %d)", i+1)
		}
		if _, ok := accountTypes[txn.AccountID]; !ok {
			return fmt.Errorf("account type not found for account ID %s", txn.AccountID)
		}
		switch txn.TransactionType {
		case domain.Debit:
			debits = debits.Add(txn.Amount)
		case domain.Credit:
			credits = credits.Add(txn.Amount)
		default:
			return fmt.Errorf("invalid transaction type '%s' (line %d)", txn.TransactionType, i+1)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("journal entries do not balance: debits %s, credits %s", debits.String(), credits.String())
	}
	return nil
}
