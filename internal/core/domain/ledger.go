package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountCategory tags an account with the closure figure it feeds.
type AccountCategory string

const (
	CategoryNone         AccountCategory = ""
	CategorySales        AccountCategory = "SALES"
	CategoryPurchases    AccountCategory = "PURCHASES"
	CategoryPayroll      AccountCategory = "PAYROLL"
	CategoryOtherExpense AccountCategory = "OTHER_EXPENSE"
	CategoryCash         AccountCategory = "CASH"
	CategoryReceivable   AccountCategory = "RECEIVABLE"
	CategoryPayable      AccountCategory = "PAYABLE"
)

// categoryTypes maps each category to the only account type it may be attached to.
var categoryTypes = map[AccountCategory]AccountType{
	CategorySales:        Revenue,
	CategoryPurchases:    Expense,
	CategoryPayroll:      Expense,
	CategoryOtherExpense: Expense,
	CategoryCash:         Asset,
	CategoryReceivable:   Asset,
	CategoryPayable:      Liability,
}

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// CompatibleWith reports whether the category may be used on an account of type t.
func (c AccountCategory) CompatibleWith(t AccountType) bool {
	if c == CategoryNone {
		return true
	}
	want, ok := categoryTypes[c]
	return ok && want == t
}

// Account is a ledger account of an organisation.
type Account struct {
	AccountID      string          `json:"accountID"`
	OrganisationID string          `json:"organisationID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	Category       AccountCategory `json:"category"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// TransactionType is the side of a journal line.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Transaction is one line of a journal.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	JournalID       string          `json:"journalID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	Notes           string          `json:"notes"`
}

// Journal represents a single balanced financial event composed of multiple transactions.
type Journal struct {
	JournalID      string        `json:"journalID"`
	OrganisationID string        `json:"organisationID"`
	JournalDate    time.Time     `json:"journalDate"`
	Description    string        `json:"description"`
	Status         JournalStatus `json:"status"`
	Transactions   []Transaction `json:"transactions"`
	AuditFields
}
