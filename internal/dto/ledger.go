package dto

import (
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating a ledger account.
type CreateAccountRequest struct {
	Name        string                 `json:"name" binding:"required,max=120"`
	AccountType domain.AccountType     `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Category    domain.AccountCategory `json:"category" binding:"omitempty,oneof=SALES PURCHASES PAYROLL OTHER_EXPENSE CASH RECEIVABLE PAYABLE"`
}

// CreateTransactionRequest is one line of a journal to post.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Notes           string                 `json:"notes"`
}

// CreateJournalRequest defines the payload for posting a balanced journal.
type CreateJournalRequest struct {
	JournalDate  time.Time                  `json:"journalDate" binding:"required"`
	Description  string                     `json:"description" binding:"max=255"`
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=2,dive"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []domain.Account `json:"accounts"`
}
