package repositories

import (
	"context"

	"github.com/fintelis/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByCompany retrieves a paginated list using token-based
	// pagination. It returns the transactions, a token for the next page, and
	// an error.
	ListTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	ListTransactionsByBankAccount(ctx context.Context, companyID, bankAccountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SumReversedAmount totals the reversal transactions pointing at the
	// given original transaction.
	SumReversedAmount(ctx context.Context, originalTransactionID string) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for ledger transactions.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransferPair inserts both legs of a transfer and sets their mutual
	// links within one database transaction. Either both rows exist with
	// mutual links or neither does.
	SaveTransferPair(ctx context.Context, outgoing, incoming domain.Transaction) error

	// SaveReversal inserts a reversal row after locking the original
	// transaction and re-checking, under the lock, that the reversal amount
	// does not exceed the original's remaining refundable balance. Returns
	// ErrValidation when the cap would be exceeded.
	SaveReversal(ctx context.Context, reversal domain.Transaction) error

	// UpdateTransactionMetadata updates description, category, cost center
	// and contact only. Amount, type and bank account are immutable.
	UpdateTransactionMetadata(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
