package services

import (
	"context"

	"github.com/fintelis/erp_backend/internal/dto"
)

// LedgerReaderSvc defines read operations over posted transactions.
type LedgerReaderSvc interface {
	GetTransactionByID(ctx context.Context, companyID, transactionID, userID string) (*dto.TransactionResponse, error)
	ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams, userID string) (*dto.ListTransactionsResponse, error)
}

// LedgerWriterSvc defines the posting operations of the ledger.
type LedgerWriterSvc interface {
	// RecordTransaction posts a single revenue or expense entry.
	RecordTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, userID string) (*dto.TransactionResponse, error)

	// UpdateTransaction edits descriptive metadata only.
	UpdateTransaction(ctx context.Context, companyID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*dto.TransactionResponse, error)

	// Transfer posts both legs atomically. The outgoing leg carries the gross
	// amount; the incoming leg is net of the optional deduction percentage.
	Transfer(ctx context.Context, companyID string, req dto.TransferRequest, userID string) (*dto.TransferResponse, error)

	// Refund posts a reversal against a revenue transaction. The sum of
	// reversals never exceeds the original amount.
	Refund(ctx context.Context, companyID, transactionID string, req dto.RefundRequest, userID string) (*dto.TransactionResponse, error)
}

// LedgerSvcFacade combines ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
