package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	"github.com/fintelis/erp_backend/internal/utils/pagination"
)

// PgxTransactionRepository implements the transaction repository using pgx.
type PgxTransactionRepository struct {
	BaseRepository
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func newPgxTransactionRepository(db *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: db}}
}

const transactionColumns = `transaction_id, company_id, bank_account_id, category_id, cost_center_id,
	cash_register_id, contact_id, description, amount, type, transaction_date,
	linked_transaction_id, related_transaction_id,
	created_at, created_by, last_updated_at, last_updated_by`

const transactionInsert = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

func transactionArgs(t domain.Transaction) []any {
	return []any{
		t.TransactionID, t.CompanyID, t.BankAccountID, t.CategoryID, t.CostCenterID,
		t.CashRegisterID, t.ContactID, t.Description, t.Amount, t.Type, t.TransactionDate,
		t.LinkedTransactionID, t.RelatedTransactionID,
		t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy,
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID, &t.CompanyID, &t.BankAccountID, &t.CategoryID, &t.CostCenterID,
		&t.CashRegisterID, &t.ContactID, &t.Description, &t.Amount, &t.Type, &t.TransactionDate,
		&t.LinkedTransactionID, &t.RelatedTransactionID,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
	}
	return &t, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`
	return scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
}

func (r *PgxTransactionRepository) ListTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listPaginated(ctx, `t.company_id = $1`, []any{companyID}, limit, nextToken)
}

func (r *PgxTransactionRepository) ListTransactionsByBankAccount(ctx context.Context, companyID, bankAccountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listPaginated(ctx, `t.company_id = $1 AND t.bank_account_id = $2`, []any{companyID, bankAccountID}, limit, nextToken)
}

// listPaginated walks the ledger newest-first using keyset pagination on
// (transaction_date, created_at). One extra row is fetched to decide whether
// a next page exists.
func (r *PgxTransactionRepository) listPaginated(ctx context.Context, where string, args []any, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", apperrors.ErrValidation)
		}
		where += ` AND (t.transaction_date, t.created_at) < ($` +
			strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, txnDate, createdAt)
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE ` + where + `
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.TransactionID, &t.CompanyID, &t.BankAccountID, &t.CategoryID, &t.CostCenterID,
			&t.CashRegisterID, &t.ContactID, &t.Description, &t.Amount, &t.Type, &t.TransactionDate,
			&t.LinkedTransactionID, &t.RelatedTransactionID,
			&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}

	var token *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[limit-1]
		encoded := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &encoded
	}
	return transactions, token, nil
}

func (r *PgxTransactionRepository) SumReversedAmount(ctx context.Context, originalTransactionID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE related_transaction_id = $1 AND type = 'reversal'`,
		originalTransactionID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum reversals", err)
	}
	return sum, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	_, err := r.Pool.Exec(ctx, transactionInsert, transactionArgs(txn)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save transaction", err)
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransferPair(ctx context.Context, outgoing, incoming domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	batch.Queue(transactionInsert, transactionArgs(outgoing)...)
	batch.Queue(transactionInsert, transactionArgs(incoming)...)

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < 2; i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return apperrors.NewAppError(500, "failed to save transfer pair", err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to save transfer pair", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction) error {
	if reversal.RelatedTransactionID == nil {
		return apperrors.NewAppError(400, "reversal requires an original transaction", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the original so concurrent reversals serialize on the cap check.
	var originalAmount decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT amount FROM transactions WHERE transaction_id = $1 FOR UPDATE`,
		*reversal.RelatedTransactionID,
	).Scan(&originalAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock original transaction", err)
	}

	var reversedSoFar decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE related_transaction_id = $1 AND type = 'reversal'`,
		*reversal.RelatedTransactionID,
	).Scan(&reversedSoFar)
	if err != nil {
		return apperrors.NewAppError(500, "failed to sum reversals", err)
	}

	if reversedSoFar.Add(reversal.Amount).GreaterThan(originalAmount) {
		return apperrors.NewAppError(400, "reversal exceeds remaining refundable balance", apperrors.ErrValidation)
	}

	if _, err = tx.Exec(ctx, transactionInsert, transactionArgs(reversal)...); err != nil {
		return apperrors.NewAppError(500, "failed to save reversal", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) UpdateTransactionMetadata(ctx context.Context, txn domain.Transaction) error {
	// Amount, type, bank account and dates never change after creation.
	query := `
		UPDATE transactions
		SET description = $1, category_id = $2, cost_center_id = $3, contact_id = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $7`
	tag, err := r.Pool.Exec(ctx, query,
		txn.Description, txn.CategoryID, txn.CostCenterID, txn.ContactID,
		txn.LastUpdatedAt, txn.LastUpdatedBy, txn.TransactionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
