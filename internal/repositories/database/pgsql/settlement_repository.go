package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
)

// PgxSettlementRepository implements the bill/income repository using pgx.
// Settlement couples the transaction insert with a guarded status flip so a
// document can never be settled twice.
type PgxSettlementRepository struct {
	BaseRepository
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

func newPgxSettlementRepository(db *pgxpool.Pool) *PgxSettlementRepository {
	return &PgxSettlementRepository{BaseRepository{Pool: db}}
}

const billColumns = `bill_id, company_id, category_id, cost_center_id, contact_id, description,
	amount, due_date, status, payment_transaction_id, recurring_bill_id,
	created_at, created_by, last_updated_at, last_updated_by`

const incomeColumns = `income_id, company_id, category_id, cost_center_id, contact_id, description,
	amount, due_date, status, payment_transaction_id, recurring_income_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var b domain.Bill
	err := row.Scan(
		&b.BillID, &b.CompanyID, &b.CategoryID, &b.CostCenterID, &b.ContactID, &b.Description,
		&b.Amount, &b.DueDate, &b.Status, &b.PaymentTransactionID, &b.RecurringBillID,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan bill", err)
	}
	return &b, nil
}

func scanIncome(row pgx.Row) (*domain.Income, error) {
	var i domain.Income
	err := row.Scan(
		&i.IncomeID, &i.CompanyID, &i.CategoryID, &i.CostCenterID, &i.ContactID, &i.Description,
		&i.Amount, &i.DueDate, &i.Status, &i.PaymentTransactionID, &i.RecurringIncomeID,
		&i.CreatedAt, &i.CreatedBy, &i.LastUpdatedAt, &i.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan income", err)
	}
	return &i, nil
}

func (r *PgxSettlementRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1`
	return scanBill(r.Pool.QueryRow(ctx, query, billID))
}

func (r *PgxSettlementRepository) ListBillsByCompany(ctx context.Context, companyID string, status *domain.SettlementStatus) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE company_id = $1 AND ($2::text IS NULL OR status = $2) ORDER BY due_date`
	rows, err := r.Pool.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list bills", err)
	}
	defer rows.Close()
	return collectBills(rows)
}

func (r *PgxSettlementRepository) ListBillsDueWithin(ctx context.Context, from, to time.Time) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE status = 'pending' AND due_date >= $1 AND due_date <= $2 ORDER BY due_date`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list due bills", err)
	}
	defer rows.Close()
	return collectBills(rows)
}

func collectBills(rows pgx.Rows) ([]domain.Bill, error) {
	bills := make([]domain.Bill, 0)
	for rows.Next() {
		var b domain.Bill
		if err := rows.Scan(
			&b.BillID, &b.CompanyID, &b.CategoryID, &b.CostCenterID, &b.ContactID, &b.Description,
			&b.Amount, &b.DueDate, &b.Status, &b.PaymentTransactionID, &b.RecurringBillID,
			&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *PgxSettlementRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE income_id = $1`
	return scanIncome(r.Pool.QueryRow(ctx, query, incomeID))
}

func (r *PgxSettlementRepository) ListIncomesByCompany(ctx context.Context, companyID string, status *domain.SettlementStatus) ([]domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE company_id = $1 AND ($2::text IS NULL OR status = $2) ORDER BY due_date`
	rows, err := r.Pool.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list incomes", err)
	}
	defer rows.Close()
	return collectIncomes(rows)
}

func (r *PgxSettlementRepository) ListIncomesDueWithin(ctx context.Context, from, to time.Time) ([]domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE status = 'pending' AND due_date >= $1 AND due_date <= $2 ORDER BY due_date`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list due incomes", err)
	}
	defer rows.Close()
	return collectIncomes(rows)
}

func collectIncomes(rows pgx.Rows) ([]domain.Income, error) {
	incomes := make([]domain.Income, 0)
	for rows.Next() {
		var i domain.Income
		if err := rows.Scan(
			&i.IncomeID, &i.CompanyID, &i.CategoryID, &i.CostCenterID, &i.ContactID, &i.Description,
			&i.Amount, &i.DueDate, &i.Status, &i.PaymentTransactionID, &i.RecurringIncomeID,
			&i.CreatedAt, &i.CreatedBy, &i.LastUpdatedAt, &i.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan income", err)
		}
		incomes = append(incomes, i)
	}
	return incomes, rows.Err()
}

func (r *PgxSettlementRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.Pool.Exec(ctx, query,
		bill.BillID, bill.CompanyID, bill.CategoryID, bill.CostCenterID, bill.ContactID, bill.Description,
		bill.Amount, bill.DueDate, bill.Status, bill.PaymentTransactionID, bill.RecurringBillID,
		bill.CreatedAt, bill.CreatedBy, bill.LastUpdatedAt, bill.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save bill", err)
	}
	return nil
}

func (r *PgxSettlementRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	// Settled bills are immutable; the guard keeps history intact even if a
	// stale caller slips past the service check.
	query := `
		UPDATE bills
		SET category_id = $1, cost_center_id = $2, contact_id = $3, description = $4,
		    amount = $5, due_date = $6, last_updated_at = $7, last_updated_by = $8
		WHERE bill_id = $9 AND status = 'pending'`
	tag, err := r.Pool.Exec(ctx, query,
		bill.CategoryID, bill.CostCenterID, bill.ContactID, bill.Description,
		bill.Amount, bill.DueDate, bill.LastUpdatedAt, bill.LastUpdatedBy, bill.BillID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bill", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "bill is settled or missing", apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxSettlementRepository) DeleteBill(ctx context.Context, billID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM bills WHERE bill_id = $1 AND status = 'pending'`, billID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete bill", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "bill is settled or missing", apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxSettlementRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	query := `
		INSERT INTO incomes (` + incomeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.Pool.Exec(ctx, query,
		income.IncomeID, income.CompanyID, income.CategoryID, income.CostCenterID, income.ContactID, income.Description,
		income.Amount, income.DueDate, income.Status, income.PaymentTransactionID, income.RecurringIncomeID,
		income.CreatedAt, income.CreatedBy, income.LastUpdatedAt, income.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save income", err)
	}
	return nil
}

func (r *PgxSettlementRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	query := `
		UPDATE incomes
		SET category_id = $1, cost_center_id = $2, contact_id = $3, description = $4,
		    amount = $5, due_date = $6, last_updated_at = $7, last_updated_by = $8
		WHERE income_id = $9 AND status = 'pending'`
	tag, err := r.Pool.Exec(ctx, query,
		income.CategoryID, income.CostCenterID, income.ContactID, income.Description,
		income.Amount, income.DueDate, income.LastUpdatedAt, income.LastUpdatedBy, income.IncomeID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update income", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "income is settled or missing", apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxSettlementRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM incomes WHERE income_id = $1 AND status = 'pending'`, incomeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete income", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "income is settled or missing", apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxSettlementRepository) SettleBill(ctx context.Context, bill domain.Bill, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, transactionInsert, transactionArgs(txn)...); err != nil {
		return apperrors.NewAppError(500, "failed to save payment transaction", err)
	}

	// Guarded flip: losing the race leaves zero rows affected and nothing
	// persisted after rollback.
	tag, err := tx.Exec(ctx, `
		UPDATE bills
		SET status = 'settled', payment_transaction_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE bill_id = $4 AND status = 'pending'`,
		txn.TransactionID, bill.LastUpdatedAt, bill.LastUpdatedBy, bill.BillID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to settle bill", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "bill already settled", apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSettlementRepository) SettleIncome(ctx context.Context, income domain.Income, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, transactionInsert, transactionArgs(txn)...); err != nil {
		return apperrors.NewAppError(500, "failed to save receipt transaction", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE incomes
		SET status = 'settled', payment_transaction_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE income_id = $4 AND status = 'pending'`,
		txn.TransactionID, income.LastUpdatedAt, income.LastUpdatedBy, income.IncomeID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to settle income", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "income already settled", apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}
