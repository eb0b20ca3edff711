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

// PgxRecurringRepository implements the recurring-template repository using
// pgx. Generation advances the template with a guarded UPDATE so the same
// occurrence can never be materialized twice.
type PgxRecurringRepository struct {
	BaseRepository
}

var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

func newPgxRecurringRepository(db *pgxpool.Pool) *PgxRecurringRepository {
	return &PgxRecurringRepository{BaseRepository{Pool: db}}
}

const recurringBillColumns = `recurring_bill_id, company_id, category_id, cost_center_id, contact_id,
	description, amount, frequency, start_date, end_date, next_due_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const recurringIncomeColumns = `recurring_income_id, company_id, category_id, cost_center_id, contact_id,
	description, amount, frequency, start_date, end_date, next_due_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRecurringBill(row pgx.Row) (*domain.RecurringBill, error) {
	var t domain.RecurringBill
	err := row.Scan(
		&t.RecurringBillID, &t.CompanyID, &t.CategoryID, &t.CostCenterID, &t.ContactID,
		&t.Description, &t.Amount, &t.Frequency, &t.StartDate, &t.EndDate, &t.NextDueDate, &t.IsActive,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan recurring bill", err)
	}
	return &t, nil
}

func scanRecurringIncome(row pgx.Row) (*domain.RecurringIncome, error) {
	var t domain.RecurringIncome
	err := row.Scan(
		&t.RecurringIncomeID, &t.CompanyID, &t.CategoryID, &t.CostCenterID, &t.ContactID,
		&t.Description, &t.Amount, &t.Frequency, &t.StartDate, &t.EndDate, &t.NextDueDate, &t.IsActive,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan recurring income", err)
	}
	return &t, nil
}

func (r *PgxRecurringRepository) SaveRecurringBill(ctx context.Context, template domain.RecurringBill) error {
	query := `
		INSERT INTO recurring_bills (` + recurringBillColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.Pool.Exec(ctx, query,
		template.RecurringBillID, template.CompanyID, template.CategoryID, template.CostCenterID, template.ContactID,
		template.Description, template.Amount, template.Frequency, template.StartDate, template.EndDate,
		template.NextDueDate, template.IsActive,
		template.CreatedAt, template.CreatedBy, template.LastUpdatedAt, template.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save recurring bill", err)
	}
	return nil
}

func (r *PgxRecurringRepository) FindRecurringBillByID(ctx context.Context, templateID string) (*domain.RecurringBill, error) {
	query := `SELECT ` + recurringBillColumns + ` FROM recurring_bills WHERE recurring_bill_id = $1`
	return scanRecurringBill(r.Pool.QueryRow(ctx, query, templateID))
}

func (r *PgxRecurringRepository) ListRecurringBillsByCompany(ctx context.Context, companyID string) ([]domain.RecurringBill, error) {
	query := `SELECT ` + recurringBillColumns + ` FROM recurring_bills WHERE company_id = $1 ORDER BY next_due_date`
	return r.collectRecurringBills(ctx, query, companyID)
}

func (r *PgxRecurringRepository) ListDueRecurringBills(ctx context.Context, asOf time.Time) ([]domain.RecurringBill, error) {
	query := `SELECT ` + recurringBillColumns + ` FROM recurring_bills WHERE is_active AND next_due_date <= $1 ORDER BY next_due_date`
	return r.collectRecurringBills(ctx, query, asOf)
}

func (r *PgxRecurringRepository) collectRecurringBills(ctx context.Context, query string, arg any) ([]domain.RecurringBill, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list recurring bills", err)
	}
	defer rows.Close()

	templates := make([]domain.RecurringBill, 0)
	for rows.Next() {
		var t domain.RecurringBill
		if err := rows.Scan(
			&t.RecurringBillID, &t.CompanyID, &t.CategoryID, &t.CostCenterID, &t.ContactID,
			&t.Description, &t.Amount, &t.Frequency, &t.StartDate, &t.EndDate, &t.NextDueDate, &t.IsActive,
			&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recurring bill", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *PgxRecurringRepository) GenerateBillFromTemplate(ctx context.Context, bill domain.Bill, template domain.RecurringBill, prevDueDate time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// The guard on next_due_date makes the advance idempotent: a concurrent
	// sweep that already moved the template leaves zero rows affected here.
	tag, err := tx.Exec(ctx, `
		UPDATE recurring_bills
		SET next_due_date = $1, is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE recurring_bill_id = $5 AND next_due_date = $6`,
		template.NextDueDate, template.IsActive, template.LastUpdatedAt, template.LastUpdatedBy,
		template.RecurringBillID, prevDueDate,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance recurring bill", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "occurrence already generated", apperrors.ErrConflict)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bills (`+billColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		bill.BillID, bill.CompanyID, bill.CategoryID, bill.CostCenterID, bill.ContactID, bill.Description,
		bill.Amount, bill.DueDate, bill.Status, bill.PaymentTransactionID, bill.RecurringBillID,
		bill.CreatedAt, bill.CreatedBy, bill.LastUpdatedAt, bill.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save generated bill", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRecurringRepository) UpdateRecurringBill(ctx context.Context, template domain.RecurringBill, propagateAmount bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE recurring_bills
		SET category_id = $1, cost_center_id = $2, contact_id = $3, description = $4,
		    amount = $5, frequency = $6, end_date = $7, is_active = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE recurring_bill_id = $11`,
		template.CategoryID, template.CostCenterID, template.ContactID, template.Description,
		template.Amount, template.Frequency, template.EndDate, template.IsActive,
		template.LastUpdatedAt, template.LastUpdatedBy, template.RecurringBillID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update recurring bill", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if propagateAmount {
		// Settled documents are history and keep their original amount.
		_, err = tx.Exec(ctx, `
			UPDATE bills
			SET amount = $1, last_updated_at = $2, last_updated_by = $3
			WHERE recurring_bill_id = $4 AND status = 'pending'`,
			template.Amount, template.LastUpdatedAt, template.LastUpdatedBy, template.RecurringBillID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to propagate amount to pending bills", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRecurringRepository) DeleteRecurringBill(ctx context.Context, templateID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM recurring_bills WHERE recurring_bill_id = $1`, templateID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "recurring bill has generated documents", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to delete recurring bill", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecurringRepository) SaveRecurringIncome(ctx context.Context, template domain.RecurringIncome) error {
	query := `
		INSERT INTO recurring_incomes (` + recurringIncomeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.Pool.Exec(ctx, query,
		template.RecurringIncomeID, template.CompanyID, template.CategoryID, template.CostCenterID, template.ContactID,
		template.Description, template.Amount, template.Frequency, template.StartDate, template.EndDate,
		template.NextDueDate, template.IsActive,
		template.CreatedAt, template.CreatedBy, template.LastUpdatedAt, template.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save recurring income", err)
	}
	return nil
}

func (r *PgxRecurringRepository) FindRecurringIncomeByID(ctx context.Context, templateID string) (*domain.RecurringIncome, error) {
	query := `SELECT ` + recurringIncomeColumns + ` FROM recurring_incomes WHERE recurring_income_id = $1`
	return scanRecurringIncome(r.Pool.QueryRow(ctx, query, templateID))
}

func (r *PgxRecurringRepository) ListRecurringIncomesByCompany(ctx context.Context, companyID string) ([]domain.RecurringIncome, error) {
	query := `SELECT ` + recurringIncomeColumns + ` FROM recurring_incomes WHERE company_id = $1 ORDER BY next_due_date`
	return r.collectRecurringIncomes(ctx, query, companyID)
}

func (r *PgxRecurringRepository) ListDueRecurringIncomes(ctx context.Context, asOf time.Time) ([]domain.RecurringIncome, error) {
	query := `SELECT ` + recurringIncomeColumns + ` FROM recurring_incomes WHERE is_active AND next_due_date <= $1 ORDER BY next_due_date`
	return r.collectRecurringIncomes(ctx, query, asOf)
}

func (r *PgxRecurringRepository) collectRecurringIncomes(ctx context.Context, query string, arg any) ([]domain.RecurringIncome, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list recurring incomes", err)
	}
	defer rows.Close()

	templates := make([]domain.RecurringIncome, 0)
	for rows.Next() {
		var t domain.RecurringIncome
		if err := rows.Scan(
			&t.RecurringIncomeID, &t.CompanyID, &t.CategoryID, &t.CostCenterID, &t.ContactID,
			&t.Description, &t.Amount, &t.Frequency, &t.StartDate, &t.EndDate, &t.NextDueDate, &t.IsActive,
			&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recurring income", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *PgxRecurringRepository) GenerateIncomeFromTemplate(ctx context.Context, income domain.Income, template domain.RecurringIncome, prevDueDate time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE recurring_incomes
		SET next_due_date = $1, is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE recurring_income_id = $5 AND next_due_date = $6`,
		template.NextDueDate, template.IsActive, template.LastUpdatedAt, template.LastUpdatedBy,
		template.RecurringIncomeID, prevDueDate,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance recurring income", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "occurrence already generated", apperrors.ErrConflict)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO incomes (`+incomeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		income.IncomeID, income.CompanyID, income.CategoryID, income.CostCenterID, income.ContactID, income.Description,
		income.Amount, income.DueDate, income.Status, income.PaymentTransactionID, income.RecurringIncomeID,
		income.CreatedAt, income.CreatedBy, income.LastUpdatedAt, income.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save generated income", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRecurringRepository) UpdateRecurringIncome(ctx context.Context, template domain.RecurringIncome, propagateAmount bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE recurring_incomes
		SET category_id = $1, cost_center_id = $2, contact_id = $3, description = $4,
		    amount = $5, frequency = $6, end_date = $7, is_active = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE recurring_income_id = $11`,
		template.CategoryID, template.CostCenterID, template.ContactID, template.Description,
		template.Amount, template.Frequency, template.EndDate, template.IsActive,
		template.LastUpdatedAt, template.LastUpdatedBy, template.RecurringIncomeID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update recurring income", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if propagateAmount {
		_, err = tx.Exec(ctx, `
			UPDATE incomes
			SET amount = $1, last_updated_at = $2, last_updated_by = $3
			WHERE recurring_income_id = $4 AND status = 'pending'`,
			template.Amount, template.LastUpdatedAt, template.LastUpdatedBy, template.RecurringIncomeID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to propagate amount to pending incomes", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRecurringRepository) DeleteRecurringIncome(ctx context.Context, templateID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM recurring_incomes WHERE recurring_income_id = $1`, templateID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "recurring income has generated documents", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to delete recurring income", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
