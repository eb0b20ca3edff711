package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
)

// PgxBankAccountRepository implements the bank-account repository using pgx.
type PgxBankAccountRepository struct {
	BaseRepository
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

func newPgxBankAccountRepository(db *pgxpool.Pool) *PgxBankAccountRepository {
	return &PgxBankAccountRepository{BaseRepository{Pool: db}}
}

const bankAccountColumns = `bank_account_id, company_id, name, type, initial_balance, bank_name, account_number, created_at, created_by, last_updated_at, last_updated_by`

// signedSumExpr maps each transaction type to its balance effect. Revenue and
// incoming transfers add; everything else subtracts.
const signedSumExpr = `
	COALESCE(SUM(
		CASE WHEN t.type IN ('revenue', 'internal_transfer') THEN t.amount
		     ELSE -t.amount
		END
	), 0)`

func scanBankAccount(row pgx.Row) (*domain.BankAccount, error) {
	var a domain.BankAccount
	err := row.Scan(
		&a.BankAccountID, &a.CompanyID, &a.Name, &a.Type, &a.InitialBalance,
		&a.BankName, &a.AccountNumber,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan bank account", err)
	}
	return &a, nil
}

func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1`
	return scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
}

func (r *PgxBankAccountRepository) ListBankAccountsByCompany(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE company_id = $1 ORDER BY name`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list bank accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.BankAccount, 0)
	for rows.Next() {
		var a domain.BankAccount
		if err := rows.Scan(
			&a.BankAccountID, &a.CompanyID, &a.Name, &a.Type, &a.InitialBalance,
			&a.BankName, &a.AccountNumber,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *PgxBankAccountRepository) CurrentBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error) {
	query := `
		SELECT a.initial_balance + ` + signedSumExpr + `
		FROM bank_accounts a
		LEFT JOIN transactions t ON t.bank_account_id = a.bank_account_id
		WHERE a.bank_account_id = $1
		GROUP BY a.bank_account_id, a.initial_balance`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, bankAccountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance", err)
	}
	return balance, nil
}

func (r *PgxBankAccountRepository) TotalBalanceByCompany(ctx context.Context, companyID string, exclude []domain.BankAccountType) (decimal.Decimal, error) {
	excluded := make([]string, 0, len(exclude))
	for _, t := range exclude {
		excluded = append(excluded, string(t))
	}
	query := `
		SELECT COALESCE(SUM(a.initial_balance), 0) + ` + signedSumExpr + `
		FROM bank_accounts a
		LEFT JOIN transactions t ON t.bank_account_id = a.bank_account_id
		WHERE a.company_id = $1 AND NOT (a.type = ANY($2))`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, companyID, excluded).Scan(&balance)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute total balance", err)
	}
	return balance, nil
}

func (r *PgxBankAccountRepository) HasTransactions(ctx context.Context, bankAccountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE bank_account_id = $1)`,
		bankAccountID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check account usage", err)
	}
	return exists, nil
}

func (r *PgxBankAccountRepository) FindCashRegisterByID(ctx context.Context, cashRegisterID string) (*domain.CashRegister, error) {
	query := `
		SELECT cash_register_id, company_id, name, default_bank_account_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM cash_registers WHERE cash_register_id = $1`
	var cr domain.CashRegister
	err := r.Pool.QueryRow(ctx, query, cashRegisterID).Scan(
		&cr.CashRegisterID, &cr.CompanyID, &cr.Name, &cr.DefaultBankAccountID,
		&cr.CreatedAt, &cr.CreatedBy, &cr.LastUpdatedAt, &cr.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan cash register", err)
	}
	return &cr, nil
}

func (r *PgxBankAccountRepository) ListCashRegistersByCompany(ctx context.Context, companyID string) ([]domain.CashRegister, error) {
	query := `
		SELECT cash_register_id, company_id, name, default_bank_account_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM cash_registers WHERE company_id = $1 ORDER BY name`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list cash registers", err)
	}
	defer rows.Close()

	registers := make([]domain.CashRegister, 0)
	for rows.Next() {
		var cr domain.CashRegister
		if err := rows.Scan(
			&cr.CashRegisterID, &cr.CompanyID, &cr.Name, &cr.DefaultBankAccountID,
			&cr.CreatedAt, &cr.CreatedBy, &cr.LastUpdatedAt, &cr.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash register", err)
		}
		registers = append(registers, cr)
	}
	return registers, rows.Err()
}

func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.Pool.Exec(ctx, query,
		account.BankAccountID, account.CompanyID, account.Name, account.Type, account.InitialBalance,
		account.BankName, account.AccountNumber,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save bank account", err)
	}
	return nil
}

func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET name = $1, type = $2, initial_balance = $3, bank_name = $4, account_number = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE bank_account_id = $8`
	tag, err := r.Pool.Exec(ctx, query,
		account.Name, account.Type, account.InitialBalance, account.BankName, account.AccountNumber,
		account.LastUpdatedAt, account.LastUpdatedBy, account.BankAccountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bank account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankAccountRepository) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM bank_accounts WHERE bank_account_id = $1`, bankAccountID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "bank account is referenced by existing records", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to delete bank account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankAccountRepository) SaveCashRegister(ctx context.Context, register domain.CashRegister) error {
	query := `
		INSERT INTO cash_registers (cash_register_id, company_id, name, default_bank_account_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.Pool.Exec(ctx, query,
		register.CashRegisterID, register.CompanyID, register.Name, register.DefaultBankAccountID,
		register.CreatedAt, register.CreatedBy, register.LastUpdatedAt, register.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save cash register", err)
	}
	return nil
}

func (r *PgxBankAccountRepository) UpdateCashRegister(ctx context.Context, register domain.CashRegister) error {
	query := `
		UPDATE cash_registers
		SET name = $1, default_bank_account_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE cash_register_id = $5`
	tag, err := r.Pool.Exec(ctx, query,
		register.Name, register.DefaultBankAccountID,
		register.LastUpdatedAt, register.LastUpdatedBy, register.CashRegisterID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cash register", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankAccountRepository) DeleteCashRegister(ctx context.Context, cashRegisterID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM cash_registers WHERE cash_register_id = $1`, cashRegisterID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "cash register is referenced by existing records", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to delete cash register", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
