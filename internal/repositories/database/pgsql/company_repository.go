package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
)

// PgxCompanyRepository implements the company repository using pgx.
type PgxCompanyRepository struct {
	BaseRepository
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func newPgxCompanyRepository(db *pgxpool.Pool) *PgxCompanyRepository {
	return &PgxCompanyRepository{BaseRepository{Pool: db}}
}

const companyColumns = `company_id, name, tax_id, created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.CompanyID, &c.Name, &c.TaxID,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan company", err)
	}
	return &c, nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.Pool.Exec(ctx, query,
		company.CompanyID, company.Name, company.TaxID,
		company.CreatedAt, company.CreatedBy, company.LastUpdatedAt, company.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save company", err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1`
	return scanCompany(r.Pool.QueryRow(ctx, query, companyID))
}

func (r *PgxCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	query := `
		SELECT c.company_id, c.name, c.tax_id, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM companies c
		JOIN memberships m ON m.company_id = c.company_id
		WHERE m.user_id = $1
		ORDER BY c.name`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list companies", err)
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(
			&c.CompanyID, &c.Name, &c.TaxID,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *PgxCompanyRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	query := `
		INSERT INTO memberships (company_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.Pool.Exec(ctx, query,
		membership.CompanyID, membership.UserID, membership.Role,
		membership.CreatedAt, membership.CreatedBy, membership.LastUpdatedAt, membership.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "user is already a member of this company", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save membership", err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindMembership(ctx context.Context, companyID, userID string) (*domain.Membership, error) {
	query := `
		SELECT company_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by
		FROM memberships
		WHERE company_id = $1 AND user_id = $2`
	var m domain.Membership
	err := r.Pool.QueryRow(ctx, query, companyID, userID).Scan(
		&m.CompanyID, &m.UserID, &m.Role,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan membership", err)
	}
	return &m, nil
}
