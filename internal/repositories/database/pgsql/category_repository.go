package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
)

// PgxCategoryRepository implements the category repository using pgx.
// Code allocation and the insert share one database transaction so two
// concurrent creates under the same parent cannot claim the same code.
type PgxCategoryRepository struct {
	BaseRepository
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func newPgxCategoryRepository(db *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository{Pool: db}}
}

const categoryColumns = `category_id, company_id, parent_id, name, kind, code, ordinal, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCategoryRepository) CreateCategoryWithCode(ctx context.Context, category domain.Category) (*domain.Category, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// The parent row lock keeps the parent alive until the child lands.
	var parentCode string
	parentKey := "root:" + string(category.Kind)
	if category.ParentID != nil {
		err = tx.QueryRow(ctx,
			`SELECT code FROM categories WHERE category_id = $1 FOR UPDATE`,
			*category.ParentID,
		).Scan(&parentCode)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, apperrors.NewAppError(500, "failed to lock parent category", err)
		}
		parentKey = *category.ParentID
	}

	// Ordinals come from a counter that outlives the sibling rows, so a
	// deleted tail sibling never gets its code reissued. The upsert
	// serializes concurrent creates on the counter row.
	err = tx.QueryRow(ctx, `
		INSERT INTO code_counters (company_id, family, parent_key, last_ordinal)
		VALUES ($1, 'categories', $2, 1)
		ON CONFLICT (company_id, family, parent_key)
		DO UPDATE SET last_ordinal = code_counters.last_ordinal + 1
		RETURNING last_ordinal`,
		category.CompanyID, parentKey,
	).Scan(&category.Ordinal)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to allocate category ordinal", err)
	}

	if category.ParentID != nil {
		category.Code = parentCode + "." + strconv.Itoa(category.Ordinal)
	} else {
		category.Code = strconv.Itoa(category.Ordinal)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		category.CategoryID, category.CompanyID, category.ParentID, category.Name,
		category.Kind, category.Code, category.Ordinal,
		category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewAppError(409, "category name already exists under this parent", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to save category", err)
	}

	if err = r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1`
	var c domain.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(
		&c.CategoryID, &c.CompanyID, &c.ParentID, &c.Name, &c.Kind, &c.Code, &c.Ordinal,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan category", err)
	}
	return &c, nil
}

func (r *PgxCategoryRepository) ListCategoriesByCompany(ctx context.Context, companyID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE company_id = $1`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list categories", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(
			&c.CategoryID, &c.CompanyID, &c.ParentID, &c.Name, &c.Kind, &c.Code, &c.Ordinal,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	// Code, kind and parent are immutable once assigned.
	query := `
		UPDATE categories
		SET name = $1, last_updated_at = $2, last_updated_by = $3
		WHERE category_id = $4`
	tag, err := r.Pool.Exec(ctx, query,
		category.Name, category.LastUpdatedAt, category.LastUpdatedBy, category.CategoryID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "category name already exists under this parent", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to update category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1`, categoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "category is referenced by existing records", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const costCenterColumns = `cost_center_id, company_id, parent_id, name, code, ordinal, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCategoryRepository) CreateCostCenterWithCode(ctx context.Context, costCenter domain.CostCenter) (*domain.CostCenter, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var parentCode string
	parentKey := "root"
	if costCenter.ParentID != nil {
		err = tx.QueryRow(ctx,
			`SELECT code FROM cost_centers WHERE cost_center_id = $1 FOR UPDATE`,
			*costCenter.ParentID,
		).Scan(&parentCode)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, apperrors.NewAppError(500, "failed to lock parent cost center", err)
		}
		parentKey = *costCenter.ParentID
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO code_counters (company_id, family, parent_key, last_ordinal)
		VALUES ($1, 'cost_centers', $2, 1)
		ON CONFLICT (company_id, family, parent_key)
		DO UPDATE SET last_ordinal = code_counters.last_ordinal + 1
		RETURNING last_ordinal`,
		costCenter.CompanyID, parentKey,
	).Scan(&costCenter.Ordinal)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to allocate cost center ordinal", err)
	}

	if costCenter.ParentID != nil {
		costCenter.Code = parentCode + "." + strconv.Itoa(costCenter.Ordinal)
	} else {
		costCenter.Code = strconv.Itoa(costCenter.Ordinal)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO cost_centers (`+costCenterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		costCenter.CostCenterID, costCenter.CompanyID, costCenter.ParentID, costCenter.Name,
		costCenter.Code, costCenter.Ordinal,
		costCenter.CreatedAt, costCenter.CreatedBy, costCenter.LastUpdatedAt, costCenter.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewAppError(409, "cost center name already exists under this parent", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to save cost center", err)
	}

	if err = r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &costCenter, nil
}

func (r *PgxCategoryRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE cost_center_id = $1`
	var c domain.CostCenter
	err := r.Pool.QueryRow(ctx, query, costCenterID).Scan(
		&c.CostCenterID, &c.CompanyID, &c.ParentID, &c.Name, &c.Code, &c.Ordinal,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan cost center", err)
	}
	return &c, nil
}

func (r *PgxCategoryRepository) ListCostCentersByCompany(ctx context.Context, companyID string) ([]domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE company_id = $1`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list cost centers", err)
	}
	defer rows.Close()

	costCenters := make([]domain.CostCenter, 0)
	for rows.Next() {
		var c domain.CostCenter
		if err := rows.Scan(
			&c.CostCenterID, &c.CompanyID, &c.ParentID, &c.Name, &c.Code, &c.Ordinal,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cost center", err)
		}
		costCenters = append(costCenters, c)
	}
	return costCenters, rows.Err()
}

func (r *PgxCategoryRepository) UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	query := `
		UPDATE cost_centers
		SET name = $1, last_updated_at = $2, last_updated_by = $3
		WHERE cost_center_id = $4`
	tag, err := r.Pool.Exec(ctx, query,
		costCenter.Name, costCenter.LastUpdatedAt, costCenter.LastUpdatedBy, costCenter.CostCenterID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "cost center name already exists under this parent", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to update cost center", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) DeleteCostCenter(ctx context.Context, costCenterID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM cost_centers WHERE cost_center_id = $1`, costCenterID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "cost center is referenced by existing records", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to delete cost center", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
