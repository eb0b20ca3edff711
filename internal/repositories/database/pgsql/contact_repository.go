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

// PgxContactRepository implements the contact repository using pgx.
type PgxContactRepository struct {
	BaseRepository
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

func newPgxContactRepository(db *pgxpool.Pool) *PgxContactRepository {
	return &PgxContactRepository{BaseRepository{Pool: db}}
}

const contactColumns = `contact_id, company_id, name, fantasy_name, tax_id, email, phone, kind, created_at, created_by, last_updated_at, last_updated_by`

func scanContactRow(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ContactID, &c.CompanyID, &c.Name, &c.FantasyName, &c.TaxID, &c.Email, &c.Phone, &c.Kind,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan contact", err)
	}
	return &c, nil
}

func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.Pool.Exec(ctx, query,
		contact.ContactID, contact.CompanyID, contact.Name, contact.FantasyName,
		contact.TaxID, contact.Email, contact.Phone, contact.Kind,
		contact.CreatedAt, contact.CreatedBy, contact.LastUpdatedAt, contact.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save contact", err)
	}
	return nil
}

func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1`
	return scanContactRow(r.Pool.QueryRow(ctx, query, contactID))
}

func (r *PgxContactRepository) ListContactsByCompany(ctx context.Context, companyID string) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE company_id = $1 ORDER BY name`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list contacts", err)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(
			&c.ContactID, &c.CompanyID, &c.Name, &c.FantasyName, &c.TaxID, &c.Email, &c.Phone, &c.Kind,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contact", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	query := `
		UPDATE contacts
		SET name = $1, fantasy_name = $2, tax_id = $3, email = $4, phone = $5, kind = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE contact_id = $9`
	tag, err := r.Pool.Exec(ctx, query,
		contact.Name, contact.FantasyName, contact.TaxID, contact.Email, contact.Phone, contact.Kind,
		contact.LastUpdatedAt, contact.LastUpdatedBy, contact.ContactID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update contact", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxContactRepository) DeleteContact(ctx context.Context, contactID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM contacts WHERE contact_id = $1`, contactID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "contact is referenced by existing records", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to delete contact", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
