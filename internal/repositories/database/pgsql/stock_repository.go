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

// PgxStockRepository implements the inventory repository using pgx. The
// kardex is append-only; quantity updates happen only through the relative
// increment inside ApplyMovement.
type PgxStockRepository struct {
	BaseRepository
}

var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

func newPgxStockRepository(db *pgxpool.Pool) *PgxStockRepository {
	return &PgxStockRepository{BaseRepository{Pool: db}}
}

func (r *PgxStockRepository) FindProductCategoryByID(ctx context.Context, productCategoryID string) (*domain.ProductCategory, error) {
	var c domain.ProductCategory
	err := r.Pool.QueryRow(ctx, `
		SELECT product_category_id, company_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM product_categories WHERE product_category_id = $1`,
		productCategoryID,
	).Scan(&c.ProductCategoryID, &c.CompanyID, &c.Name, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan product category", err)
	}
	return &c, nil
}

func (r *PgxStockRepository) ListProductCategoriesByCompany(ctx context.Context, companyID string) ([]domain.ProductCategory, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT product_category_id, company_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM product_categories WHERE company_id = $1 ORDER BY name`,
		companyID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list product categories", err)
	}
	defer rows.Close()

	categories := make([]domain.ProductCategory, 0)
	for rows.Next() {
		var c domain.ProductCategory
		if err := rows.Scan(&c.ProductCategoryID, &c.CompanyID, &c.Name, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product category", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const productColumns = `product_id, company_id, product_category_id, name, sku, min_stock_level, default_cost,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxStockRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	var p domain.Product
	err := r.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = $1`, productID).Scan(
		&p.ProductID, &p.CompanyID, &p.ProductCategoryID, &p.Name, &p.SKU, &p.MinStockLevel, &p.DefaultCost,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan product", err)
	}
	return &p, nil
}

func (r *PgxStockRepository) ListProductsByCompany(ctx context.Context, companyID string) ([]domain.Product, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY name`, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list products", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ProductID, &p.CompanyID, &p.ProductCategoryID, &p.Name, &p.SKU, &p.MinStockLevel, &p.DefaultCost,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PgxStockRepository) FindInventoryByID(ctx context.Context, inventoryID string) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := r.Pool.QueryRow(ctx, `
		SELECT inventory_id, company_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM inventories WHERE inventory_id = $1`,
		inventoryID,
	).Scan(&inv.InventoryID, &inv.CompanyID, &inv.Name, &inv.CreatedAt, &inv.CreatedBy, &inv.LastUpdatedAt, &inv.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan inventory", err)
	}
	return &inv, nil
}

func (r *PgxStockRepository) ListInventoriesByCompany(ctx context.Context, companyID string) ([]domain.Inventory, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT inventory_id, company_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM inventories WHERE company_id = $1 ORDER BY name`,
		companyID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list inventories", err)
	}
	defer rows.Close()

	inventories := make([]domain.Inventory, 0)
	for rows.Next() {
		var inv domain.Inventory
		if err := rows.Scan(&inv.InventoryID, &inv.CompanyID, &inv.Name, &inv.CreatedAt, &inv.CreatedBy, &inv.LastUpdatedAt, &inv.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inventory", err)
		}
		inventories = append(inventories, inv)
	}
	return inventories, rows.Err()
}

const stockItemColumns = `stock_item_id, company_id, product_id, inventory_id, quantity_on_hand,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxStockRepository) FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error) {
	var s domain.StockItem
	err := r.Pool.QueryRow(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE stock_item_id = $1`, stockItemID).Scan(
		&s.StockItemID, &s.CompanyID, &s.ProductID, &s.InventoryID, &s.QuantityOnHand,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan stock item", err)
	}
	return &s, nil
}

func (r *PgxStockRepository) FindStockItemDetail(ctx context.Context, stockItemID string) (*portsrepo.StockItemDetail, error) {
	var d portsrepo.StockItemDetail
	err := r.Pool.QueryRow(ctx, `
		SELECT s.stock_item_id, s.company_id, s.product_id, s.inventory_id, s.quantity_on_hand,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by,
		       p.name, i.name, p.min_stock_level
		FROM stock_items s
		JOIN products p ON p.product_id = s.product_id
		JOIN inventories i ON i.inventory_id = s.inventory_id
		WHERE s.stock_item_id = $1`,
		stockItemID,
	).Scan(
		&d.Item.StockItemID, &d.Item.CompanyID, &d.Item.ProductID, &d.Item.InventoryID, &d.Item.QuantityOnHand,
		&d.Item.CreatedAt, &d.Item.CreatedBy, &d.Item.LastUpdatedAt, &d.Item.LastUpdatedBy,
		&d.ProductName, &d.InventoryName, &d.MinStockLevel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan stock item detail", err)
	}
	return &d, nil
}

func (r *PgxStockRepository) ListStockItemsByCompany(ctx context.Context, companyID string) ([]domain.StockItem, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list stock items", err)
	}
	defer rows.Close()

	items := make([]domain.StockItem, 0)
	for rows.Next() {
		var s domain.StockItem
		if err := rows.Scan(
			&s.StockItemID, &s.CompanyID, &s.ProductID, &s.InventoryID, &s.QuantityOnHand,
			&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock item", err)
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const movementColumns = `movement_id, company_id, stock_item_id, quantity_changed, type,
	linked_transaction_id, unit_cost, description, movement_date,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxStockRepository) ListMovementsByStockItem(ctx context.Context, stockItemID string, limit int) ([]domain.InventoryMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM inventory_movements
		WHERE stock_item_id = $1
		ORDER BY movement_date DESC, created_at DESC
		LIMIT $2`,
		stockItemID, limit,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list movements", err)
	}
	defer rows.Close()

	movements := make([]domain.InventoryMovement, 0)
	for rows.Next() {
		var m domain.InventoryMovement
		if err := rows.Scan(
			&m.MovementID, &m.CompanyID, &m.StockItemID, &m.QuantityChanged, &m.Type,
			&m.LinkedTransactionID, &m.UnitCost, &m.Description, &m.MovementDate,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *PgxStockRepository) SaveProductCategory(ctx context.Context, category domain.ProductCategory) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO product_categories (product_category_id, company_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ProductCategoryID, category.CompanyID, category.Name,
		category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save product category", err)
	}
	return nil
}

func (r *PgxStockRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		product.ProductID, product.CompanyID, product.ProductCategoryID, product.Name,
		product.SKU, product.MinStockLevel, product.DefaultCost,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "product SKU already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save product", err)
	}
	return nil
}

func (r *PgxStockRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE products
		SET product_category_id = $1, name = $2, sku = $3, min_stock_level = $4, default_cost = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE product_id = $8`,
		product.ProductCategoryID, product.Name, product.SKU, product.MinStockLevel, product.DefaultCost,
		product.LastUpdatedAt, product.LastUpdatedBy, product.ProductID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "product SKU already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStockRepository) SaveInventory(ctx context.Context, inventory domain.Inventory) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO inventories (inventory_id, company_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inventory.InventoryID, inventory.CompanyID, inventory.Name,
		inventory.CreatedAt, inventory.CreatedBy, inventory.LastUpdatedAt, inventory.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save inventory", err)
	}
	return nil
}

func (r *PgxStockRepository) SaveStockItem(ctx context.Context, item domain.StockItem) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO stock_items (`+stockItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.StockItemID, item.CompanyID, item.ProductID, item.InventoryID, item.QuantityOnHand,
		item.CreatedAt, item.CreatedBy, item.LastUpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "stock item already exists for this product and inventory", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save stock item", err)
	}
	return nil
}

func (r *PgxStockRepository) ApplyMovement(ctx context.Context, movement domain.InventoryMovement) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		movement.MovementID, movement.CompanyID, movement.StockItemID, movement.QuantityChanged, movement.Type,
		movement.LinkedTransactionID, movement.UnitCost, movement.Description, movement.MovementDate,
		movement.CreatedAt, movement.CreatedBy, movement.LastUpdatedAt, movement.LastUpdatedBy,
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to save movement", err)
	}

	// Relative increment; never read-modify-write, so concurrent movements
	// against the same item cannot lose updates.
	var quantityAfter int64
	err = tx.QueryRow(ctx, `
		UPDATE stock_items
		SET quantity_on_hand = quantity_on_hand + $1, last_updated_at = $2, last_updated_by = $3
		WHERE stock_item_id = $4
		RETURNING quantity_on_hand`,
		movement.QuantityChanged, movement.LastUpdatedAt, movement.LastUpdatedBy, movement.StockItemID,
	).Scan(&quantityAfter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, apperrors.NewAppError(500, "failed to update quantity on hand", err)
	}

	if err = r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return quantityAfter, nil
}
