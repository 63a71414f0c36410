package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/models"
)

const productColumns = `
	p.id, p.name, p.price_cents, p.accent, p.icon, p.note, p.product_type_id, pt.name
	FROM products p
	LEFT JOIN product_types pt ON pt.id = p.product_type_id`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var (
		p                  models.Product
		accent, icon, note sql.NullString
		typeID             sql.NullInt64
		typeName           sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &accent, &icon, &note, &typeID, &typeName); err != nil {
		return nil, err
	}
	p.Accent = stringPtr(accent)
	p.Icon = stringPtr(icon)
	p.Note = stringPtr(note)
	p.ProductTypeID = int64Ptr(typeID)
	p.ProductTypeName = stringPtr(typeName)
	return &p, nil
}

// ListProducts returns the catalog ordered by name, case-insensitive.
func (s *SQLiteStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+productColumns+" ORDER BY p.name COLLATE NOCASE, p.id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a product by ID.
func (s *SQLiteStore) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	return getProduct(ctx, s.db, productID)
}

func getProduct(ctx context.Context, q queryer, productID int64) (*models.Product, error) {
	p, err := scanProduct(q.QueryRowContext(ctx, "SELECT "+productColumns+" WHERE p.id = ?", productID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("product not found: %d", productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// SaveProduct inserts the product when ID is 0 and updates it otherwise.
func (s *SQLiteStore) SaveProduct(ctx context.Context, product *models.Product) (int64, error) {
	name := strings.TrimSpace(product.Name)
	if name == "" {
		return 0, apperr.InvalidInput("product name is required")
	}
	if product.PriceCents < 0 {
		return 0, apperr.InvalidInput("product price must not be negative")
	}

	if product.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO products (name, price_cents, accent, icon, note, product_type_id) VALUES (?, ?, ?, ?, ?, ?)",
			name, product.PriceCents, nullString(product.Accent), nullString(product.Icon),
			nullString(product.Note), nullInt64(product.ProductTypeID),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return 0, apperr.NotFound("product type not found")
			}
			return 0, fmt.Errorf("failed to insert product: %w", err)
		}
		return res.LastInsertId()
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE products SET name = ?, price_cents = ?, accent = ?, icon = ?, note = ?, product_type_id = ? WHERE id = ?",
		name, product.PriceCents, nullString(product.Accent), nullString(product.Icon),
		nullString(product.Note), nullInt64(product.ProductTypeID), product.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperr.NotFound("product type not found")
		}
		return 0, fmt.Errorf("failed to update product: %w", err)
	}
	if err := requireAffected(res, "product", product.ID); err != nil {
		return 0, err
	}
	return product.ID, nil
}

// DeleteProduct removes a product. Past transactions keep their
// description; their product reference is cleared.
func (s *SQLiteStore) DeleteProduct(ctx context.Context, productID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", productID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.InvalidState("product is in an open bucket")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireAffected(res, "product", productID)
}

func (s *SQLiteStore) ListProductTypes(ctx context.Context) ([]*models.ProductType, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, color, created_at, updated_at FROM product_types ORDER BY name COLLATE NOCASE, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list product types: %w", err)
	}
	defer rows.Close()

	var types []*models.ProductType
	for rows.Next() {
		var (
			pt    models.ProductType
			color sql.NullString
		)
		if err := rows.Scan(&pt.ID, &pt.Name, &color, &pt.CreatedAt, &pt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product type: %w", err)
		}
		pt.Color = stringPtr(color)
		types = append(types, &pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product types: %w", err)
	}
	return types, nil
}

func (s *SQLiteStore) SaveProductType(ctx context.Context, productType *models.ProductType) (int64, error) {
	name := strings.TrimSpace(productType.Name)
	if name == "" {
		return 0, apperr.InvalidInput("product type name is required")
	}
	now := s.now().Unix()

	if productType.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO product_types (name, color, created_at, updated_at) VALUES (?, ?, ?, ?)",
			name, nullString(productType.Color), now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert product type: %w", err)
		}
		return res.LastInsertId()
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE product_types SET name = ?, color = ?, updated_at = ? WHERE id = ?",
		name, nullString(productType.Color), now, productType.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update product type: %w", err)
	}
	if err := requireAffected(res, "product type", productType.ID); err != nil {
		return 0, err
	}
	return productType.ID, nil
}

// DeleteProductType removes a type; its products become untyped.
func (s *SQLiteStore) DeleteProductType(ctx context.Context, productTypeID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM product_types WHERE id = ?", productTypeID)
	if err != nil {
		return fmt.Errorf("failed to delete product type: %w", err)
	}
	return requireAffected(res, "product type", productTypeID)
}

// requireAffected turns a zero-row write into NotFound.
func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("%s not found: %d", what, id)
	}
	return nil
}
