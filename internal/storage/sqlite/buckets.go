package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/ledger"
	"github.com/mmynk/bucketpos/internal/models"
)

const bucketColumns = `
	b.id, b.name, b.status, b.created_at, b.updated_at,
	COALESCE(SUM(i.quantity), 0),
	COALESCE(SUM(i.quantity * i.price_cents), 0)
	FROM buckets b
	LEFT JOIN bucket_items i ON i.bucket_id = b.id`

func scanBucket(row interface{ Scan(...any) error }) (*models.Bucket, error) {
	b := &models.Bucket{}
	if err := row.Scan(&b.ID, &b.Name, &b.Status, &b.CreatedAt, &b.UpdatedAt, &b.ItemCount, &b.TotalCents); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBuckets returns the open buckets, oldest first.
func (s *SQLiteStore) ListBuckets(ctx context.Context) ([]*models.Bucket, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+bucketColumns+" WHERE b.status = ? GROUP BY b.id ORDER BY b.created_at, b.id",
		models.BucketOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}
	defer rows.Close()

	var buckets []*models.Bucket
	for rows.Next() {
		b, err := scanBucket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buckets: %w", err)
	}
	return buckets, nil
}

// GetBucket retrieves a bucket of any status by ID.
func (s *SQLiteStore) GetBucket(ctx context.Context, bucketID int64) (*models.Bucket, error) {
	return getBucket(ctx, s.db, bucketID)
}

func getBucket(ctx context.Context, q queryer, bucketID int64) (*models.Bucket, error) {
	b, err := scanBucket(q.QueryRowContext(ctx, "SELECT "+bucketColumns+" WHERE b.id = ? GROUP BY b.id", bucketID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("bucket not found: %d", bucketID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}
	return b, nil
}

// CreateBucket opens a bucket named after the lowest number not used by
// another open bucket. The scan and insert share one transaction.
func (s *SQLiteStore) CreateBucket(ctx context.Context) (*models.Bucket, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT name FROM buckets WHERE status = ?", models.BucketOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to list open bucket names: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bucket name: %w", err)
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bucket names: %w", err)
	}

	now := s.now().Unix()
	bucket := &models.Bucket{
		Name:      ledger.NextBucketName(names),
		Status:    models.BucketOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO buckets (name, status, created_at, updated_at) VALUES (?, ?, ?, ?)",
		bucket.Name, bucket.Status, bucket.CreatedAt, bucket.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bucket: %w", err)
	}
	if bucket.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to get bucket id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bucket, nil
}

// RenameBucket sets a trimmed, non-blank name. Names need not be unique.
func (s *SQLiteStore) RenameBucket(ctx context.Context, bucketID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.InvalidInput("bucket name is required")
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE buckets SET name = ?, updated_at = ? WHERE id = ?",
		name, s.now().Unix(), bucketID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename bucket: %w", err)
	}
	return requireAffected(res, "bucket", bucketID)
}

// ListBucketItems returns a bucket's lines in insertion order.
func (s *SQLiteStore) ListBucketItems(ctx context.Context, bucketID int64) ([]*models.BucketItem, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM buckets WHERE id = ?", bucketID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("bucket not found: %d", bucketID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.bucket_id, i.product_id, i.product_name, i.quantity, i.price_cents,
		       p.accent, p.icon, p.note
		FROM bucket_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.bucket_id = ?
		ORDER BY i.id
	`, bucketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket items: %w", err)
	}
	defer rows.Close()

	var items []*models.BucketItem
	for rows.Next() {
		var (
			item               models.BucketItem
			accent, icon, note sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.BucketID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.PriceCents, &accent, &icon, &note); err != nil {
			return nil, fmt.Errorf("failed to scan bucket item: %w", err)
		}
		item.LineTotalCents = item.Quantity * item.PriceCents
		item.Accent = stringPtr(accent)
		item.Icon = stringPtr(icon)
		item.Note = stringPtr(note)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bucket items: %w", err)
	}
	return items, nil
}

// AddItemToBucket adds quantity of a product to an open bucket. An existing
// line for the product is merged: its quantity grows and its name and price
// are replaced with the product's current values.
func (s *SQLiteStore) AddItemToBucket(ctx context.Context, bucketID, productID, quantity int64) error {
	quantity = ledger.ClampQuantity(quantity)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := lockOpenBucket(ctx, tx, bucketID); err != nil {
		return err
	}

	product, err := getProduct(ctx, tx, productID)
	if err != nil {
		return err
	}

	var itemID int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM bucket_items WHERE bucket_id = ? AND product_id = ?",
		bucketID, productID,
	).Scan(&itemID)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bucket_items (bucket_id, product_id, product_name, quantity, price_cents, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, bucketID, productID, product.Name, quantity, product.PriceCents, s.now().Unix()); err != nil {
			return fmt.Errorf("failed to insert bucket item: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to find bucket item: %w", err)
	default:
		if _, err := tx.ExecContext(ctx, `
			UPDATE bucket_items
			SET quantity = quantity + ?, product_name = ?, price_cents = ?
			WHERE id = ?
		`, quantity, product.Name, product.PriceCents, itemID); err != nil {
			return fmt.Errorf("failed to merge bucket item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE buckets SET updated_at = ? WHERE id = ?", s.now().Unix(), bucketID,
	); err != nil {
		return fmt.Errorf("failed to touch bucket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CloseBucket voids a bucket without settlement.
func (s *SQLiteStore) CloseBucket(ctx context.Context, bucketID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE buckets SET status = ?, updated_at = ? WHERE id = ?",
		models.BucketClosed, s.now().Unix(), bucketID,
	)
	if err != nil {
		return fmt.Errorf("failed to close bucket: %w", err)
	}
	if err := requireAffected(res, "bucket", bucketID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bucket_items WHERE bucket_id = ?", bucketID); err != nil {
		return fmt.Errorf("failed to clear bucket items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteBucket removes a bucket and its lines.
func (s *SQLiteStore) DeleteBucket(ctx context.Context, bucketID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bucket_items WHERE bucket_id = ?", bucketID); err != nil {
		return fmt.Errorf("failed to delete bucket items: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM buckets WHERE id = ?", bucketID)
	if err != nil {
		return fmt.Errorf("failed to delete bucket: %w", err)
	}
	if err := requireAffected(res, "bucket", bucketID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockOpenBucket loads a bucket's name and fails unless it exists and is open.
func lockOpenBucket(ctx context.Context, tx *sql.Tx, bucketID int64) (string, error) {
	var name string
	var status models.BucketStatus
	err := tx.QueryRowContext(ctx, "SELECT name, status FROM buckets WHERE id = ?", bucketID).Scan(&name, &status)
	if err == sql.ErrNoRows {
		return "", apperr.NotFound("bucket not found: %d", bucketID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get bucket: %w", err)
	}
	if status != models.BucketOpen {
		return "", apperr.InvalidState("bucket is not open")
	}
	return name, nil
}
