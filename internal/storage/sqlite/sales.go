package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/ledger"
	"github.com/mmynk/bucketpos/internal/models"
)

const transactionColumns = "id, product_id, quantity, total_cents, description, created_at FROM transactions"

// RecordTransaction appends a sale. Quantity is clamped to at least 1.
func (s *SQLiteStore) RecordTransaction(ctx context.Context, txn *models.Transaction) (int64, error) {
	if txn.TotalCents < 0 {
		return 0, apperr.InvalidInput("transaction total must not be negative")
	}
	txn.Quantity = ledger.ClampQuantity(txn.Quantity)
	if txn.CreatedAt == 0 {
		txn.CreatedAt = s.now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (product_id, quantity, total_cents, description, created_at) VALUES (?, ?, ?, ?, ?)",
		nullInt64(txn.ProductID), txn.Quantity, txn.TotalCents, nullString(txn.Description), txn.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperr.NotFound("product not found: %d", *txn.ProductID)
		}
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction id: %w", err)
	}
	txn.ID = id
	return id, nil
}

// ListTransactions returns the most recent transactions, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, limit int) ([]*models.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.queryTransactions(ctx, "SELECT "+transactionColumns+" ORDER BY id DESC LIMIT ?", limit)
}

// ListTransactionsToday returns transactions created during the local day.
func (s *SQLiteStore) ListTransactionsToday(ctx context.Context) ([]*models.Transaction, error) {
	start, end := s.dayBounds()
	return s.queryTransactions(ctx,
		"SELECT "+transactionColumns+" WHERE created_at >= ? AND created_at < ? ORDER BY created_at DESC, id DESC",
		start, end,
	)
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, transactionID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireAffected(res, "transaction", transactionID)
}

func (s *SQLiteStore) queryTransactions(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		var (
			t           models.Transaction
			productID   sql.NullInt64
			description sql.NullString
		)
		if err := rows.Scan(&t.ID, &productID, &t.Quantity, &t.TotalCents, &description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.ProductID = int64Ptr(productID)
		t.Description = stringPtr(description)
		txns = append(txns, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}
