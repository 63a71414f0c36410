package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/ledger"
	"github.com/mmynk/bucketpos/internal/models"
)

// CheckoutBucket settles an open bucket in a single transaction: the member
// balance is debited when requested, one settlement transaction is
// recorded, and the bucket is emptied and closed. Any failure leaves the
// bucket, the balance and the transaction history untouched.
func (s *SQLiteStore) CheckoutBucket(ctx context.Context, checkout models.Checkout) (*models.CheckoutResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	bucketName, err := lockOpenBucket(ctx, tx, checkout.BucketID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(quantity * price_cents), 0) FROM bucket_items WHERE bucket_id = ?",
		checkout.BucketID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to total bucket: %w", err)
	}
	if total <= 0 {
		return nil, apperr.InvalidState("bucket is empty")
	}

	if checkout.UseBalance {
		if checkout.MemberID == nil {
			return nil, apperr.InvalidInput("member is required to pay by balance")
		}
		if err := s.debitBalance(ctx, tx, *checkout.MemberID, total); err != nil {
			return nil, err
		}
	}

	method := ledger.SettlementMethod(checkout.UseBalance, checkout.PaymentMethod)
	description := ledger.SettlementDescription(bucketName, method)
	now := s.now().Unix()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO transactions (product_id, quantity, total_cents, description, created_at) VALUES (NULL, 1, ?, ?, ?)",
		total, description, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}
	txnID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM bucket_items WHERE bucket_id = ?", checkout.BucketID); err != nil {
		return nil, fmt.Errorf("failed to clear bucket items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE buckets SET status = ?, updated_at = ? WHERE id = ?",
		models.BucketClosed, now, checkout.BucketID,
	); err != nil {
		return nil, fmt.Errorf("failed to close bucket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.CheckoutResult{
		TransactionID: txnID,
		TotalCents:    total,
		Method:        method,
		Description:   description,
	}, nil
}

func (s *SQLiteStore) debitBalance(ctx context.Context, tx *sql.Tx, memberID, total int64) error {
	var balance int64
	err := tx.QueryRowContext(ctx, "SELECT balance_cents FROM members WHERE id = ?", memberID).Scan(&balance)
	if err == sql.ErrNoRows {
		return apperr.NotFound("member not found: %d", memberID)
	}
	if err != nil {
		return fmt.Errorf("failed to get member balance: %w", err)
	}

	if err := s.balancePolicy(balance, total); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE members SET balance_cents = balance_cents - ?, updated_at = ? WHERE id = ?",
		total, s.now().Unix(), memberID,
	); err != nil {
		return fmt.Errorf("failed to debit member balance: %w", err)
	}
	return nil
}
