package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/bucketpos/internal/models"
)

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local) }
	return NewWithDB(db, WithClock(clock)), mock
}

func TestCheckoutBucketRollsBackOnInsertFailure(t *testing.T) {
	store, mock := newMockStore(t)
	memberID := int64(7)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT name, status FROM buckets WHERE id = \?`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"name", "status"}).AddRow("Bucket 1", "open"))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity \* price_cents\), 0\) FROM bucket_items`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1900))
	mock.ExpectQuery(`SELECT balance_cents FROM members WHERE id = \?`).
		WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows([]string{"balance_cents"}).AddRow(5000))
	mock.ExpectExec(`UPDATE members SET balance_cents = balance_cents - \?`).
		WithArgs(1900, sqlmock.AnyArg(), memberID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO transactions`).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err := store.CheckoutBucket(context.Background(), models.Checkout{
		BucketID:   1,
		MemberID:   &memberID,
		UseBalance: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record settlement")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutBucketCommitsAllWrites(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT name, status FROM buckets WHERE id = \?`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"name", "status"}).AddRow("Terrasse", "open"))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity \* price_cents\), 0\) FROM bucket_items`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(640))
	mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(640, "Terrasse paid (Card)", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(`DELETE FROM bucket_items WHERE bucket_id = \?`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE buckets SET status = \?`).
		WithArgs("closed", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := store.CheckoutBucket(context.Background(), models.Checkout{BucketID: 3, PaymentMethod: "Card"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.TransactionID)
	assert.Equal(t, int64(640), result.TotalCents)
	assert.Equal(t, "Card", result.Method)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutBucketRejectsClosedBucketWithoutWrites(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT name, status FROM buckets WHERE id = \?`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"name", "status"}).AddRow("Bucket 5", "closed"))
	mock.ExpectRollback()

	_, err := store.CheckoutBucket(context.Background(), models.Checkout{BucketID: 5})
	require.Error(t, err)
	assert.Equal(t, "bucket is not open", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
