package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/internal/models"
	"github.com/mmynk/bucketpos/internal/storage"
	"github.com/mmynk/bucketpos/pkg/api"
)

// defaultTransactionLimit is how many transactions ListTransactions returns
// when the request leaves the limit unset.
const defaultTransactionLimit = 50

// SalesService implements the Connect SalesService.
type SalesService struct {
	store storage.SalesStore
}

func NewSalesService(store storage.SalesStore) *SalesService {
	return &SalesService{store: store}
}

// RecordTransaction appends a direct sale that did not go through a bucket.
func (s *SalesService) RecordTransaction(ctx context.Context, req *connect.Request[api.RecordTransactionRequest]) (*connect.Response[api.RecordTransactionResponse], error) {
	slog.Info("RecordTransaction request received",
		"product_id", req.Msg.ProductID,
		"quantity", req.Msg.Quantity,
		"total_cents", req.Msg.TotalCents,
	)

	id, err := s.store.RecordTransaction(ctx, &models.Transaction{
		ProductID:   req.Msg.ProductID,
		Quantity:    req.Msg.Quantity,
		TotalCents:  req.Msg.TotalCents,
		Description: req.Msg.Description,
	})
	if err != nil {
		slog.Error("RecordTransaction failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RecordTransactionResponse{ID: id}), nil
}

func (s *SalesService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	limit := int(req.Msg.Limit)
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	slog.Info("ListTransactions request received", "limit", limit)

	txns, err := s.store.ListTransactions(ctx, limit)
	if err != nil {
		slog.Error("ListTransactions failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: convertAll(txns, transactionToAPI)}), nil
}

func (s *SalesService) ListTransactionsToday(ctx context.Context, req *connect.Request[api.ListTransactionsTodayRequest]) (*connect.Response[api.ListTransactionsTodayResponse], error) {
	slog.Info("ListTransactionsToday request received")

	txns, err := s.store.ListTransactionsToday(ctx)
	if err != nil {
		slog.Error("ListTransactionsToday failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListTransactionsTodayResponse{Transactions: convertAll(txns, transactionToAPI)}), nil
}

func (s *SalesService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	slog.Info("DeleteTransaction request received", "transaction_id", req.Msg.TransactionID)

	if err := s.store.DeleteTransaction(ctx, req.Msg.TransactionID); err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", req.Msg.TransactionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}
