package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/internal/metrics"
	"github.com/mmynk/bucketpos/internal/models"
	"github.com/mmynk/bucketpos/internal/storage"
	"github.com/mmynk/bucketpos/pkg/api"
)

// BucketService implements the Connect BucketService.
type BucketService struct {
	store storage.BucketStore
}

// NewBucketService creates a new BucketService with the given storage backend.
func NewBucketService(store storage.BucketStore) *BucketService {
	return &BucketService{store: store}
}

// ListBuckets returns the open buckets with their aggregates.
func (s *BucketService) ListBuckets(ctx context.Context, req *connect.Request[api.ListBucketsRequest]) (*connect.Response[api.ListBucketsResponse], error) {
	slog.Info("ListBuckets request received")

	buckets, err := s.store.ListBuckets(ctx)
	if err != nil {
		slog.Error("ListBuckets failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListBucketsResponse{Buckets: convertAll(buckets, bucketToAPI)}), nil
}

// CreateBucket opens a new bucket named after the lowest free number.
func (s *BucketService) CreateBucket(ctx context.Context, req *connect.Request[api.CreateBucketRequest]) (*connect.Response[api.CreateBucketResponse], error) {
	slog.Info("CreateBucket request received")

	bucket, err := s.store.CreateBucket(ctx)
	if err != nil {
		slog.Error("CreateBucket failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Bucket created", "bucket_id", bucket.ID, "name", bucket.Name)
	return connect.NewResponse(&api.CreateBucketResponse{Bucket: bucketToAPI(bucket)}), nil
}

func (s *BucketService) RenameBucket(ctx context.Context, req *connect.Request[api.RenameBucketRequest]) (*connect.Response[api.RenameBucketResponse], error) {
	slog.Info("RenameBucket request received", "bucket_id", req.Msg.BucketID, "name", req.Msg.Name)

	if err := s.store.RenameBucket(ctx, req.Msg.BucketID, req.Msg.Name); err != nil {
		slog.Error("RenameBucket failed", "bucket_id", req.Msg.BucketID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RenameBucketResponse{}), nil
}

func (s *BucketService) ListBucketItems(ctx context.Context, req *connect.Request[api.ListBucketItemsRequest]) (*connect.Response[api.ListBucketItemsResponse], error) {
	slog.Info("ListBucketItems request received", "bucket_id", req.Msg.BucketID)

	items, err := s.store.ListBucketItems(ctx, req.Msg.BucketID)
	if err != nil {
		slog.Error("ListBucketItems failed", "bucket_id", req.Msg.BucketID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListBucketItemsResponse{Items: convertAll(items, bucketItemToAPI)}), nil
}

// AddItemToBucket merges the product into the bucket and returns the
// bucket with refreshed aggregates.
func (s *BucketService) AddItemToBucket(ctx context.Context, req *connect.Request[api.AddItemToBucketRequest]) (*connect.Response[api.AddItemToBucketResponse], error) {
	slog.Info("AddItemToBucket request received",
		"bucket_id", req.Msg.BucketID,
		"product_id", req.Msg.ProductID,
		"quantity", req.Msg.Quantity,
	)

	if err := s.store.AddItemToBucket(ctx, req.Msg.BucketID, req.Msg.ProductID, req.Msg.Quantity); err != nil {
		slog.Error("AddItemToBucket failed", "bucket_id", req.Msg.BucketID, "error", err)
		return nil, toConnectError(err)
	}

	bucket, err := s.store.GetBucket(ctx, req.Msg.BucketID)
	if err != nil {
		slog.Error("Failed to fetch updated bucket", "bucket_id", req.Msg.BucketID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddItemToBucketResponse{Bucket: bucketToAPI(bucket)}), nil
}

// CloseBucket voids a bucket without recording a sale.
func (s *BucketService) CloseBucket(ctx context.Context, req *connect.Request[api.CloseBucketRequest]) (*connect.Response[api.CloseBucketResponse], error) {
	slog.Info("CloseBucket request received", "bucket_id", req.Msg.BucketID)

	if err := s.store.CloseBucket(ctx, req.Msg.BucketID); err != nil {
		slog.Error("CloseBucket failed", "bucket_id", req.Msg.BucketID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Bucket closed", "bucket_id", req.Msg.BucketID)
	return connect.NewResponse(&api.CloseBucketResponse{}), nil
}

func (s *BucketService) DeleteBucket(ctx context.Context, req *connect.Request[api.DeleteBucketRequest]) (*connect.Response[api.DeleteBucketResponse], error) {
	slog.Info("DeleteBucket request received", "bucket_id", req.Msg.BucketID)

	if err := s.store.DeleteBucket(ctx, req.Msg.BucketID); err != nil {
		slog.Error("DeleteBucket failed", "bucket_id", req.Msg.BucketID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Bucket deleted", "bucket_id", req.Msg.BucketID)
	return connect.NewResponse(&api.DeleteBucketResponse{}), nil
}

// CheckoutBucket settles the bucket in one store transaction.
func (s *BucketService) CheckoutBucket(ctx context.Context, req *connect.Request[api.CheckoutBucketRequest]) (*connect.Response[api.CheckoutBucketResponse], error) {
	slog.Info("CheckoutBucket request received",
		"bucket_id", req.Msg.BucketID,
		"member_id", req.Msg.MemberID,
		"use_balance", req.Msg.UseBalance,
		"payment_method", req.Msg.PaymentMethod,
	)

	result, err := s.store.CheckoutBucket(ctx, models.Checkout{
		BucketID:      req.Msg.BucketID,
		MemberID:      req.Msg.MemberID,
		UseBalance:    req.Msg.UseBalance,
		PaymentMethod: req.Msg.PaymentMethod,
	})
	if err != nil {
		slog.Error("CheckoutBucket failed", "bucket_id", req.Msg.BucketID, "error", err)
		return nil, toConnectError(err)
	}

	metrics.RecordCheckout(result.Method, result.TotalCents)
	slog.Info("Bucket settled",
		"bucket_id", req.Msg.BucketID,
		"transaction_id", result.TransactionID,
		"total_cents", result.TotalCents,
		"method", result.Method,
	)

	return connect.NewResponse(&api.CheckoutBucketResponse{
		TransactionID: result.TransactionID,
		TotalCents:    result.TotalCents,
		Method:        result.Method,
		Description:   result.Description,
	}), nil
}
