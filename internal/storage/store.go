// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/bucketpos/internal/models"
)

// ProductReader is the catalog lookup the bucket engine depends on.
type ProductReader interface {
	// GetProduct returns the product or an apperr NotFound.
	GetProduct(ctx context.Context, productID int64) (*models.Product, error)
}

// CatalogStore persists products and product types.
type CatalogStore interface {
	ProductReader
	ListProducts(ctx context.Context) ([]*models.Product, error)
	// SaveProduct inserts when product.ID is 0, otherwise updates. It returns the ID.
	SaveProduct(ctx context.Context, product *models.Product) (int64, error)
	DeleteProduct(ctx context.Context, productID int64) error

	ListProductTypes(ctx context.Context) ([]*models.ProductType, error)
	SaveProductType(ctx context.Context, productType *models.ProductType) (int64, error)
	DeleteProductType(ctx context.Context, productTypeID int64) error
}

// BucketStore owns the open-order lifecycle and checkout settlement.
type BucketStore interface {
	// ListBuckets returns open buckets, oldest first, with item aggregates.
	ListBuckets(ctx context.Context) ([]*models.Bucket, error)
	GetBucket(ctx context.Context, bucketID int64) (*models.Bucket, error)
	// CreateBucket allocates a new open bucket with a generated name.
	CreateBucket(ctx context.Context) (*models.Bucket, error)
	RenameBucket(ctx context.Context, bucketID int64, name string) error
	ListBucketItems(ctx context.Context, bucketID int64) ([]*models.BucketItem, error)
	// AddItemToBucket merges quantity into the bucket's line for the product.
	AddItemToBucket(ctx context.Context, bucketID, productID, quantity int64) error
	// CloseBucket voids a bucket: it is marked closed and its items discarded.
	CloseBucket(ctx context.Context, bucketID int64) error
	DeleteBucket(ctx context.Context, bucketID int64) error
	// CheckoutBucket settles a bucket atomically.
	CheckoutBucket(ctx context.Context, checkout models.Checkout) (*models.CheckoutResult, error)
}

// SalesStore persists the transaction history.
type SalesStore interface {
	RecordTransaction(ctx context.Context, txn *models.Transaction) (int64, error)
	ListTransactions(ctx context.Context, limit int) ([]*models.Transaction, error)
	ListTransactionsToday(ctx context.Context) ([]*models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID int64) error
}

// MemberStore persists members and membership templates.
type MemberStore interface {
	ListMembers(ctx context.Context) ([]*models.Member, error)
	GetMember(ctx context.Context, memberID int64) (*models.Member, error)
	SaveMember(ctx context.Context, member *models.Member) (int64, error)
	DeleteMember(ctx context.Context, memberID int64) error

	ListMemberships(ctx context.Context) ([]*models.Membership, error)
	SaveMembership(ctx context.Context, membership *models.Membership) (int64, error)
	DeleteMembership(ctx context.Context, membershipID int64) error
}

// LedgerStore owns entitlements and check-ins.
type LedgerStore interface {
	// ListMemberMemberships lists entitlements; memberID 0 lists all.
	ListMemberMemberships(ctx context.Context, memberID int64) ([]*models.MemberMembership, error)
	AssignMembership(ctx context.Context, memberID, membershipID int64) (int64, error)
	DeleteMemberMembership(ctx context.Context, memberMembershipID int64) error

	// CheckIn consumes one use from the member's best entitlement.
	CheckIn(ctx context.Context, memberID int64) (*models.CheckIn, error)
	// DeleteCheckIn reverses a check-in and restores the consumed use.
	DeleteCheckIn(ctx context.Context, checkInID int64) error
	ListCheckInsToday(ctx context.Context) ([]*models.CheckIn, error)
}

// UserStore persists staff accounts.
type UserStore interface {
	ListRoles(ctx context.Context) ([]*models.Role, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	// GetUserByUsername returns the user including its password hash.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// SaveUser keeps the stored hash when user.PasswordHash is empty on update.
	SaveUser(ctx context.Context, user *models.User) (int64, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// Store defines the full persistence surface.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	CatalogStore
	BucketStore
	SalesStore
	MemberStore
	LedgerStore
	UserStore

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases any resources held by the store.
	Close() error
}
