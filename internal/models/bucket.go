package models

// BucketStatus is the lifecycle state of a bucket. The only transition is
// open -> closed; closed is terminal.
type BucketStatus string

const (
	BucketOpen   BucketStatus = "open"
	BucketClosed BucketStatus = "closed"
)

// Bucket is an open tab that collects items until it is settled or voided.
type Bucket struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Status    BucketStatus `json:"status"`
	CreatedAt int64        `json:"createdAt"`
	UpdatedAt int64        `json:"updatedAt"`

	// ItemCount and TotalCents are aggregates over the bucket's lines,
	// populated by listings. They are 0 for an empty bucket.
	ItemCount  int64 `json:"itemCount"`
	TotalCents int64 `json:"totalCents"`
}

// BucketItem is one product line in a bucket. PriceCents and ProductName are
// snapshots taken at the last add, not live references to the product.
type BucketItem struct {
	ID             int64   `json:"id"`
	BucketID       int64   `json:"bucketId"`
	ProductID      int64   `json:"productId"`
	ProductName    string  `json:"productName"`
	Quantity       int64   `json:"quantity"`
	PriceCents     int64   `json:"priceCents"`
	LineTotalCents int64   `json:"lineTotalCents"`
	Accent         *string `json:"accent,omitempty"`
	Icon           *string `json:"icon,omitempty"`
	Note           *string `json:"note,omitempty"`
}

// Checkout describes a settlement request for one bucket.
type Checkout struct {
	BucketID      int64
	MemberID      *int64
	UseBalance    bool
	PaymentMethod string
}

// CheckoutResult is the outcome of a committed settlement.
type CheckoutResult struct {
	TransactionID int64  `json:"transactionId"`
	TotalCents    int64  `json:"totalCents"`
	Method        string `json:"method"`
	Description   string `json:"description"`
}
