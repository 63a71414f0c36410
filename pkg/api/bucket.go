package api

type ListBucketsRequest struct{}

type ListBucketsResponse struct {
	Buckets []*Bucket `json:"buckets"`
}

type CreateBucketRequest struct{}

type CreateBucketResponse struct {
	Bucket *Bucket `json:"bucket"`
}

type RenameBucketRequest struct {
	BucketID int64  `json:"bucketId"`
	Name     string `json:"name"`
}

type RenameBucketResponse struct{}

type ListBucketItemsRequest struct {
	BucketID int64 `json:"bucketId"`
}

type ListBucketItemsResponse struct {
	Items []*BucketItem `json:"items"`
}

// AddItemToBucketRequest adds Quantity of a product; values below 1 count as 1.
type AddItemToBucketRequest struct {
	BucketID  int64 `json:"bucketId"`
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type AddItemToBucketResponse struct {
	Bucket *Bucket `json:"bucket"`
}

type CloseBucketRequest struct {
	BucketID int64 `json:"bucketId"`
}

type CloseBucketResponse struct{}

type DeleteBucketRequest struct {
	BucketID int64 `json:"bucketId"`
}

type DeleteBucketResponse struct{}

type CheckoutBucketRequest struct {
	BucketID      int64  `json:"bucketId"`
	MemberID      *int64 `json:"memberId,omitempty"`
	UseBalance    bool   `json:"useBalance"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

type CheckoutBucketResponse struct {
	TransactionID int64  `json:"transactionId"`
	TotalCents    int64  `json:"totalCents"`
	Method        string `json:"method"`
	Description   string `json:"description"`
}
