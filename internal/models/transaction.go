package models

// Transaction is an append-only sale record. Bucket settlements have a nil
// ProductID and carry only a description and the aggregate total.
type Transaction struct {
	ID          int64   `json:"id"`
	ProductID   *int64  `json:"productId,omitempty"`
	Quantity    int64   `json:"quantity"`
	TotalCents  int64   `json:"totalCents"`
	Description *string `json:"description,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
}
