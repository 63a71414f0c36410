package api

type RecordTransactionRequest struct {
	ProductID   *int64  `json:"productId,omitempty"`
	Quantity    int64   `json:"quantity"`
	TotalCents  int64   `json:"totalCents"`
	Description *string `json:"description,omitempty"`
}

type RecordTransactionResponse struct {
	ID int64 `json:"id"`
}

// ListTransactionsRequest returns the latest Limit transactions; 0 means 50.
type ListTransactionsRequest struct {
	Limit int32 `json:"limit,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type ListTransactionsTodayRequest struct{}

type ListTransactionsTodayResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type DeleteTransactionRequest struct {
	TransactionID int64 `json:"transactionId"`
}

type DeleteTransactionResponse struct{}
