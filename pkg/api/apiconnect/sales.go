package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/pkg/api"
)

// SalesServiceName is the fully-qualified name of the SalesService service.
const SalesServiceName = "pos.v1.SalesService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	SalesServiceRecordTransactionProcedure     = "/pos.v1.SalesService/RecordTransaction"
	SalesServiceListTransactionsProcedure      = "/pos.v1.SalesService/ListTransactions"
	SalesServiceListTransactionsTodayProcedure = "/pos.v1.SalesService/ListTransactionsToday"
	SalesServiceDeleteTransactionProcedure     = "/pos.v1.SalesService/DeleteTransaction"
)

// SalesServiceHandler records and lists sale transactions.
type SalesServiceHandler interface {
	RecordTransaction(context.Context, *connect.Request[api.RecordTransactionRequest]) (*connect.Response[api.RecordTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	ListTransactionsToday(context.Context, *connect.Request[api.ListTransactionsTodayRequest]) (*connect.Response[api.ListTransactionsTodayResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
}

// NewSalesServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewSalesServiceHandler(svc SalesServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	recordTransactionHandler := connect.NewUnaryHandler(SalesServiceRecordTransactionProcedure, svc.RecordTransaction, opts...)
	listTransactionsHandler := connect.NewUnaryHandler(SalesServiceListTransactionsProcedure, svc.ListTransactions, opts...)
	listTransactionsTodayHandler := connect.NewUnaryHandler(SalesServiceListTransactionsTodayProcedure, svc.ListTransactionsToday, opts...)
	deleteTransactionHandler := connect.NewUnaryHandler(SalesServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...)
	return "/" + SalesServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SalesServiceRecordTransactionProcedure:
			recordTransactionHandler.ServeHTTP(w, r)
		case SalesServiceListTransactionsProcedure:
			listTransactionsHandler.ServeHTTP(w, r)
		case SalesServiceListTransactionsTodayProcedure:
			listTransactionsTodayHandler.ServeHTTP(w, r)
		case SalesServiceDeleteTransactionProcedure:
			deleteTransactionHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SalesServiceClient is a client for the pos.v1.SalesService service.
type SalesServiceClient interface {
	RecordTransaction(context.Context, *connect.Request[api.RecordTransactionRequest]) (*connect.Response[api.RecordTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	ListTransactionsToday(context.Context, *connect.Request[api.ListTransactionsTodayRequest]) (*connect.Response[api.ListTransactionsTodayResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
}

// NewSalesServiceClient constructs a client for the pos.v1.SalesService service.
// baseURL is the scheme, host and optional path prefix of the server, e.g. http://localhost:8080.
func NewSalesServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SalesServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithCodec()}, opts...)
	return &salesServiceClient{
		recordTransaction: connect.NewClient[api.RecordTransactionRequest, api.RecordTransactionResponse](
			httpClient,
			baseURL+SalesServiceRecordTransactionProcedure,
			opts...,
		),
		listTransactions: connect.NewClient[api.ListTransactionsRequest, api.ListTransactionsResponse](
			httpClient,
			baseURL+SalesServiceListTransactionsProcedure,
			opts...,
		),
		listTransactionsToday: connect.NewClient[api.ListTransactionsTodayRequest, api.ListTransactionsTodayResponse](
			httpClient,
			baseURL+SalesServiceListTransactionsTodayProcedure,
			opts...,
		),
		deleteTransaction: connect.NewClient[api.DeleteTransactionRequest, api.DeleteTransactionResponse](
			httpClient,
			baseURL+SalesServiceDeleteTransactionProcedure,
			opts...,
		),
	}
}

type salesServiceClient struct {
	recordTransaction     *connect.Client[api.RecordTransactionRequest, api.RecordTransactionResponse]
	listTransactions      *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
	listTransactionsToday *connect.Client[api.ListTransactionsTodayRequest, api.ListTransactionsTodayResponse]
	deleteTransaction     *connect.Client[api.DeleteTransactionRequest, api.DeleteTransactionResponse]
}

func (c *salesServiceClient) RecordTransaction(ctx context.Context, req *connect.Request[api.RecordTransactionRequest]) (*connect.Response[api.RecordTransactionResponse], error) {
	return c.recordTransaction.CallUnary(ctx, req)
}

func (c *salesServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *salesServiceClient) ListTransactionsToday(ctx context.Context, req *connect.Request[api.ListTransactionsTodayRequest]) (*connect.Response[api.ListTransactionsTodayResponse], error) {
	return c.listTransactionsToday.CallUnary(ctx, req)
}

func (c *salesServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}
