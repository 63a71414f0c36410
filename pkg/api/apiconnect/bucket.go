package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/pkg/api"
)

// BucketServiceName is the fully-qualified name of the BucketService service.
const BucketServiceName = "pos.v1.BucketService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	BucketServiceListBucketsProcedure     = "/pos.v1.BucketService/ListBuckets"
	BucketServiceCreateBucketProcedure    = "/pos.v1.BucketService/CreateBucket"
	BucketServiceRenameBucketProcedure    = "/pos.v1.BucketService/RenameBucket"
	BucketServiceListBucketItemsProcedure = "/pos.v1.BucketService/ListBucketItems"
	BucketServiceAddItemToBucketProcedure = "/pos.v1.BucketService/AddItemToBucket"
	BucketServiceCloseBucketProcedure     = "/pos.v1.BucketService/CloseBucket"
	BucketServiceDeleteBucketProcedure    = "/pos.v1.BucketService/DeleteBucket"
	BucketServiceCheckoutBucketProcedure  = "/pos.v1.BucketService/CheckoutBucket"
)

// BucketServiceHandler handles open buckets and their settlement.
type BucketServiceHandler interface {
	ListBuckets(context.Context, *connect.Request[api.ListBucketsRequest]) (*connect.Response[api.ListBucketsResponse], error)
	CreateBucket(context.Context, *connect.Request[api.CreateBucketRequest]) (*connect.Response[api.CreateBucketResponse], error)
	RenameBucket(context.Context, *connect.Request[api.RenameBucketRequest]) (*connect.Response[api.RenameBucketResponse], error)
	ListBucketItems(context.Context, *connect.Request[api.ListBucketItemsRequest]) (*connect.Response[api.ListBucketItemsResponse], error)
	AddItemToBucket(context.Context, *connect.Request[api.AddItemToBucketRequest]) (*connect.Response[api.AddItemToBucketResponse], error)
	CloseBucket(context.Context, *connect.Request[api.CloseBucketRequest]) (*connect.Response[api.CloseBucketResponse], error)
	DeleteBucket(context.Context, *connect.Request[api.DeleteBucketRequest]) (*connect.Response[api.DeleteBucketResponse], error)
	CheckoutBucket(context.Context, *connect.Request[api.CheckoutBucketRequest]) (*connect.Response[api.CheckoutBucketResponse], error)
}

// NewBucketServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewBucketServiceHandler(svc BucketServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	listBucketsHandler := connect.NewUnaryHandler(BucketServiceListBucketsProcedure, svc.ListBuckets, opts...)
	createBucketHandler := connect.NewUnaryHandler(BucketServiceCreateBucketProcedure, svc.CreateBucket, opts...)
	renameBucketHandler := connect.NewUnaryHandler(BucketServiceRenameBucketProcedure, svc.RenameBucket, opts...)
	listBucketItemsHandler := connect.NewUnaryHandler(BucketServiceListBucketItemsProcedure, svc.ListBucketItems, opts...)
	addItemToBucketHandler := connect.NewUnaryHandler(BucketServiceAddItemToBucketProcedure, svc.AddItemToBucket, opts...)
	closeBucketHandler := connect.NewUnaryHandler(BucketServiceCloseBucketProcedure, svc.CloseBucket, opts...)
	deleteBucketHandler := connect.NewUnaryHandler(BucketServiceDeleteBucketProcedure, svc.DeleteBucket, opts...)
	checkoutBucketHandler := connect.NewUnaryHandler(BucketServiceCheckoutBucketProcedure, svc.CheckoutBucket, opts...)
	return "/" + BucketServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BucketServiceListBucketsProcedure:
			listBucketsHandler.ServeHTTP(w, r)
		case BucketServiceCreateBucketProcedure:
			createBucketHandler.ServeHTTP(w, r)
		case BucketServiceRenameBucketProcedure:
			renameBucketHandler.ServeHTTP(w, r)
		case BucketServiceListBucketItemsProcedure:
			listBucketItemsHandler.ServeHTTP(w, r)
		case BucketServiceAddItemToBucketProcedure:
			addItemToBucketHandler.ServeHTTP(w, r)
		case BucketServiceCloseBucketProcedure:
			closeBucketHandler.ServeHTTP(w, r)
		case BucketServiceDeleteBucketProcedure:
			deleteBucketHandler.ServeHTTP(w, r)
		case BucketServiceCheckoutBucketProcedure:
			checkoutBucketHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BucketServiceClient is a client for the pos.v1.BucketService service.
type BucketServiceClient interface {
	ListBuckets(context.Context, *connect.Request[api.ListBucketsRequest]) (*connect.Response[api.ListBucketsResponse], error)
	CreateBucket(context.Context, *connect.Request[api.CreateBucketRequest]) (*connect.Response[api.CreateBucketResponse], error)
	RenameBucket(context.Context, *connect.Request[api.RenameBucketRequest]) (*connect.Response[api.RenameBucketResponse], error)
	ListBucketItems(context.Context, *connect.Request[api.ListBucketItemsRequest]) (*connect.Response[api.ListBucketItemsResponse], error)
	AddItemToBucket(context.Context, *connect.Request[api.AddItemToBucketRequest]) (*connect.Response[api.AddItemToBucketResponse], error)
	CloseBucket(context.Context, *connect.Request[api.CloseBucketRequest]) (*connect.Response[api.CloseBucketResponse], error)
	DeleteBucket(context.Context, *connect.Request[api.DeleteBucketRequest]) (*connect.Response[api.DeleteBucketResponse], error)
	CheckoutBucket(context.Context, *connect.Request[api.CheckoutBucketRequest]) (*connect.Response[api.CheckoutBucketResponse], error)
}

// NewBucketServiceClient constructs a client for the pos.v1.BucketService service.
// baseURL is the scheme, host and optional path prefix of the server, e.g. http://localhost:8080.
func NewBucketServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BucketServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithCodec()}, opts...)
	return &bucketServiceClient{
		listBuckets: connect.NewClient[api.ListBucketsRequest, api.ListBucketsResponse](
			httpClient,
			baseURL+BucketServiceListBucketsProcedure,
			opts...,
		),
		createBucket: connect.NewClient[api.CreateBucketRequest, api.CreateBucketResponse](
			httpClient,
			baseURL+BucketServiceCreateBucketProcedure,
			opts...,
		),
		renameBucket: connect.NewClient[api.RenameBucketRequest, api.RenameBucketResponse](
			httpClient,
			baseURL+BucketServiceRenameBucketProcedure,
			opts...,
		),
		listBucketItems: connect.NewClient[api.ListBucketItemsRequest, api.ListBucketItemsResponse](
			httpClient,
			baseURL+BucketServiceListBucketItemsProcedure,
			opts...,
		),
		addItemToBucket: connect.NewClient[api.AddItemToBucketRequest, api.AddItemToBucketResponse](
			httpClient,
			baseURL+BucketServiceAddItemToBucketProcedure,
			opts...,
		),
		closeBucket: connect.NewClient[api.CloseBucketRequest, api.CloseBucketResponse](
			httpClient,
			baseURL+BucketServiceCloseBucketProcedure,
			opts...,
		),
		deleteBucket: connect.NewClient[api.DeleteBucketRequest, api.DeleteBucketResponse](
			httpClient,
			baseURL+BucketServiceDeleteBucketProcedure,
			opts...,
		),
		checkoutBucket: connect.NewClient[api.CheckoutBucketRequest, api.CheckoutBucketResponse](
			httpClient,
			baseURL+BucketServiceCheckoutBucketProcedure,
			opts...,
		),
	}
}

type bucketServiceClient struct {
	listBuckets     *connect.Client[api.ListBucketsRequest, api.ListBucketsResponse]
	createBucket    *connect.Client[api.CreateBucketRequest, api.CreateBucketResponse]
	renameBucket    *connect.Client[api.RenameBucketRequest, api.RenameBucketResponse]
	listBucketItems *connect.Client[api.ListBucketItemsRequest, api.ListBucketItemsResponse]
	addItemToBucket *connect.Client[api.AddItemToBucketRequest, api.AddItemToBucketResponse]
	closeBucket     *connect.Client[api.CloseBucketRequest, api.CloseBucketResponse]
	deleteBucket    *connect.Client[api.DeleteBucketRequest, api.DeleteBucketResponse]
	checkoutBucket  *connect.Client[api.CheckoutBucketRequest, api.CheckoutBucketResponse]
}

func (c *bucketServiceClient) ListBuckets(ctx context.Context, req *connect.Request[api.ListBucketsRequest]) (*connect.Response[api.ListBucketsResponse], error) {
	return c.listBuckets.CallUnary(ctx, req)
}

func (c *bucketServiceClient) CreateBucket(ctx context.Context, req *connect.Request[api.CreateBucketRequest]) (*connect.Response[api.CreateBucketResponse], error) {
	return c.createBucket.CallUnary(ctx, req)
}

func (c *bucketServiceClient) RenameBucket(ctx context.Context, req *connect.Request[api.RenameBucketRequest]) (*connect.Response[api.RenameBucketResponse], error) {
	return c.renameBucket.CallUnary(ctx, req)
}

func (c *bucketServiceClient) ListBucketItems(ctx context.Context, req *connect.Request[api.ListBucketItemsRequest]) (*connect.Response[api.ListBucketItemsResponse], error) {
	return c.listBucketItems.CallUnary(ctx, req)
}

func (c *bucketServiceClient) AddItemToBucket(ctx context.Context, req *connect.Request[api.AddItemToBucketRequest]) (*connect.Response[api.AddItemToBucketResponse], error) {
	return c.addItemToBucket.CallUnary(ctx, req)
}

func (c *bucketServiceClient) CloseBucket(ctx context.Context, req *connect.Request[api.CloseBucketRequest]) (*connect.Response[api.CloseBucketResponse], error) {
	return c.closeBucket.CallUnary(ctx, req)
}

func (c *bucketServiceClient) DeleteBucket(ctx context.Context, req *connect.Request[api.DeleteBucketRequest]) (*connect.Response[api.DeleteBucketResponse], error) {
	return c.deleteBucket.CallUnary(ctx, req)
}

func (c *bucketServiceClient) CheckoutBucket(ctx context.Context, req *connect.Request[api.CheckoutBucketRequest]) (*connect.Response[api.CheckoutBucketResponse], error) {
	return c.checkoutBucket.CallUnary(ctx, req)
}
