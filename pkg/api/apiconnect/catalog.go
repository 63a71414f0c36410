package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/pkg/api"
)

// CatalogServiceName is the fully-qualified name of the CatalogService service.
const CatalogServiceName = "pos.v1.CatalogService"

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	CatalogServiceListProductsProcedure      = "/pos.v1.CatalogService/ListProducts"
	CatalogServiceSaveProductProcedure       = "/pos.v1.CatalogService/SaveProduct"
	CatalogServiceDeleteProductProcedure     = "/pos.v1.CatalogService/DeleteProduct"
	CatalogServiceListProductTypesProcedure  = "/pos.v1.CatalogService/ListProductTypes"
	CatalogServiceSaveProductTypeProcedure   = "/pos.v1.CatalogService/SaveProductType"
	CatalogServiceDeleteProductTypeProcedure = "/pos.v1.CatalogService/DeleteProductType"
)

// CatalogServiceHandler manages products and product types.
type CatalogServiceHandler interface {
	ListProducts(context.Context, *connect.Request[api.ListProductsRequest]) (*connect.Response[api.ListProductsResponse], error)
	SaveProduct(context.Context, *connect.Request[api.SaveProductRequest]) (*connect.Response[api.SaveProductResponse], error)
	DeleteProduct(context.Context, *connect.Request[api.DeleteProductRequest]) (*connect.Response[api.DeleteProductResponse], error)
	ListProductTypes(context.Context, *connect.Request[api.ListProductTypesRequest]) (*connect.Response[api.ListProductTypesResponse], error)
	SaveProductType(context.Context, *connect.Request[api.SaveProductTypeRequest]) (*connect.Response[api.SaveProductTypeResponse], error)
	DeleteProductType(context.Context, *connect.Request[api.DeleteProductTypeRequest]) (*connect.Response[api.DeleteProductTypeResponse], error)
}

// NewCatalogServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	listProductsHandler := connect.NewUnaryHandler(CatalogServiceListProductsProcedure, svc.ListProducts, opts...)
	saveProductHandler := connect.NewUnaryHandler(CatalogServiceSaveProductProcedure, svc.SaveProduct, opts...)
	deleteProductHandler := connect.NewUnaryHandler(CatalogServiceDeleteProductProcedure, svc.DeleteProduct, opts...)
	listProductTypesHandler := connect.NewUnaryHandler(CatalogServiceListProductTypesProcedure, svc.ListProductTypes, opts...)
	saveProductTypeHandler := connect.NewUnaryHandler(CatalogServiceSaveProductTypeProcedure, svc.SaveProductType, opts...)
	deleteProductTypeHandler := connect.NewUnaryHandler(CatalogServiceDeleteProductTypeProcedure, svc.DeleteProductType, opts...)
	return "/" + CatalogServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case CatalogServiceListProductsProcedure:
			listProductsHandler.ServeHTTP(w, r)
		case CatalogServiceSaveProductProcedure:
			saveProductHandler.ServeHTTP(w, r)
		case CatalogServiceDeleteProductProcedure:
			deleteProductHandler.ServeHTTP(w, r)
		case CatalogServiceListProductTypesProcedure:
			listProductTypesHandler.ServeHTTP(w, r)
		case CatalogServiceSaveProductTypeProcedure:
			saveProductTypeHandler.ServeHTTP(w, r)
		case CatalogServiceDeleteProductTypeProcedure:
			deleteProductTypeHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// CatalogServiceClient is a client for the pos.v1.CatalogService service.
type CatalogServiceClient interface {
	ListProducts(context.Context, *connect.Request[api.ListProductsRequest]) (*connect.Response[api.ListProductsResponse], error)
	SaveProduct(context.Context, *connect.Request[api.SaveProductRequest]) (*connect.Response[api.SaveProductResponse], error)
	DeleteProduct(context.Context, *connect.Request[api.DeleteProductRequest]) (*connect.Response[api.DeleteProductResponse], error)
	ListProductTypes(context.Context, *connect.Request[api.ListProductTypesRequest]) (*connect.Response[api.ListProductTypesResponse], error)
	SaveProductType(context.Context, *connect.Request[api.SaveProductTypeRequest]) (*connect.Response[api.SaveProductTypeResponse], error)
	DeleteProductType(context.Context, *connect.Request[api.DeleteProductTypeRequest]) (*connect.Response[api.DeleteProductTypeResponse], error)
}

// NewCatalogServiceClient constructs a client for the pos.v1.CatalogService service.
// baseURL is the scheme, host and optional path prefix of the server, e.g. http://localhost:8080.
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CatalogServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{api.WithCodec()}, opts...)
	return &catalogServiceClient{
		listProducts: connect.NewClient[api.ListProductsRequest, api.ListProductsResponse](
			httpClient,
			baseURL+CatalogServiceListProductsProcedure,
			opts...,
		),
		saveProduct: connect.NewClient[api.SaveProductRequest, api.SaveProductResponse](
			httpClient,
			baseURL+CatalogServiceSaveProductProcedure,
			opts...,
		),
		deleteProduct: connect.NewClient[api.DeleteProductRequest, api.DeleteProductResponse](
			httpClient,
			baseURL+CatalogServiceDeleteProductProcedure,
			opts...,
		),
		listProductTypes: connect.NewClient[api.ListProductTypesRequest, api.ListProductTypesResponse](
			httpClient,
			baseURL+CatalogServiceListProductTypesProcedure,
			opts...,
		),
		saveProductType: connect.NewClient[api.SaveProductTypeRequest, api.SaveProductTypeResponse](
			httpClient,
			baseURL+CatalogServiceSaveProductTypeProcedure,
			opts...,
		),
		deleteProductType: connect.NewClient[api.DeleteProductTypeRequest, api.DeleteProductTypeResponse](
			httpClient,
			baseURL+CatalogServiceDeleteProductTypeProcedure,
			opts...,
		),
	}
}

type catalogServiceClient struct {
	listProducts      *connect.Client[api.ListProductsRequest, api.ListProductsResponse]
	saveProduct       *connect.Client[api.SaveProductRequest, api.SaveProductResponse]
	deleteProduct     *connect.Client[api.DeleteProductRequest, api.DeleteProductResponse]
	listProductTypes  *connect.Client[api.ListProductTypesRequest, api.ListProductTypesResponse]
	saveProductType   *connect.Client[api.SaveProductTypeRequest, api.SaveProductTypeResponse]
	deleteProductType *connect.Client[api.DeleteProductTypeRequest, api.DeleteProductTypeResponse]
}

func (c *catalogServiceClient) ListProducts(ctx context.Context, req *connect.Request[api.ListProductsRequest]) (*connect.Response[api.ListProductsResponse], error) {
	return c.listProducts.CallUnary(ctx, req)
}

func (c *catalogServiceClient) SaveProduct(ctx context.Context, req *connect.Request[api.SaveProductRequest]) (*connect.Response[api.SaveProductResponse], error) {
	return c.saveProduct.CallUnary(ctx, req)
}

func (c *catalogServiceClient) DeleteProduct(ctx context.Context, req *connect.Request[api.DeleteProductRequest]) (*connect.Response[api.DeleteProductResponse], error) {
	return c.deleteProduct.CallUnary(ctx, req)
}

func (c *catalogServiceClient) ListProductTypes(ctx context.Context, req *connect.Request[api.ListProductTypesRequest]) (*connect.Response[api.ListProductTypesResponse], error) {
	return c.listProductTypes.CallUnary(ctx, req)
}

func (c *catalogServiceClient) SaveProductType(ctx context.Context, req *connect.Request[api.SaveProductTypeRequest]) (*connect.Response[api.SaveProductTypeResponse], error) {
	return c.saveProductType.CallUnary(ctx, req)
}

func (c *catalogServiceClient) DeleteProductType(ctx context.Context, req *connect.Request[api.DeleteProductTypeRequest]) (*connect.Response[api.DeleteProductTypeResponse], error) {
	return c.deleteProductType.CallUnary(ctx, req)
}
