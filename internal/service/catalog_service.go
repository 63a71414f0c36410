package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/internal/storage"
	"github.com/mmynk/bucketpos/pkg/api"
)

// CatalogService implements the Connect CatalogService.
type CatalogService struct {
	store storage.CatalogStore
}

func NewCatalogService(store storage.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListProducts(ctx context.Context, req *connect.Request[api.ListProductsRequest]) (*connect.Response[api.ListProductsResponse], error) {
	slog.Info("ListProducts request received")

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		slog.Error("ListProducts failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListProductsResponse{Products: convertAll(products, productToAPI)}), nil
}

// SaveProduct inserts when the product has no ID, otherwise updates it.
func (s *CatalogService) SaveProduct(ctx context.Context, req *connect.Request[api.SaveProductRequest]) (*connect.Response[api.SaveProductResponse], error) {
	if req.Msg.Product == nil {
		return nil, required("product")
	}
	slog.Info("SaveProduct request received", "product_id", req.Msg.Product.ID, "name", req.Msg.Product.Name)

	id, err := s.store.SaveProduct(ctx, productFromAPI(req.Msg.Product))
	if err != nil {
		slog.Error("SaveProduct failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SaveProductResponse{ID: id}), nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, req *connect.Request[api.DeleteProductRequest]) (*connect.Response[api.DeleteProductResponse], error) {
	slog.Info("DeleteProduct request received", "product_id", req.Msg.ProductID)

	if err := s.store.DeleteProduct(ctx, req.Msg.ProductID); err != nil {
		slog.Error("DeleteProduct failed", "product_id", req.Msg.ProductID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteProductResponse{}), nil
}

func (s *CatalogService) ListProductTypes(ctx context.Context, req *connect.Request[api.ListProductTypesRequest]) (*connect.Response[api.ListProductTypesResponse], error) {
	slog.Info("ListProductTypes request received")

	types, err := s.store.ListProductTypes(ctx)
	if err != nil {
		slog.Error("ListProductTypes failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListProductTypesResponse{ProductTypes: convertAll(types, productTypeToAPI)}), nil
}

func (s *CatalogService) SaveProductType(ctx context.Context, req *connect.Request[api.SaveProductTypeRequest]) (*connect.Response[api.SaveProductTypeResponse], error) {
	if req.Msg.ProductType == nil {
		return nil, required("product type")
	}
	slog.Info("SaveProductType request received", "product_type_id", req.Msg.ProductType.ID, "name", req.Msg.ProductType.Name)

	id, err := s.store.SaveProductType(ctx, productTypeFromAPI(req.Msg.ProductType))
	if err != nil {
		slog.Error("SaveProductType failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SaveProductTypeResponse{ID: id}), nil
}

func (s *CatalogService) DeleteProductType(ctx context.Context, req *connect.Request[api.DeleteProductTypeRequest]) (*connect.Response[api.DeleteProductTypeResponse], error) {
	slog.Info("DeleteProductType request received", "product_type_id", req.Msg.ProductTypeID)

	if err := s.store.DeleteProductType(ctx, req.Msg.ProductTypeID); err != nil {
		slog.Error("DeleteProductType failed", "product_type_id", req.Msg.ProductTypeID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteProductTypeResponse{}), nil
}
