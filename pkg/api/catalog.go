package api

type ListProductsRequest struct{}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

type SaveProductRequest struct {
	Product *Product `json:"product"`
}

type SaveProductResponse struct {
	ID int64 `json:"id"`
}

type DeleteProductRequest struct {
	ProductID int64 `json:"productId"`
}

type DeleteProductResponse struct{}

type ListProductTypesRequest struct{}

type ListProductTypesResponse struct {
	ProductTypes []*ProductType `json:"productTypes"`
}

type SaveProductTypeRequest struct {
	ProductType *ProductType `json:"productType"`
}

type SaveProductTypeResponse struct {
	ID int64 `json:"id"`
}

type DeleteProductTypeRequest struct {
	ProductTypeID int64 `json:"productTypeId"`
}

type DeleteProductTypeResponse struct{}
