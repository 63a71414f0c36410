package models

// Product is a sellable catalog entry.
type Product struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	PriceCents      int64   `json:"priceCents"`
	Accent          *string `json:"accent,omitempty"`
	Icon            *string `json:"icon,omitempty"`
	Note            *string `json:"note,omitempty"`
	ProductTypeID   *int64  `json:"productTypeId,omitempty"`
	ProductTypeName *string `json:"productTypeName,omitempty"`
}

// ProductType groups products for display.
type ProductType struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Color     *string `json:"color,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}
