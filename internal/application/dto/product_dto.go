package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// unit_cost no se recibe: siempre se deriva de purchase_price / package_quantity.
type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID      string          `json:"category_id" validate:"required"`
	BrandID         string          `json:"brand_id" validate:"required"`
	Barcode         string          `json:"barcode"`
	SKU             string          `json:"sku"`
	PackageQuantity decimal.Decimal `json:"package_quantity"`
	Unit            string          `json:"unit"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	ImageURL        string          `json:"image_url"`
}

// UpdateProductRequest entrada para actualizar un producto. Si cambia
// purchase_price o package_quantity el caso de uso recalcula unit_cost;
// nunca se acepta un unit_cost suelto.
type UpdateProductRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID      *string          `json:"category_id"`
	BrandID         *string          `json:"brand_id"`
	Barcode         *string          `json:"barcode"`
	SKU             *string          `json:"sku"`
	PackageQuantity *decimal.Decimal `json:"package_quantity"`
	Unit            *string          `json:"unit"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price"`
	ImageURL        *string          `json:"image_url"`
}

// ProductResponse salida de un producto con sus relaciones.
type ProductResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	CategoryID      string            `json:"category_id"`
	BrandID         string            `json:"brand_id"`
	Barcode         string            `json:"barcode,omitempty"`
	SKU             string            `json:"sku,omitempty"`
	PackageQuantity decimal.Decimal   `json:"package_quantity"`
	Unit            string            `json:"unit"`
	PurchasePrice   decimal.Decimal   `json:"purchase_price"`
	UnitCost        decimal.Decimal   `json:"unit_cost"`
	ImageURL        string            `json:"image_url,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Category        *CategoryResponse `json:"category,omitempty"`
	Brand           *BrandResponse    `json:"brand,omitempty"`
}
