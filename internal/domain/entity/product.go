package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario del salón (tabla products).
// PackageQuantity está en la unidad declarada (gramos por defecto) y
// UnitCost es el costo por gramo: PurchasePrice / PackageQuantity.
type Product struct {
	ID              string
	Name            string
	CategoryID      string
	BrandID         string
	Barcode         string // opcional
	SKU             string // opcional
	PackageQuantity decimal.Decimal
	Unit            string          // g, ml, kg, l, unidade, pacote, caixa
	PurchasePrice   decimal.Decimal // precio de compra del paquete
	UnitCost        decimal.Decimal // derivado; ver ComputeUnitCost
	ImageURL        string          // URL o data URI
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relaciones cargadas por el gateway (join ansioso; nil si no cargadas).
	Category *Category
	Brand    *Brand
}

// ComputeUnitCost calcula el costo por unidad de medida. Debe invocarse cada
// vez que cambie PurchasePrice o PackageQuantity: los dos campos solo se
// escriben juntos, si no UnitCost queda obsoleto.
func ComputeUnitCost(purchasePrice, packageQuantity decimal.Decimal) decimal.Decimal {
	if packageQuantity.IsZero() {
		return decimal.Zero
	}
	return purchasePrice.Div(packageQuantity)
}

// RecomputeUnitCost fija UnitCost a partir de los valores actuales.
func (p *Product) RecomputeUnitCost() {
	p.UnitCost = ComputeUnitCost(p.PurchasePrice, p.PackageQuantity)
}
