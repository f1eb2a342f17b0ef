package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceProduct es una línea de consumo dentro de un servicio
// (tabla service_products): producto y cantidad usada en gramos.
type ServiceProduct struct {
	ID           string
	ServiceID    string
	ProductID    string
	QuantityUsed decimal.Decimal
	CreatedAt    time.Time

	// Product es la relación cargada por el gateway. Puede quedar nil si el
	// producto fue eliminado después de referenciarse: la línea se conserva
	// y se presenta como producto desconocido, nunca se descarta.
	Product *Product
}

// Dangling indica que la referencia al producto ya no resuelve.
func (sp *ServiceProduct) Dangling() bool { return sp.Product == nil }

// Cost devuelve quantity_used × unit_cost vigente. Una línea colgante
// aporta cero al total pero sigue contando como línea.
func (sp *ServiceProduct) Cost() decimal.Decimal {
	if sp.Product == nil {
		return decimal.Zero
	}
	return sp.QuantityUsed.Mul(sp.Product.UnitCost)
}
