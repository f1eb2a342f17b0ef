package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceLineInput una línea de consumo al crear un servicio.
type ServiceLineInput struct {
	ProductID    string          `json:"product_id" validate:"required"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
}

// CreateServiceRequest entrada para registrar un servicio.
// service_date viaja en formato de almacén "YYYY-MM-DD".
type CreateServiceRequest struct {
	ProfessionalName string             `json:"professional_name" validate:"required,max=100"`
	ClientName       string             `json:"client_name" validate:"required,max=100"`
	ServiceName      string             `json:"service_name" validate:"required,max=200"`
	ServiceDate      string             `json:"service_date"`
	Products         []ServiceLineInput `json:"products"`
	// SessionKey identifica el borrador a limpiar tras el envío (opcional).
	SessionKey string `json:"session_key"`
}

// UpdateServiceStatusRequest entrada para la transición de estado.
type UpdateServiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// ServiceLineResponse una línea con su producto resuelto. product es nil
// cuando la referencia quedó colgante; unknown_product lo marca explícito
// para que la UI la pinte distinto en vez de omitirla.
type ServiceLineResponse struct {
	ID             string           `json:"id"`
	ProductID      string           `json:"product_id"`
	QuantityUsed   decimal.Decimal  `json:"quantity_used"`
	Cost           decimal.Decimal  `json:"cost"`
	UnknownProduct bool             `json:"unknown_product"`
	Product        *ProductResponse `json:"product,omitempty"`
}

// ServiceResponse salida de un servicio valorado.
// total_cost es derivado en cada lectura, nunca almacenado.
type ServiceResponse struct {
	ID               string                `json:"id"`
	ProfessionalName string                `json:"professional_name"`
	ClientName       string                `json:"client_name"`
	ServiceName      string                `json:"service_name"`
	ServiceDate      string                `json:"service_date"`
	ServiceDateBR    string                `json:"service_date_br"`
	Status           string                `json:"status"`
	CreatedBy        string                `json:"created_by"`
	TotalCost        decimal.Decimal       `json:"total_cost"`
	Products         []ServiceLineResponse `json:"products"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// Valores de storage en SubmitServiceResponse.
const (
	StorageSynced    = "synced"
	StorageLocalOnly = "local_only"
)

// SubmitServiceResponse resultado del envío con doble escritura.
// storage indica dónde quedó el registro: "synced" (remoto + respaldo) o
// "local_only" (solo la lista de respaldo, el remoto falló).
type SubmitServiceResponse struct {
	Storage string           `json:"storage"`
	Service *ServiceResponse `json:"service,omitempty"`
	LocalID string           `json:"local_id,omitempty"`
	Message string           `json:"message"`
}

// ServiceFilter filtros del listado: estado y término de búsqueda, ambos
// conjuntivos. Término vacío empareja todo.
type ServiceFilter struct {
	Status string `query:"status"`
	Search string `query:"search"`
}
