package repository

import "github.com/nmendes/servicos-api/internal/domain/entity"

// ServiceRepository define el puerto de persistencia para Service (DIP).
// List carga las líneas con producto→categoría/marca en un solo viaje,
// con LEFT JOIN para que una referencia colgante sobreviva como línea sin
// producto. Orden: created_at descendente.
type ServiceRepository interface {
	Create(service *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	UpdateStatus(id, status string) error
	List() ([]*entity.Service, error)
}

// ServiceProductRepository persiste líneas de consumo de un servicio.
type ServiceProductRepository interface {
	CreateBatch(items []*entity.ServiceProduct) error
}
