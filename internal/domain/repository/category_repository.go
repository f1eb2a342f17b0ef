package repository

import "github.com/nmendes/servicos-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// List devuelve el catálogo completo en orden alfabético: las vistas se
// refrescan por invalidación de colección, no por parches incrementales.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Delete(id string) error
}
