package repository

import "github.com/nmendes/servicos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas cargan categoría y marca en el mismo viaje (join ansioso);
// la UI nunca debe emitir N+1 consultas para pintar la lista.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List() ([]*entity.Product, error)
	Delete(id string) error
}
