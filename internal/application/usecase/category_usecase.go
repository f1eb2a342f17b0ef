package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
)

// CategoryUseCase casos de uso del catálogo de categorías (solo admin).
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El chequeo por nombre es optimista: bajo
// concurrencia el índice único del almacén es quien decide, y ese camino
// también termina en ErrDuplicate.
func (uc *CategoryUseCase) Create(in dto.CreateNameRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List devuelve el catálogo completo en orden alfabético.
func (uc *CategoryUseCase) List() ([]*dto.CategoryResponse, error) {
	categories, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Delete elimina una categoría. ErrConflict si aún hay productos que la usan.
func (uc *CategoryUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
