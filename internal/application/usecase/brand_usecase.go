package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
)

// BrandUseCase casos de uso del catálogo de marcas (solo admin). Mismo
// contrato que CategoryUseCase.
type BrandUseCase struct {
	repo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo}
}

// Create crea una marca. Chequeo optimista + índice único como árbitro final.
func (uc *BrandUseCase) Create(in dto.CreateNameRequest) (*dto.BrandResponse, error) {
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
	brand := &entity.Brand{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// List devuelve el catálogo completo en orden alfabético.
func (uc *BrandUseCase) List() ([]*dto.BrandResponse, error) {
	brands, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, toBrandResponse(b))
	}
	return out, nil
}

// Delete elimina una marca. ErrConflict si aún hay productos que la usan.
func (uc *BrandUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
