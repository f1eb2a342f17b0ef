package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del inventario.
// unit_cost nunca entra por la API: se deriva siempre de
// purchase_price / package_quantity.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto con unit_cost derivado.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" || in.BrandID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PackageQuantity.IsNegative() || in.PurchasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Unit == "" {
		in.Unit = "g"
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		CategoryID:      in.CategoryID,
		BrandID:         in.BrandID,
		Barcode:         in.Barcode,
		SKU:             in.SKU,
		PackageQuantity: in.PackageQuantity,
		Unit:            in.Unit,
		PurchasePrice:   in.PurchasePrice,
		ImageURL:        in.ImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	product.RecomputeUnitCost()
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Si cambia purchase_price o package_quantity,
// unit_cost se recalcula en el mismo paso: los dos campos jamás divergen.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
		product.Category = nil
	}
	if in.BrandID != nil {
		product.BrandID = *in.BrandID
		product.Brand = nil
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	costChanged := false
	if in.PackageQuantity != nil {
		if in.PackageQuantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PackageQuantity = *in.PackageQuantity
		costChanged = true
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PurchasePrice
		costChanged = true
	}
	if costChanged {
		product.RecomputeUnitCost()
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve el inventario completo con categoría y marca.
func (uc *ProductUseCase) List() ([]*dto.ProductResponse, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto. Las líneas de servicio que lo referencian
// quedan colgantes y siguen listándose como producto desconocido.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		CategoryID:      p.CategoryID,
		BrandID:         p.BrandID,
		Barcode:         p.Barcode,
		SKU:             p.SKU,
		PackageQuantity: p.PackageQuantity,
		Unit:            p.Unit,
		PurchasePrice:   p.PurchasePrice,
		UnitCost:        p.UnitCost,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Category != nil {
		resp.Category = toCategoryResponse(p.Category)
	}
	if p.Brand != nil {
		resp.Brand = toBrandResponse(p.Brand)
	}
	return resp
}
