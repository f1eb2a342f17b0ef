package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
	"github.com/nmendes/servicos-api/pkg/dates"
	"github.com/nmendes/servicos-api/pkg/logger"
)

// MigrationUseCase migración única del snapshot heredado del navegador al
// almacén remoto. Cuatro pasos en orden fijo (categorías, marcas, productos,
// servicios) porque cada paso resuelve referencias por nombre contra los
// anteriores. Sin rollback: un paso fallido deja los previos aplicados y el
// resultado lo dice por paso.
type MigrationUseCase struct {
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	products   repository.ProductRepository
	services   repository.ServiceRepository
	lines      repository.ServiceProductRepository
	dates      *dates.Formatter
	log        *logger.Logger
}

// NewMigrationUseCase construye el caso de uso.
func NewMigrationUseCase(
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	products repository.ProductRepository,
	services repository.ServiceRepository,
	lines repository.ServiceProductRepository,
	f *dates.Formatter,
	log *logger.Logger,
) *MigrationUseCase {
	return &MigrationUseCase{
		categories: categories,
		brands:     brands,
		products:   products,
		services:   services,
		lines:      lines,
		dates:      f,
		log:        log.Component("migration"),
	}
}

// Run ejecuta la migración completa. Idempotencia por deduplicación de
// nombres: re-ejecutar no duplica categorías ni marcas ya migradas; los
// productos y servicios sí se insertan de nuevo, por eso la migración se
// corre una sola vez.
func (uc *MigrationUseCase) Run(snapshot dto.LegacySnapshot) dto.MigrationResponse {
	var resp dto.MigrationResponse

	categoryIDs, step := uc.migrateCategories(snapshot.Categories)
	resp.Steps = append(resp.Steps, step)
	if !step.Completed {
		return resp
	}

	brandIDs, step := uc.migrateBrands(snapshot.Brands)
	resp.Steps = append(resp.Steps, step)
	if !step.Completed {
		return resp
	}

	productIDs, step := uc.migrateProducts(snapshot.Products, categoryIDs, brandIDs)
	resp.Steps = append(resp.Steps, step)
	if !step.Completed {
		return resp
	}

	step = uc.migrateServices(snapshot.Services, productIDs)
	resp.Steps = append(resp.Steps, step)
	return resp
}

// migrateCategories inserta las categorías que aún no existen por nombre.
// Devuelve el mapa nombre -> id incluyendo las preexistentes.
func (uc *MigrationUseCase) migrateCategories(names []string) (map[string]string, dto.MigrationStepResult) {
	step := dto.MigrationStepResult{Name: "categories"}
	ids := make(map[string]string, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || ids[name] != "" {
			continue
		}
		existing, err := uc.categories.GetByName(name)
		if err != nil {
			step.Error = err.Error()
			return nil, step
		}
		if existing != nil {
			ids[name] = existing.ID
			continue
		}
		now := time.Now()
		category := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
		if err := uc.categories.Create(category); err != nil {
			step.Error = err.Error()
			return nil, step
		}
		ids[name] = category.ID
	}
	step.Completed = true
	return ids, step
}

func (uc *MigrationUseCase) migrateBrands(names []string) (map[string]string, dto.MigrationStepResult) {
	step := dto.MigrationStepResult{Name: "brands"}
	ids := make(map[string]string, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || ids[name] != "" {
			continue
		}
		existing, err := uc.brands.GetByName(name)
		if err != nil {
			step.Error = err.Error()
			return nil, step
		}
		if existing != nil {
			ids[name] = existing.ID
			continue
		}
		now := time.Now()
		brand := &entity.Brand{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
		if err := uc.brands.Create(brand); err != nil {
			step.Error = err.Error()
			return nil, step
		}
		ids[name] = brand.ID
	}
	step.Completed = true
	return ids, step
}

// migrateProducts inserta los productos remapeando categoría y marca de
// nombre a id. Una referencia a un nombre desconocido crea la categoría o
// marca faltante sobre la marcha: el snapshot heredado no garantiza
// integridad referencial.
func (uc *MigrationUseCase) migrateProducts(
	products []dto.LegacyProduct,
	categoryIDs, brandIDs map[string]string,
) (map[string]string, dto.MigrationStepResult) {
	step := dto.MigrationStepResult{Name: "products"}
	ids := make(map[string]string, len(products))
	for _, legacy := range products {
		name := strings.TrimSpace(legacy.Name)
		if name == "" {
			continue
		}
		categoryID, err := uc.ensureCategory(categoryIDs, legacy.Category)
		if err != nil {
			step.Error = err.Error()
			return nil, step
		}
		brandID, err := uc.ensureBrand(brandIDs, legacy.Brand)
		if err != nil {
			step.Error = err.Error()
			return nil, step
		}

		unit := legacy.Unit
		if unit == "" {
			unit = "g"
		}
		now := time.Now()
		product := &entity.Product{
			ID:              uuid.New().String(),
			Name:            name,
			CategoryID:      categoryID,
			BrandID:         brandID,
			Barcode:         legacy.Barcode,
			SKU:             legacy.SKU,
			PackageQuantity: decimal.NewFromFloat(legacy.PackageQuantity),
			Unit:            unit,
			PurchasePrice:   decimal.NewFromFloat(legacy.PurchasePrice),
			ImageURL:        legacy.ImageURL,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		product.RecomputeUnitCost()
		if err := uc.products.Create(product); err != nil {
			step.Error = err.Error()
			return nil, step
		}
		ids[name] = product.ID
	}
	step.Completed = true
	return ids, step
}

// migrateServices inserta los servicios heredados. La fecha llega como
// "DD/MM/YYYY"; si no parsea se usa la fecha de hoy y se deja constancia.
// Las líneas referencian productos por nombre: un nombre que no resuelve
// queda como línea sin producto (colgante desde el origen).
func (uc *MigrationUseCase) migrateServices(services []dto.LegacyService, productIDs map[string]string) dto.MigrationStepResult {
	step := dto.MigrationStepResult{Name: "services"}
	for _, legacy := range services {
		serviceDate := ""
		if t, ok := uc.dates.ParseBR(legacy.CreatedAtBR); ok {
			serviceDate = uc.dates.ForDatabase(t)
		} else {
			serviceDate = uc.dates.ForDatabase(uc.dates.Today())
			uc.log.Warn().
				Str("service", legacy.ServiceName).
				Str("data_criacao", legacy.CreatedAtBR).
				Msg("fecha heredada ilegible, se usa la fecha de hoy")
		}

		now := time.Now()
		service := &entity.Service{
			ID:               uuid.New().String(),
			ProfessionalName: legacy.ProfessionalName,
			ClientName:       legacy.ClientName,
			ServiceName:      legacy.ServiceName,
			ServiceDate:      serviceDate,
			Status:           legacyStatus(legacy.Status),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := uc.services.Create(service); err != nil {
			step.Error = err.Error()
			return step
		}

		var lines []*entity.ServiceProduct
		for _, item := range legacy.Products {
			lines = append(lines, &entity.ServiceProduct{
				ID:           uuid.New().String(),
				ServiceID:    service.ID,
				ProductID:    productIDs[strings.TrimSpace(item.Name)],
				QuantityUsed: parseLegacyQuantity(item.Quantity),
				CreatedAt:    now,
			})
		}
		if err := uc.lines.CreateBatch(lines); err != nil {
			step.Error = err.Error()
			return step
		}
	}
	step.Completed = true
	return step
}

func (uc *MigrationUseCase) ensureCategory(ids map[string]string, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Sem categoria"
	}
	if id, ok := ids[name]; ok {
		return id, nil
	}
	existing, err := uc.categories.GetByName(name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		ids[name] = existing.ID
		return existing.ID, nil
	}
	now := time.Now()
	category := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.categories.Create(category); err != nil {
		return "", err
	}
	ids[name] = category.ID
	return category.ID, nil
}

func (uc *MigrationUseCase) ensureBrand(ids map[string]string, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Sem marca"
	}
	if id, ok := ids[name]; ok {
		return id, nil
	}
	existing, err := uc.brands.GetByName(name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		ids[name] = existing.ID
		return existing.ID, nil
	}
	now := time.Now()
	brand := &entity.Brand{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.brands.Create(brand); err != nil {
		return "", err
	}
	ids[name] = brand.ID
	return brand.ID, nil
}

// legacyStatus traduce el estado heredado (a veces en portugués) al dominio.
func legacyStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aprovado", entity.StatusApproved:
		return entity.StatusApproved
	case "recusado", "rejeitado", entity.StatusRejected:
		return entity.StatusRejected
	default:
		return entity.StatusPending
	}
}

// parseLegacyQuantity interpreta la cantidad heredada: cadena con separador
// de miles brasileño ("1.500" son mil quinientos gramos) o decimal con coma
// ("2,5"). Ilegible vale cero, la línea se conserva.
func parseLegacyQuantity(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		// Coma decimal: los puntos son separadores de miles.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if strings.Count(s, ".") == 1 {
		// Un solo punto con exactamente tres dígitos detrás es separador de
		// miles al estilo brasileño; cualquier otra forma es decimal.
		parts := strings.SplitN(s, ".", 2)
		if len(parts[1]) == 3 {
			s = parts[0] + parts[1]
		}
	} else {
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
