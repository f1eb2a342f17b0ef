package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)
var _ repository.ServiceProductRepository = (*ServiceProductRepo)(nil)

// ServiceRepo implementación del puerto ServiceRepository sobre PostgreSQL (usable con pool o tx).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador de persistencia para servicios. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// service_date sale como texto YYYY-MM-DD: es una fecha de calendario pura y
// nunca debe pasar por time.Time del driver (evita corrimientos de zona).
const serviceColumns = `
	s.id, s.professional_name, s.client_name, s.service_name,
	to_char(s.service_date, 'YYYY-MM-DD'), s.status, s.created_by, s.created_at, s.updated_at,
	sp.id, sp.product_id, sp.quantity_used, sp.created_at,
	p.id, p.name, p.package_quantity, p.unit, p.purchase_price, p.unit_cost, p.image_url,
	c.id, c.name,
	b.id, b.name`

const serviceJoins = `
	FROM services s
	LEFT JOIN service_products sp ON sp.service_id = s.id
	LEFT JOIN products p ON p.id = sp.product_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN brands b ON b.id = p.brand_id`

// Create persiste la cabecera del servicio. Las líneas van por CreateBatch
// dentro de la misma transacción.
func (r *ServiceRepo) Create(service *entity.Service) error {
	query := `
		INSERT INTO services (id, professional_name, client_name, service_name, service_date, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9)`
	var createdBy any // NULL en servicios migrados, sin cuenta de origen
	if service.CreatedBy != "" {
		createdBy = service.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		service.ID, service.ProfessionalName, service.ClientName, service.ServiceName,
		service.ServiceDate, service.Status, createdBy, service.CreatedAt, service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio con sus líneas y productos en un solo viaje.
func (r *ServiceRepo) GetByID(id string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + serviceJoins + ` WHERE s.id = $1 ORDER BY sp.created_at ASC`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	defer rows.Close()

	services, err := groupServiceRows(rows)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if len(services) == 0 {
		return nil, nil
	}
	return services[0], nil
}

// UpdateStatus fija el estado del servicio. El WHERE exige pending: un
// estado terminal jamás se reescribe, aunque dos transiciones concurrentes
// pasen el chequeo previo del caso de uso. Si el UPDATE no toca filas se
// consulta el motivo: servicio inexistente (ErrNotFound) o ya terminal
// (ErrInvalidStatus).
func (r *ServiceRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE services SET status = $2, updated_at = now() WHERE id = $1 AND status = 'pending'`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update service status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var current string
		err := r.q.QueryRow(context.Background(), `SELECT status FROM services WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update service status: %w", err)
		}
		return domain.ErrInvalidStatus
	}
	return nil
}

// List devuelve todos los servicios con líneas y productos, más reciente
// primero. El filtrado por estado y texto es del caso de uso: la colección
// completa viaja siempre, igual que la invalidación realtime.
func (r *ServiceRepo) List() ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + serviceJoins + ` ORDER BY s.created_at DESC, sp.created_at ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services, err := groupServiceRows(rows)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// groupServiceRows agrupa el producto cartesiano del join en servicios con
// sus líneas, preservando el orden de llegada de las cabeceras.
func groupServiceRows(rows pgx.Rows) ([]*entity.Service, error) {
	var ordered []*entity.Service
	byID := make(map[string]*entity.Service)

	for rows.Next() {
		var s entity.Service
		var createdBy *string // nil en servicios migrados del sistema legado
		var lineID, lineProductID *string
		var lineQty *decimal.Decimal
		var lineCreated *time.Time
		var prodID, prodName, prodUnit, prodImage *string
		var prodPkgQty, prodPrice, prodUnitCost *decimal.Decimal
		var catID, catName *string
		var brandID, brandName *string

		err := rows.Scan(
			&s.ID, &s.ProfessionalName, &s.ClientName, &s.ServiceName,
			&s.ServiceDate, &s.Status, &createdBy, &s.CreatedAt, &s.UpdatedAt,
			&lineID, &lineProductID, &lineQty, &lineCreated,
			&prodID, &prodName, &prodPkgQty, &prodUnit, &prodPrice, &prodUnitCost, &prodImage,
			&catID, &catName,
			&brandID, &brandName,
		)
		if err != nil {
			return nil, err
		}
		if createdBy != nil {
			s.CreatedBy = *createdBy
		}

		svc, ok := byID[s.ID]
		if !ok {
			svc = &s
			byID[s.ID] = svc
			ordered = append(ordered, svc)
		}

		if lineID == nil {
			continue // servicio sin líneas
		}
		line := &entity.ServiceProduct{
			ID:        *lineID,
			ServiceID: svc.ID,
		}
		if lineProductID != nil {
			line.ProductID = *lineProductID
		}
		if lineQty != nil {
			line.QuantityUsed = *lineQty
		}
		if lineCreated != nil {
			line.CreatedAt = *lineCreated
		}
		if prodID != nil {
			p := &entity.Product{ID: *prodID, Name: *prodName}
			if prodPkgQty != nil {
				p.PackageQuantity = *prodPkgQty
			}
			if prodUnit != nil {
				p.Unit = *prodUnit
			}
			if prodPrice != nil {
				p.PurchasePrice = *prodPrice
			}
			if prodUnitCost != nil {
				p.UnitCost = *prodUnitCost
			}
			if prodImage != nil {
				p.ImageURL = *prodImage
			}
			if catID != nil {
				p.CategoryID = *catID
				p.Category = &entity.Category{ID: *catID, Name: *catName}
			}
			if brandID != nil {
				p.BrandID = *brandID
				p.Brand = &entity.Brand{ID: *brandID, Name: *brandName}
			}
			line.Product = p
		}
		svc.Products = append(svc.Products, line)
	}
	return ordered, rows.Err()
}

// ServiceProductRepo implementación del puerto ServiceProductRepository sobre PostgreSQL.
type ServiceProductRepo struct {
	q Querier
}

// NewServiceProductRepository construye el adaptador para líneas de consumo. Pasar pool o tx (Querier).
func NewServiceProductRepository(q Querier) *ServiceProductRepo {
	return &ServiceProductRepo{q: q}
}

// CreateBatch inserta las líneas de un servicio. Debe ejecutarse en la misma
// transacción que la cabecera.
func (r *ServiceProductRepo) CreateBatch(items []*entity.ServiceProduct) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO service_products (id, service_id, product_id, quantity_used, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range items {
		var productID any
		if item.ProductID != "" {
			productID = item.ProductID
		}
		_, err := r.q.Exec(context.Background(), query,
			item.ID, item.ServiceID, productID, item.QuantityUsed, item.CreatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidInput
			}
			return fmt.Errorf("insert service product: %w", err)
		}
	}
	return nil
}
