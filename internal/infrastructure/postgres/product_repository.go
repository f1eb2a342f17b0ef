package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.id, p.name, p.category_id, p.brand_id, p.barcode, p.sku,
	p.package_quantity, p.unit, p.purchase_price, p.unit_cost, p.image_url,
	p.created_at, p.updated_at,
	c.id, c.name, c.created_at, c.updated_at,
	b.id, b.name, b.created_at, b.updated_at`

const productJoins = `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN brands b ON b.id = p.brand_id`

// Create persiste un nuevo producto. unit_cost ya viene derivado por el caso de uso.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category_id, brand_id, barcode, sku, package_quantity, unit, purchase_price, unit_cost, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, product.BrandID, product.Barcode,
		product.SKU, product.PackageQuantity, product.Unit, product.PurchasePrice,
		product.UnitCost, product.ImageURL, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto con categoría y marca en un solo viaje.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + productJoins + ` WHERE p.id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update reescribe el producto completo. purchase_price y package_quantity
// viajan siempre con unit_cost recalculado: nunca se actualizan por separado.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category_id = $3, brand_id = $4, barcode = $5, sku = $6,
			package_quantity = $7, unit = $8, purchase_price = $9, unit_cost = $10, image_url = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, product.BrandID, product.Barcode,
		product.SKU, product.PackageQuantity, product.Unit, product.PurchasePrice,
		product.UnitCost, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve el inventario completo con categoría y marca, más reciente primero.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + productJoins + ` ORDER BY p.created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Delete elimina un producto. Las líneas de servicio que lo referencian se
// conservan (la FK es ON DELETE SET NULL): quedan como líneas colgantes.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanProduct escanea una fila de producto con sus relaciones LEFT JOIN.
// Categoría o marca ausente (borrada) llega como NULL y queda nil.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var catID, catName *string
	var catCreated, catUpdated *time.Time
	var brandID, brandName *string
	var brandCreated, brandUpdated *time.Time

	err := row.Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.BrandID, &p.Barcode, &p.SKU,
		&p.PackageQuantity, &p.Unit, &p.PurchasePrice, &p.UnitCost, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catCreated, &catUpdated,
		&brandID, &brandName, &brandCreated, &brandUpdated,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		p.Category = &entity.Category{ID: *catID, Name: *catName}
		if catCreated != nil {
			p.Category.CreatedAt = *catCreated
		}
		if catUpdated != nil {
			p.Category.UpdatedAt = *catUpdated
		}
	}
	if brandID != nil {
		p.Brand = &entity.Brand{ID: *brandID, Name: *brandName}
		if brandCreated != nil {
			p.Brand.CreatedAt = *brandCreated
		}
		if brandUpdated != nil {
			p.Brand.UpdatedAt = *brandUpdated
		}
	}
	return &p, nil
}
