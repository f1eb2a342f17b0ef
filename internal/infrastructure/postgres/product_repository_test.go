package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRow implementa pgx.Row sobre una lista fija de valores, en el mismo
// orden que las columnas del SELECT. nil representa un NULL del join.
type stubRow struct {
	values []any
}

func (r stubRow) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("stubRow: %d destinos para %d valores", len(dest), len(r.values))
	}
	for i, v := range r.values {
		if v == nil {
			continue
		}
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case **string:
			s := v.(string)
			*d = &s
		case *decimal.Decimal:
			*d = v.(decimal.Decimal)
		case *time.Time:
			*d = v.(time.Time)
		case **time.Time:
			tv := v.(time.Time)
			*d = &tv
		default:
			return fmt.Errorf("stubRow: destino no soportado en la posición %d", i)
		}
	}
	return nil
}

func TestScanProduct_ConRelaciones(t *testing.T) {
	created := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 8, 2, 10, 0, 0, 0, time.UTC)
	catCreated := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	catUpdated := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	brandCreated := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	brandUpdated := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	row := stubRow{values: []any{
		"prod-1", "Coloración 7.0", "cat-1", "brand-1", "789000", "SKU-1",
		decimal.NewFromInt(60), "g", decimal.NewFromInt(24), decimal.RequireFromString("0.4"), "http://img",
		created, updated,
		"cat-1", "Coloração", catCreated, catUpdated,
		"brand-1", "Wella", brandCreated, brandUpdated,
	}}

	p, err := scanProduct(row)
	require.NoError(t, err)

	assert.Equal(t, "prod-1", p.ID)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Coloração", p.Category.Name)
	assert.Equal(t, catCreated, p.Category.CreatedAt)
	assert.Equal(t, catUpdated, p.Category.UpdatedAt)
	require.NotNil(t, p.Brand)
	assert.Equal(t, "Wella", p.Brand.Name)
	assert.Equal(t, brandCreated, p.Brand.CreatedAt)
	assert.Equal(t, brandUpdated, p.Brand.UpdatedAt)
}

// Categoría o marca borrada llega como NULL en todas sus columnas: el
// producto se carga igual, con las relaciones en nil.
func TestScanProduct_RelacionesBorradas(t *testing.T) {
	created := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	row := stubRow{values: []any{
		"prod-1", "Pó descolorante", "cat-x", "brand-x", "", "",
		decimal.NewFromInt(500), "g", decimal.NewFromInt(90), decimal.RequireFromString("0.18"), "",
		created, created,
		nil, nil, nil, nil,
		nil, nil, nil, nil,
	}}

	p, err := scanProduct(row)
	require.NoError(t, err)

	assert.Nil(t, p.Category)
	assert.Nil(t, p.Brand)
	assert.Equal(t, "Pó descolorante", p.Name)
}
