package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nmendes/servicos-api/internal/domain/entity"
)

func productWithUnitCost(cost string) *entity.Product {
	return &entity.Product{
		ID:       "p1",
		Name:     "Tonalizante 6.73",
		UnitCost: decimal.RequireFromString(cost),
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, entity.StatusPending, entity.NormalizeStatus("pending"))
	assert.Equal(t, entity.StatusApproved, entity.NormalizeStatus("approved"))
	assert.Equal(t, entity.StatusRejected, entity.NormalizeStatus("rejected"))

	// Fuera del dominio: se presenta como pending, nunca como estado nuevo.
	assert.Equal(t, entity.StatusPending, entity.NormalizeStatus(""))
	assert.Equal(t, entity.StatusPending, entity.NormalizeStatus("aprovado"))
	assert.Equal(t, entity.StatusPending, entity.NormalizeStatus("PENDING"))
}

func TestCanTransition(t *testing.T) {
	s := &entity.Service{Status: entity.StatusPending}
	assert.True(t, s.CanTransition(entity.StatusApproved))
	assert.True(t, s.CanTransition(entity.StatusRejected))
	assert.False(t, s.CanTransition(entity.StatusPending), "pending no es destino de transición")
	assert.False(t, s.CanTransition("otro"))

	// Los estados terminales no se revierten.
	for _, terminal := range []string{entity.StatusApproved, entity.StatusRejected} {
		s := &entity.Service{Status: terminal}
		assert.True(t, s.IsTerminal())
		assert.False(t, s.CanTransition(entity.StatusApproved))
		assert.False(t, s.CanTransition(entity.StatusRejected))
		assert.False(t, s.CanTransition(entity.StatusPending))
	}
}

func TestTotalCost_SumaLineas(t *testing.T) {
	s := &entity.Service{
		Products: []*entity.ServiceProduct{
			{QuantityUsed: decimal.NewFromInt(15), Product: productWithUnitCost("0.40")},
			{QuantityUsed: decimal.NewFromInt(10), Product: productWithUnitCost("1.25")},
		},
	}
	assert.True(t, s.TotalCost().Equal(decimal.RequireFromString("18.50")),
		"15×0.40 + 10×1.25 = 18.50, obtuvo %s", s.TotalCost())
}

func TestTotalCost_SinLineas(t *testing.T) {
	s := &entity.Service{}
	assert.True(t, s.TotalCost().IsZero())
}

// Escenario del catálogo: paquete de 60g comprado a 24.00 -> unit_cost 0.40;
// un servicio que consume 15g vale 6.00.
func TestTotalCost_EscenarioTonalizante(t *testing.T) {
	unitCost := entity.ComputeUnitCost(decimal.RequireFromString("24.00"), decimal.NewFromInt(60))
	assert.True(t, unitCost.Equal(decimal.RequireFromString("0.4")), "24.00/60 = 0.40, obtuvo %s", unitCost)

	s := &entity.Service{
		Products: []*entity.ServiceProduct{
			{QuantityUsed: decimal.NewFromInt(15), Product: &entity.Product{UnitCost: unitCost}},
		},
	}
	assert.True(t, s.TotalCost().Equal(decimal.RequireFromString("6.00")))
}

// Una línea colgante aporta 0 pero sigue contándose como línea.
func TestTotalCost_LineaColgante(t *testing.T) {
	s := &entity.Service{
		Products: []*entity.ServiceProduct{
			{QuantityUsed: decimal.NewFromInt(15), Product: productWithUnitCost("0.40")},
			{QuantityUsed: decimal.NewFromInt(99), Product: nil},
		},
	}
	assert.True(t, s.TotalCost().Equal(decimal.RequireFromString("6.00")))
	assert.Len(t, s.Products, 2, "la línea colgante no se omite")
	assert.Equal(t, 1, s.DanglingCount())
}

func TestComputeUnitCost_PaqueteCero(t *testing.T) {
	assert.True(t, entity.ComputeUnitCost(decimal.NewFromInt(24), decimal.Zero).IsZero())
}
