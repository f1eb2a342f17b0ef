package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/application/usecase"
	"github.com/nmendes/servicos-api/internal/domain"
)

func createProductRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:            "Tinta Loiro",
		CategoryID:      "cat-1",
		BrandID:         "brand-1",
		PackageQuantity: decimal.NewFromInt(60),
		Unit:            "g",
		PurchasePrice:   decimal.RequireFromString("24.00"),
	}
}

func TestProductUseCase_Create_DerivaUnitCost(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	resp, err := uc.Create(createProductRequest())
	require.NoError(t, err)
	// 24.00 / 60 g = 0.4 por gramo
	assert.True(t, resp.UnitCost.Equal(decimal.RequireFromString("0.4")), "unit_cost: %s", resp.UnitCost)
}

func TestProductUseCase_Create_PaqueteCeroValeCostoCero(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	in := createProductRequest()
	in.PackageQuantity = decimal.Zero
	resp, err := uc.Create(in)
	require.NoError(t, err)
	assert.True(t, resp.UnitCost.IsZero(), "cantidad cero no divide: costo cero, nunca pánico")
}

func TestProductUseCase_Update_RecalculaAlCambiarPrecio(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)
	created, err := uc.Create(createProductRequest())
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("30.00")
	resp, err := uc.Update(created.ID, dto.UpdateProductRequest{PurchasePrice: &newPrice})
	require.NoError(t, err)
	assert.True(t, resp.UnitCost.Equal(decimal.RequireFromString("0.5")), "unit_cost: %s", resp.UnitCost)
}

func TestProductUseCase_Update_RecalculaAlCambiarCantidad(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	created, err := uc.Create(createProductRequest())
	require.NoError(t, err)

	newQty := decimal.NewFromInt(120)
	resp, err := uc.Update(created.ID, dto.UpdateProductRequest{PackageQuantity: &newQty})
	require.NoError(t, err)
	assert.True(t, resp.UnitCost.Equal(decimal.RequireFromString("0.2")), "unit_cost: %s", resp.UnitCost)
}

func TestProductUseCase_Update_SinCambioDeCostoNoRecalcula(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	created, err := uc.Create(createProductRequest())
	require.NoError(t, err)

	name := "Tinta Loiro Claro"
	resp, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.True(t, resp.UnitCost.Equal(created.UnitCost))
	assert.Equal(t, name, resp.Name)
}

func TestProductUseCase_Update_NoExisteDevuelveNil(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	resp, err := uc.Update("nope", dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestProductUseCase_Create_ValoresNegativos(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	in := createProductRequest()
	in.PurchasePrice = decimal.RequireFromString("-1")
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUseCase_Create_Duplicado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	_, err := uc.Create(dto.CreateNameRequest{Name: "Coloração"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateNameRequest{Name: "Coloração"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryUseCase_List_Alfabetico(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())
	for _, name := range []string{"Tratamento", "Coloração", "Manicure"} {
		_, err := uc.Create(dto.CreateNameRequest{Name: name})
		require.NoError(t, err)
	}

	out, err := uc.List()
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Coloração", out[0].Name)
	assert.Equal(t, "Manicure", out[1].Name)
	assert.Equal(t, "Tratamento", out[2].Name)
}

func TestBrandUseCase_Create_NombreVacio(t *testing.T) {
	uc := usecase.NewBrandUseCase(newFakeBrandRepo())

	_, err := uc.Create(dto.CreateNameRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
