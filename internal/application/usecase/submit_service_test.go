package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/application/usecase"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/infrastructure/localstore"
)

func openTestStore(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func buildSubmit(t *testing.T, services *fakeServiceRepo, lines *fakeLineRepo, store *localstore.Store) (*usecase.SubmitServiceUseCase, *fakeProductRepo) {
	t.Helper()
	products := newFakeProductRepo()
	require.NoError(t, products.Create(&entity.Product{
		ID: "p1", Name: "Tinta Loiro", UnitCost: decimal.RequireFromString("0.4"),
	}))
	tx := &fakeTxRunner{services: services, lines: lines}
	uc := usecase.NewSubmitServiceUseCase(tx, products, store, testDates(t), testLogger())
	return uc, products
}

func validRequest() dto.CreateServiceRequest {
	return dto.CreateServiceRequest{
		ProfessionalName: "Ana",
		ClientName:       "Maria",
		ServiceName:      "Coloração",
		ServiceDate:      "2025-08-03",
		Products: []dto.ServiceLineInput{
			{ProductID: "p1", QuantityUsed: decimal.NewFromInt(15)},
		},
	}
}

func TestSubmit_CaminoFeliz(t *testing.T) {
	services := newFakeServiceRepo()
	lines := &fakeLineRepo{}
	store := openTestStore(t)
	uc, _ := buildSubmit(t, services, lines, store)

	resp, err := uc.Submit(context.Background(), "user-1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, dto.StorageSynced, resp.Storage)
	require.NotNil(t, resp.Service)
	assert.Equal(t, entity.StatusPending, resp.Service.Status)
	assert.Equal(t, "user-1", resp.Service.CreatedBy)

	// Cabecera y líneas en el remoto.
	assert.Len(t, services.items, 1)
	assert.Len(t, lines.items, 1)

	// Copia de respaldo etiquetada como sincronizada, con nombre resuelto.
	backup, err := store.ListFallback()
	require.NoError(t, err)
	require.Len(t, backup, 1)
	assert.Equal(t, localstore.OriginSynced, backup[0].Origin)
	assert.Equal(t, resp.Service.ID, backup[0].RemoteID)
	assert.Equal(t, "Tinta Loiro", backup[0].Products[0].ProductName)
}

func TestSubmit_RemotoCaidoCaeAlRespaldo(t *testing.T) {
	services := newFakeServiceRepo()
	services.failCreate = true
	lines := &fakeLineRepo{}
	store := openTestStore(t)
	uc, _ := buildSubmit(t, services, lines, store)

	resp, err := uc.Submit(context.Background(), "user-1", validRequest())
	require.NoError(t, err, "el corte del remoto no es un error del envío")
	assert.Equal(t, dto.StorageLocalOnly, resp.Storage)
	assert.Nil(t, resp.Service)
	assert.NotEmpty(t, resp.LocalID)

	// Nada en el remoto; todo en el respaldo con el motivo.
	assert.Empty(t, services.items)
	backup, err := store.ListFallback()
	require.NoError(t, err)
	require.Len(t, backup, 1)
	assert.Equal(t, localstore.OriginLocalOnly, backup[0].Origin)
	assert.NotEmpty(t, backup[0].PendingReason)
	assert.Equal(t, entity.StatusPending, backup[0].Status)
}

func TestSubmit_LimpiaElBorradorEnAmbosCaminos(t *testing.T) {
	for _, fail := range []bool{false, true} {
		services := newFakeServiceRepo()
		services.failCreate = fail
		store := openTestStore(t)
		uc, _ := buildSubmit(t, services, &fakeLineRepo{}, store)

		require.NoError(t, store.SaveDraft("sess-1", localstore.Draft{ClientName: "Maria"}))
		in := validRequest()
		in.SessionKey = "sess-1"

		_, err := uc.Submit(context.Background(), "user-1", in)
		require.NoError(t, err)

		draft, err := store.TakeDraft("sess-1")
		require.NoError(t, err)
		assert.Nil(t, draft, "el borrador debe limpiarse (failCreate=%v)", fail)
	}
}

func TestSubmit_ValidacionDeEntrada(t *testing.T) {
	store := openTestStore(t)
	uc, _ := buildSubmit(t, newFakeServiceRepo(), &fakeLineRepo{}, store)
	ctx := context.Background()

	in := validRequest()
	in.ClientName = ""
	_, err := uc.Submit(ctx, "u", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validRequest()
	in.Products = nil
	_, err = uc.Submit(ctx, "u", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validRequest()
	in.Products[0].QuantityUsed = decimal.Zero
	_, err = uc.Submit(ctx, "u", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validRequest()
	in.ServiceDate = "03/08/2025" // formato de pantalla, no de almacén
	_, err = uc.Submit(ctx, "u", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_FechaVaciaUsaHoy(t *testing.T) {
	services := newFakeServiceRepo()
	store := openTestStore(t)
	uc, _ := buildSubmit(t, services, &fakeLineRepo{}, store)

	in := validRequest()
	in.ServiceDate = ""
	resp, err := uc.Submit(context.Background(), "u", in)
	require.NoError(t, err)

	f := testDates(t)
	assert.Equal(t, f.ForDatabase(f.Today()), resp.Service.ServiceDate)
}
