package localstore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmendes/servicos-api/internal/infrastructure/localstore"
)

func openStore(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTakeDraft_LeeYBorra(t *testing.T) {
	s := openStore(t)

	draft := localstore.Draft{
		ClientName:  "Maria",
		ServiceName: "Coloração",
		ServiceDate: "2025-08-03",
		Products: []localstore.DraftLine{
			{ProductID: "p1", Name: "Tonalizante", Quantity: "15"},
		},
	}
	require.NoError(t, s.SaveDraft("sess-1", draft))

	got, err := s.TakeDraft("sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Maria", got.ClientName)
	assert.Equal(t, "15", got.Products[0].Quantity)

	// Segunda lectura: el borrador ya fue consumido.
	got, err = s.TakeDraft("sess-1")
	require.NoError(t, err)
	assert.Nil(t, got, "un borrador nunca se lee dos veces")
}

func TestTakeDraft_SesionSinBorrador(t *testing.T) {
	s := openStore(t)
	got, err := s.TakeDraft("no-existe")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Volver de la selección: los productos nuevos se anexan con cantidad vacía
// y las líneas existentes quedan intactas.
func TestUpdateDraft_AnexaSinTocarExistentes(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.SaveDraft("sess-1", localstore.Draft{
		ClientName:  "Maria",
		ServiceName: "Coloração",
		Products: []localstore.DraftLine{
			{ProductID: "p1", Name: "Tonalizante", Quantity: "15"},
		},
	}))

	require.NoError(t, s.UpdateDraft("sess-1", func(d *localstore.Draft) {
		d.Products = append(d.Products,
			localstore.DraftLine{ProductID: "p2", Name: "Condicionador", Quantity: ""},
			localstore.DraftLine{ProductID: "p3", Name: "Máscara", Quantity: ""},
		)
	}))

	got, err := s.TakeDraft("sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Maria", got.ClientName, "los campos originales no cambian")
	require.Len(t, got.Products, 3, "exactamente dos líneas nuevas")
	assert.Equal(t, "15", got.Products[0].Quantity, "la cantidad ya tecleada se conserva")
	assert.Equal(t, "", got.Products[1].Quantity)
	assert.Equal(t, "", got.Products[2].Quantity)
}

func TestFallback_OrdenYOrigen(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.AppendFallback(localstore.FallbackService{
		LocalID: "l1", Origin: localstore.OriginSynced, RemoteID: "r1",
		ServiceName: "Primero", Status: "pending",
	}))
	require.NoError(t, s.AppendFallback(localstore.FallbackService{
		LocalID: "l2", Origin: localstore.OriginLocalOnly, PendingReason: "remoto caído",
		ServiceName: "Segundo", Status: "pending",
	}))

	list, err := s.ListFallback()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Segundo", list[0].ServiceName, "más reciente primero")
	assert.Equal(t, localstore.OriginLocalOnly, list[0].Origin)
	assert.Equal(t, "remoto caído", list[0].PendingReason)
	assert.Equal(t, localstore.OriginSynced, list[1].Origin)
}

// La lista de respaldo y los borradores no comparten espacio de claves:
// consumir un borrador no toca el respaldo.
func TestFallback_IndependienteDeDrafts(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.SaveDraft("k", localstore.Draft{ClientName: "Ana"}))
	require.NoError(t, s.AppendFallback(localstore.FallbackService{LocalID: "k", ServiceName: "Svc"}))

	_, err := s.TakeDraft("k")
	require.NoError(t, err)

	list, err := s.ListFallback()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
