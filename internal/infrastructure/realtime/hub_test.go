package realtime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmendes/servicos-api/internal/infrastructure/realtime"
)

func TestHub_PublishLlegaAlSuscriptor(t *testing.T) {
	h := realtime.NewHub()

	got := make(chan string, 1)
	cancel, err := h.Subscribe("services", func(table string) { got <- table })
	require.NoError(t, err)
	defer cancel()

	h.Publish("services")

	select {
	case table := <-got:
		assert.Equal(t, "services", table)
	case <-time.After(time.Second):
		t.Fatal("el evento nunca llegó")
	}
}

func TestHub_SubscribeAll(t *testing.T) {
	h := realtime.NewHub()

	events, cancel, err := h.SubscribeAll()
	require.NoError(t, err)
	defer cancel()

	h.Publish("categories")
	h.Publish("products")

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case table := <-events:
			seen[table] = true
		case <-time.After(time.Second):
			t.Fatal("faltan eventos")
		}
	}
	assert.True(t, seen["categories"])
	assert.True(t, seen["products"])
}

func TestHub_TablasIndependientes(t *testing.T) {
	h := realtime.NewHub()

	got := make(chan string, 1)
	cancel, err := h.Subscribe("brands", func(table string) { got <- table })
	require.NoError(t, err)
	defer cancel()

	h.Publish("services")

	select {
	case <-got:
		t.Fatal("un cambio en services no debe notificar a brands")
	case <-time.After(50 * time.Millisecond):
	}
}
