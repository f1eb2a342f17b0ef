// Package realtime distribuye notificaciones de cambio por tabla dentro del
// proceso. El contrato es invalidación de colección completa: un evento solo
// dice "la tabla X cambió"; el consumidor re-lee la colección entera. Es el
// mismo trade-off del canal realtime original — consistencia sobre
// eficiencia — y se preserva a propósito, sin diffing incremental.
package realtime

import (
	"fmt"

	"github.com/asaskevich/EventBus"
)

// Tablas con canal de notificación propio.
var Tables = []string{"categories", "brands", "products", "services", "service_products"}

const topicPrefix = "change:"

// Hub fan-out de eventos de cambio sobre un bus en memoria.
type Hub struct {
	bus EventBus.Bus
}

// NewHub construye el hub.
func NewHub() *Hub {
	return &Hub{bus: EventBus.New()}
}

// Publish anuncia que la tabla cambió. Se invoca desde el listener de
// Postgres; las escrituras propias no publican, la notificación del almacén
// ya cubre ese caso (la re-lectura redundante es idempotente).
func (h *Hub) Publish(table string) {
	h.bus.Publish(topicPrefix+table, table)
}

// Subscribe registra un callback para los cambios de una tabla. Devuelve la
// función de des-suscripción.
func (h *Hub) Subscribe(table string, fn func(table string)) (func(), error) {
	if err := h.bus.Subscribe(topicPrefix+table, fn); err != nil {
		return nil, fmt.Errorf("realtime: suscribir %s: %w", table, err)
	}
	return func() { _ = h.bus.Unsubscribe(topicPrefix+table, fn) }, nil
}

// SubscribeAll entrega los cambios de todas las tablas por un canal con
// buffer. Si el consumidor va lento los eventos sobrantes se descartan:
// la invalidación de colección completa hace inocuo perder duplicados.
func (h *Hub) SubscribeAll() (<-chan string, func(), error) {
	events := make(chan string, 16)
	fn := func(table string) {
		select {
		case events <- table:
		default:
		}
	}
	var cancels []func()
	for _, table := range Tables {
		cancel, err := h.Subscribe(table, fn)
		if err != nil {
			for _, c := range cancels {
				c()
			}
			return nil, nil, err
		}
		cancels = append(cancels, cancel)
	}
	cancelAll := func() {
		for _, c := range cancels {
			c()
		}
	}
	return events, cancelAll, nil
}
