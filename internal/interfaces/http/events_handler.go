package http

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/nmendes/servicos-api/internal/infrastructure/realtime"
	"github.com/nmendes/servicos-api/pkg/logger"
)

// EventsHandler expone los cambios del almacén por Server-Sent Events.
// Cada evento trae solo el nombre de la tabla que cambió: el cliente
// descarta su copia y re-lee la colección completa.
type EventsHandler struct {
	hub *realtime.Hub
	log *logger.Logger
}

// NewEventsHandler construye el handler.
func NewEventsHandler(hub *realtime.Hub, log *logger.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, log: log.Component("events")}
}

// Stream godoc
// @Summary      Cambios del almacén (SSE)
// @Description  Flujo text/event-stream; cada evento "change" lleva el nombre de la tabla modificada.
// @Tags         events
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	events, cancel, err := h.hub.SubscribeAll()
	if err != nil {
		return err
	}

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		keepalive := time.NewTicker(25 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case table := <-events:
				if _, err := fmt.Fprintf(w, "event: change\ndata: %s\n\n", table); err != nil {
					return
				}
			case <-keepalive.C:
				// Comentario SSE para mantener viva la conexión a través de proxies.
				if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
					return
				}
			}
			if err := w.Flush(); err != nil {
				// Cliente desconectado.
				return
			}
		}
	}))
	return nil
}
