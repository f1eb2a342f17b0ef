package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nmendes/servicos-api/internal/infrastructure/realtime"
	"github.com/nmendes/servicos-api/pkg/logger"
)

// channelName canal de pg_notify: los triggers de cada tabla publican aquí
// el nombre de la tabla que cambió.
const channelName = "table_changes"

// Listener mantiene una conexión dedicada en LISTEN y reenvía cada
// notificación al hub. El payload es solo el nombre de la tabla: el contrato
// es invalidación de colección completa, nunca viaja el diff.
type Listener struct {
	dsn string
	hub *realtime.Hub
	log *logger.Logger
}

// NewListener construye el listener. dsn es el mismo connection string del pool.
func NewListener(dsn string, hub *realtime.Hub, log *logger.Logger) *Listener {
	return &Listener{dsn: dsn, hub: hub, log: log.Component("realtime-listener")}
}

// Run bloquea escuchando notificaciones hasta que ctx se cancele. Ante un
// corte de conexión reintenta con backoff; las notificaciones perdidas
// durante el corte no se recuperan (los clientes re-leen al reconectar).
func (l *Listener) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		l.log.Warn().Err(err).Dur("retry_in", backoff).Msg("conexión LISTEN caída, reintentando")
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return err
	}
	l.log.Info().Str("channel", channelName).Msg("escuchando cambios del almacén")

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.hub.Publish(notification.Payload)
	}
}
