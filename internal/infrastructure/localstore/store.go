// Package localstore es el almacén local del lado servidor: borradores de
// formulario por sesión y la lista persistente de respaldo de servicios
// enviados. Equivale a la pareja sessionStorage/localStorage de la
// aplicación original, con la misma separación estricta: los borradores son
// efímeros y de una sola lectura; la lista de respaldo sobrevive reinicios.
// Nunca comparten claves ni bucket.
package localstore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Origen de un registro de respaldo. Cada registro queda etiquetado según
// si el insert remoto llegó a completarse; la etiqueta nunca se reescribe.
const (
	OriginSynced    = "synced"     // insertado en el remoto; copia local de respaldo
	OriginLocalOnly = "local_only" // el insert remoto falló; solo existe aquí
)

var (
	bucketDrafts   = []byte("drafts")
	bucketFallback = []byte("fallback_services")
)

// DraftLine una línea del borrador; la cantidad se conserva como texto tal
// cual la tecleó la profesional.
type DraftLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImageURL  string `json:"image_url"`
	Quantity  string `json:"quantity"`
}

// Draft formulario de servicio en curso, puenteando la navegación hacia la
// pantalla de selección de productos.
type Draft struct {
	ClientName  string      `json:"client_name"`
	ServiceName string      `json:"service_name"`
	ServiceDate string      `json:"service_date"` // YYYY-MM-DD
	Products    []DraftLine `json:"products"`
	SavedAt     time.Time   `json:"saved_at"`
}

// FallbackLine línea desnormalizada de un registro de respaldo. Lleva el
// nombre del producto para que el registro sea legible aunque el catálogo
// cambie.
type FallbackLine struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    string `json:"quantity"`
}

// FallbackService copia desnormalizada de un servicio enviado. Origin
// distingue los registros sincronizados de los que solo existen localmente;
// no hay mecanismo de re-sincronización para estos últimos.
type FallbackService struct {
	LocalID          string         `json:"local_id"`
	RemoteID         string         `json:"remote_id,omitempty"`
	Origin           string         `json:"origin"` // synced | local_only
	PendingReason    string         `json:"pending_reason,omitempty"`
	ProfessionalName string         `json:"professional_name"`
	ClientName       string         `json:"client_name"`
	ServiceName      string         `json:"service_name"`
	ServiceDate      string         `json:"service_date"`
	Status           string         `json:"status"`
	Products         []FallbackLine `json:"products"`
	CreatedAt        time.Time      `json:"created_at"`
}

// Store almacén local sobre bbolt.
type Store struct {
	db *bolt.DB
}

// Open abre (o crea) el archivo bbolt y asegura los buckets.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("localstore: abrir %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketDrafts); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketFallback)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: crear buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra el archivo.
func (s *Store) Close() error { return s.db.Close() }

// SaveDraft guarda el borrador de la sesión, reemplazando el anterior.
// Se invoca justo antes de navegar fuera del formulario.
func (s *Store) SaveDraft(sessionKey string, d Draft) error {
	if sessionKey == "" {
		return fmt.Errorf("localstore: session key vacía")
	}
	d.SavedAt = time.Now()
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("localstore: serializar borrador: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDrafts).Put([]byte(sessionKey), raw)
	})
}

// TakeDraft lee Y borra el borrador en una sola transacción. La entrada no
// puede leerse dos veces: re-aplicar un borrador ya consumido corrompería
// el formulario. Devuelve nil si no hay borrador.
func (s *Store) TakeDraft(sessionKey string) (*Draft, error) {
	var d *Draft
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDrafts)
		raw := b.Get([]byte(sessionKey))
		if raw == nil {
			return nil
		}
		var parsed Draft
		if err := json.Unmarshal(raw, &parsed); err != nil {
			// Entrada corrupta: descartarla en lugar de devolverla a medias.
			return b.Delete([]byte(sessionKey))
		}
		d = &parsed
		return b.Delete([]byte(sessionKey))
	})
	if err != nil {
		return nil, fmt.Errorf("localstore: consumir borrador: %w", err)
	}
	return d, nil
}

// UpdateDraft aplica fn sobre el borrador existente (o uno vacío) y lo
// reescribe, todo en una transacción. Es la vía para anexar productos
// elegidos sin tocar las cantidades ya tecleadas.
func (s *Store) UpdateDraft(sessionKey string, fn func(d *Draft)) error {
	if sessionKey == "" {
		return fmt.Errorf("localstore: session key vacía")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDrafts)
		var d Draft
		if raw := b.Get([]byte(sessionKey)); raw != nil {
			_ = json.Unmarshal(raw, &d)
		}
		fn(&d)
		d.SavedAt = time.Now()
		raw, err := json.Marshal(d)
		if err != nil {
			return err
		}
		return b.Put([]byte(sessionKey), raw)
	})
}

// ClearDraft elimina el borrador de la sesión si existe.
func (s *Store) ClearDraft(sessionKey string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDrafts).Delete([]byte(sessionKey))
	})
}

// AppendFallback agrega un registro al final de la lista de respaldo.
func (s *Store) AppendFallback(rec FallbackService) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("localstore: serializar respaldo: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFallback)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, raw)
	})
}

// ListFallback devuelve la lista de respaldo, más reciente primero.
func (s *Store) ListFallback() ([]FallbackService, error) {
	var out []FallbackService
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketFallback).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var rec FallbackService
			if err := json.Unmarshal(v, &rec); err != nil {
				continue // registro corrupto: se omite, no rompe el listado
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("localstore: listar respaldo: %w", err)
	}
	return out, nil
}
