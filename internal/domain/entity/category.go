package entity

import "time"

// Category representa una categoría de productos (tabla categories).
// El nombre es único: hay chequeo optimista en el caso de uso y un índice
// único en el almacén como fuente de verdad.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
