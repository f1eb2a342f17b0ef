package entity

import "time"

// Brand representa una marca de productos (tabla brands). Mismo contrato de
// unicidad de nombre que Category.
type Brand struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
