package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un Service. pending es el único estado
// inicial; approved y rejected son terminales y no tienen transición de
// salida.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Service representa un servicio registrado por una profesional
// (tabla services). ServiceDate es una fecha de calendario pura en
// formato "YYYY-MM-DD", sin semántica de hora.
type Service struct {
	ID               string
	ProfessionalName string
	ClientName       string
	ServiceName      string
	ServiceDate      string // YYYY-MM-DD
	Status           string // pending | approved | rejected
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Líneas de consumo cargadas por el gateway.
	Products []*ServiceProduct
}

// ValidStatus indica si s pertenece al dominio legal de estados.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// NormalizeStatus devuelve el estado para presentación: cualquier valor
// fuera del dominio se muestra como pending. Nunca se persiste un estado
// desconocido como si fuera nuevo.
func NormalizeStatus(s string) string {
	if ValidStatus(s) {
		return s
	}
	return StatusPending
}

// TerminalStatus indica si el estado no admite más transiciones.
func TerminalStatus(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

// IsTerminal indica si el servicio ya fue aprobado o recusado.
func (s *Service) IsTerminal() bool { return TerminalStatus(s.Status) }

// CanTransition valida la transición pending -> approved|rejected.
// Desde un estado terminal no hay transición válida.
func (s *Service) CanTransition(target string) bool {
	if s.IsTerminal() {
		return false
	}
	return target == StatusApproved || target == StatusRejected
}

// TotalCost valora el servicio: Σ quantity_used × unit_cost vigente de cada
// línea. Se recalcula siempre en lectura — unit_cost puede haber cambiado
// después de registrado el servicio, así que el total nunca se cachea.
func (s *Service) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, sp := range s.Products {
		total = total.Add(sp.Cost())
	}
	return total
}

// DanglingCount cuenta las líneas cuyo producto ya no existe.
func (s *Service) DanglingCount() int {
	n := 0
	for _, sp := range s.Products {
		if sp.Dangling() {
			n++
		}
	}
	return n
}
