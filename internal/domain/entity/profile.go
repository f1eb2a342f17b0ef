package entity

import "time"

// Roles válidos para Profile. El rol es inmutable después del registro.
const (
	RoleAdmin        = "admin"
	RoleProfessional = "professional"
)

// Profile representa la identidad de una cuenta (tabla profiles).
// El hash de contraseña vive junto al perfil; nunca sale del dominio en claro.
type Profile struct {
	ID           string
	Email        string
	Name         string
	UserType     string // admin | professional
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si la cuenta puede administrar catálogo y aprobar servicios.
func (p *Profile) IsAdmin() bool { return p.UserType == RoleAdmin }
