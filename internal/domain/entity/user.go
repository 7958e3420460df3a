package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleGerente = "gerente"
	RoleCajero  = "cajero"
)

// User representa un usuario operador del sistema (pertenece a un Tenant).
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, gerente, cajero
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
