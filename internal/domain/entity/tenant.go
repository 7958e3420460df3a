package entity

import "time"

// Tenant representa una organización del sistema (venue, bar, club).
// Todos los recursos del motor están particionados por TenantID.
type Tenant struct {
	ID        string
	Name      string
	Document  string
	Email     string
	Phone     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
