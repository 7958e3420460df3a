package entity

import "time"

// Estados de reserva que bloquean la franja horaria de una ubicación.
const (
	BookingStatusPending    = "pending"
	BookingStatusInProgress = "in_progress"
)

// Booking es una reserva de ubicación gestionada por un colaborador externo.
// El motor solo la consulta para detectar solapamientos al agregar ítems de
// ubicación: un solape se tolera únicamente si la reserva pertenece al mismo
// cliente de la comanda.
type Booking struct {
	ID         string
	TenantID   string
	LocationID string
	CustomerID string
	Status     string
	StartAt    time.Time
	EndAt      time.Time
}
