package repository

import (
	"time"

	"github.com/venuehub/comanda-api/internal/domain/entity"
)

// BookingRepository define el puerto de solo lectura sobre las reservas del
// colaborador externo de agenda. El motor únicamente detecta solapamientos.
type BookingRepository interface {
	// ListOverlapping devuelve las reservas en estado pending o in_progress de
	// la ubicación que se solapan con [startAt, endAt).
	ListOverlapping(tenantID, locationID string, startAt, endAt time.Time) ([]*entity.Booking, error)
}
