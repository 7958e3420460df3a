package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo lectura de reservas sobre PostgreSQL. Las reservas las escribe
// otro sistema; aquí solo se consultan solapamientos.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

// ListOverlapping devuelve las reservas pending o in_progress de la ubicación
// que se solapan con [startAt, endAt). Dos intervalos semiabiertos se solapan
// cuando start_at < endAt AND end_at > startAt.
func (r *BookingRepo) ListOverlapping(tenantID, locationID string, startAt, endAt time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT id, tenant_id, location_id, customer_id, status, start_at, end_at
		FROM bookings
		WHERE tenant_id = $1 AND location_id = $2
		  AND status IN ('pending', 'in_progress')
		  AND start_at < $4 AND end_at > $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, locationID, startAt, endAt)
	if err != nil {
		return nil, fmt.Errorf("list overlapping bookings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.TenantID, &b.LocationID, &b.CustomerID, &b.Status, &b.StartAt, &b.EndAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
