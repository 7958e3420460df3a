package repository

import (
	"time"

	"github.com/venuehub/comanda-api/internal/domain/entity"
)

// TabRepository define el puerto de persistencia para Tab.
type TabRepository interface {
	Create(tab *entity.Tab) error
	GetByID(id string) (*entity.Tab, error)
	// GetOpenByCustomer devuelve la comanda abierta del cliente, (nil, nil) si no hay.
	// Soporta la apertura idempotente: taps repetidos devuelven la misma comanda.
	GetOpenByCustomer(tenantID, customerID string) (*entity.Tab, error)
	// GetForUpdate bloquea la fila de la comanda (SELECT FOR UPDATE) dentro del
	// cierre para impedir dos cierres concurrentes de la misma comanda.
	GetForUpdate(id string) (*entity.Tab, error)
	// Close marca la comanda como cerrada con su timestamp terminal.
	Close(id string, closedAt time.Time) error
}
