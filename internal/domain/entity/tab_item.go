package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TabItem es una línea de consumo inmutable de una comanda: producto, servicio
// o alquiler de ubicación por franja horaria. Total es el monto cobrable tal
// como lo entrega el caller; el motor no recalcula Quantity * UnitPrice
// (frontera de confianza explícita con el colaborador externo).
type TabItem struct {
	ID          string
	TenantID    string
	TabID       string
	ProductID   *string
	ServiceID   *string
	LocationID  *string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	StartAt     *time.Time // solo ítems de ubicación: inicio de la franja [StartAt, EndAt)
	EndAt       *time.Time
	CreatedAt   time.Time
}

// HasTimeWindow indica si el ítem reserva una ubicación en una franja horaria.
func (i *TabItem) HasTimeWindow() bool {
	return i.LocationID != nil && i.StartAt != nil && i.EndAt != nil
}
