package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TabItemParticipant asigna a un cliente una fracción del costo de un ítem.
// Cuando un ítem de ubicación tiene participantes, sus montos registrados son
// los autoritativos en el cierre y reemplazan por completo la atribución al
// cliente principal de la comanda. El conjunto se reemplaza entero en cada
// escritura (delete-then-insert, last write wins).
type TabItemParticipant struct {
	ID         string
	TenantID   string
	TabItemID  string
	CustomerID string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}
