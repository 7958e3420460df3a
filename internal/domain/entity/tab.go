package entity

import "time"

// Estados del ciclo de vida de una comanda. closed es terminal.
const (
	TabStatusOpen   = "open"
	TabStatusClosed = "closed"
)

// Tipos de comanda; se fijan al abrir desde la política del identificador y no cambian.
const (
	TabTypePrepaid = "prepaid"
	TabTypeCredit  = "credit"
)

// Tab representa una comanda: una cuenta corriente anclada a un identificador
// que acumula consumos hasta su cierre. Existe a lo sumo una comanda abierta
// por (tenant, cliente) a la vez.
type Tab struct {
	ID             string
	TenantID       string
	BranchID       *string // nil = comanda sin sucursal asignada
	CustomerID     string
	IdentifierCode string
	Type           string // prepaid | credit
	Status         string // open | closed
	OpenedAt       time.Time
	ClosedAt       *time.Time
}

// IsOpen indica si la comanda admite mutaciones (ítems, participantes, cierre).
func (t *Tab) IsOpen() bool { return t.Status == TabStatusOpen }
