package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/domain/entity"
)

// CashRegisterRepository define el puerto de persistencia para la caja.
type CashRegisterRepository interface {
	Create(register *entity.CashRegister) error
	GetByID(id string) (*entity.CashRegister, error)
	// GetForUpdate bloquea la fila de la caja (SELECT FOR UPDATE). El cierre de
	// caja la toma para que los totales congelados y el cambio de estado salgan
	// del mismo commit, sin pagos colándose entre medio.
	GetForUpdate(id string) (*entity.CashRegister, error)
	// GetOpenByBranch devuelve la caja abierta de la sucursal (branchID nil =
	// caja del tenant sin sucursal), (nil, nil) si no hay ninguna abierta.
	GetOpenByBranch(tenantID string, branchID *string) (*entity.CashRegister, error)
	// GetOpenByBranchForUpdate igual que GetOpenByBranch pero bloqueando la fila,
	// para que el cierre de comanda y el cierre de caja no se crucen.
	GetOpenByBranchForUpdate(tenantID string, branchID *string) (*entity.CashRegister, error)
	// Close cierra la caja persistiendo el efectivo declarado y los acumulados
	// finales por método.
	Close(id string, closingFloat *decimal.Decimal, totals entity.RegisterTotals, closedAt time.Time) error
}

// TabPaymentRepository define el puerto para los pagos de cierre.
type TabPaymentRepository interface {
	Create(payment *entity.TabPayment) error
	ListByRegister(registerID string) ([]*entity.TabPayment, error)
	ListByTab(tabID string) ([]*entity.TabPayment, error)
	// TotalsByRegister agrega los pagos de la caja por método; métodos sin pagos
	// quedan en cero. Usable con la caja aún abierta (arqueo en caliente).
	TotalsByRegister(registerID string) (entity.RegisterTotals, error)
}
