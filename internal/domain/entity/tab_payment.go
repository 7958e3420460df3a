package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TabPayment es un pago registrado contra la caja abierta al cerrar una
// comanda de crédito. Las comandas prepago nunca generan pagos: se liquidan
// debitando el saldo del cliente.
type TabPayment struct {
	ID             string
	TenantID       string
	TabID          string
	CashRegisterID *string
	Method         string // ver constantes PaymentMethod*
	Amount         decimal.Decimal
	CreatedAt      time.Time
}
