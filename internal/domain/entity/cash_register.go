package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una caja registradora.
const (
	RegisterStatusOpen   = "open"
	RegisterStatusClosed = "closed"
)

// Métodos de pago aceptados en el cierre de comandas de crédito.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodDebit  = "debit"
	PaymentMethodCredit = "credit"
	PaymentMethodPix    = "pix"
)

// ValidPaymentMethod valida un método de pago recibido del caller.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodDebit, PaymentMethodCredit, PaymentMethodPix:
		return true
	}
	return false
}

// CashRegister es la sesión de caja de una sucursal: fondo de apertura y
// acumulados por método de pago. A lo sumo una caja abierta por (tenant, sucursal).
type CashRegister struct {
	ID           string
	TenantID     string
	BranchID     *string
	Status       string // open | closed
	OpeningFloat decimal.Decimal
	ClosingFloat *decimal.Decimal
	TotalCash    decimal.Decimal
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
	TotalPix     decimal.Decimal
	Notes        string
	OpenedAt     time.Time
	ClosedAt     *time.Time
}

// RegisterTotals acumulados por método de pago de una caja (TabPayment sumados).
// Los métodos sin pagos quedan en cero.
type RegisterTotals struct {
	Cash   decimal.Decimal
	Debit  decimal.Decimal
	Credit decimal.Decimal
	Pix    decimal.Decimal
}
