package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del venue. Credits es el saldo prepago,
// debitado únicamente por el motor de liquidación y por la recarga externa.
// CreditLimit es el techo pospago: se verifica en el cierre de comandas de
// crédito pero nunca se debita (la caja absorbe los pagos). Cero = sin límite.
type Customer struct {
	ID          string
	TenantID    string
	Name        string
	Document    string
	Email       string
	Phone       string
	Credits     decimal.Decimal
	CreditLimit decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
