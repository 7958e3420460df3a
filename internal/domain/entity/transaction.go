package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento en el libro de transacciones.
const (
	TransactionTypeDebit  = "debit"
	TransactionTypeCredit = "credit"
	TransactionTypeSplit  = "split"
)

// Transaction es un asiento financiero append-only: un registro por cliente
// cargado en cada cierre de comanda, y uno por cada recarga de saldo.
type Transaction struct {
	ID          string
	TenantID    string
	CustomerID  string
	Type        string // debit | credit | split
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}
