package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCreditsRequest body para POST /api/customers/:id/credits (recarga de saldo).
type AddCreditsRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// CustomerResponse salida de un cliente con su saldo y límite.
type CustomerResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	Name        string          `json:"name"`
	Credits     decimal.Decimal `json:"credits"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// TransactionResponse asiento del libro financiero.
type TransactionResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
