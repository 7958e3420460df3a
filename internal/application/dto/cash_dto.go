package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenRegisterRequest body para POST /api/cash/open.
type OpenRegisterRequest struct {
	BranchID     *string         `json:"branch_id,omitempty"`
	OpeningFloat decimal.Decimal `json:"opening_float"`
	Notes        string          `json:"notes,omitempty"`
}

// CloseRegisterRequest body para POST /api/cash/close.
type CloseRegisterRequest struct {
	CashRegisterID string           `json:"cash_register_id" validate:"required,uuid"`
	ClosingFloat   *decimal.Decimal `json:"closing_float,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// RegisterTotalsResponse acumulados por método de pago.
type RegisterTotalsResponse struct {
	Cash   decimal.Decimal `json:"cash"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
	Pix    decimal.Decimal `json:"pix"`
}

// CashRegisterResponse salida de una caja.
type CashRegisterResponse struct {
	ID           string           `json:"id"`
	TenantID     string           `json:"tenant_id"`
	BranchID     *string          `json:"branch_id,omitempty"`
	Status       string           `json:"status"`
	OpeningFloat decimal.Decimal  `json:"opening_float"`
	ClosingFloat *decimal.Decimal `json:"closing_float,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	OpenedAt     time.Time        `json:"opened_at"`
	ClosedAt     *time.Time       `json:"closed_at,omitempty"`
}

// RegisterStateResponse salida de GET /api/cash/open y POST /api/cash/close:
// la caja (null en el GET si no hay abierta) y sus totales por método.
type RegisterStateResponse struct {
	Data   *CashRegisterResponse  `json:"data"`
	Totals RegisterTotalsResponse `json:"totals"`
}
