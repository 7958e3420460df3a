package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenTabRequest body para POST /api/tabs/open.
// Identifier es el código leído del tag (NFC/barcode/QR/manual); la política
// prepaid/credit la impone el identificador, nunca el caller.
type OpenTabRequest struct {
	BranchID   *string `json:"branch_id,omitempty"`
	Identifier string  `json:"identifier" validate:"required"`
}

// TabResponse salida de una comanda.
type TabResponse struct {
	ID             string     `json:"id"`
	TenantID       string     `json:"tenant_id"`
	BranchID       *string    `json:"branch_id,omitempty"`
	CustomerID     string     `json:"customer_id"`
	IdentifierCode string     `json:"identifier_code"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	OpenedAt       time.Time  `json:"opened_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

// AddItemRequest body para POST /api/tabs/items.
// Total es el monto cobrable tal cual; el motor no recalcula
// Quantity * UnitPrice (contrato con el colaborador de catálogo/precios).
type AddItemRequest struct {
	TabID       string          `json:"tab_id" validate:"required,uuid"`
	ProductID   *string         `json:"product_id,omitempty"`
	ServiceID   *string         `json:"service_id,omitempty"`
	LocationID  *string         `json:"location_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	StartAt     *time.Time      `json:"start_at,omitempty"`
	EndAt       *time.Time      `json:"end_at,omitempty"`
}

// TabItemResponse salida de una línea de consumo.
type TabItemResponse struct {
	ID          string          `json:"id"`
	TabID       string          `json:"tab_id"`
	ProductID   *string         `json:"product_id,omitempty"`
	ServiceID   *string         `json:"service_id,omitempty"`
	LocationID  *string         `json:"location_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	StartAt     *time.Time      `json:"start_at,omitempty"`
	EndAt       *time.Time      `json:"end_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ParticipantInput un participante dentro de SetParticipantsRequest.
type ParticipantInput struct {
	CustomerID string          `json:"customer_id" validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"`
}

// SetParticipantsRequest body para POST /api/tabs/items/participants.
// Reemplaza el conjunto completo de participantes del ítem (no es un merge).
type SetParticipantsRequest struct {
	TabItemID    string             `json:"tab_item_id" validate:"required,uuid"`
	Participants []ParticipantInput `json:"participants"`
}

// SetParticipantsResponse eco del conjunto aplicado.
type SetParticipantsResponse struct {
	TabItemID    string             `json:"tab_item_id"`
	Participants []ParticipantInput `json:"participants"`
}

// PaymentInput un pago del cierre de una comanda de crédito.
type PaymentInput struct {
	Method string          `json:"method" validate:"required,oneof=cash debit credit pix"`
	Amount decimal.Decimal `json:"amount"`
}

// CloseTabRequest body para POST /api/tabs/close.
// Payments solo aplica a comandas de crédito; en prepago es un error.
type CloseTabRequest struct {
	TabID    string         `json:"tab_id" validate:"required,uuid"`
	Payments []PaymentInput `json:"payments,omitempty"`
}

// ChargeResponse cargo consolidado de un cliente en el cierre.
type ChargeResponse struct {
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// CloseTabResponse resultado del cierre: desglose por cliente y total.
type CloseTabResponse struct {
	ID      string           `json:"id"`
	Status  string           `json:"status"`
	Charges []ChargeResponse `json:"charges"`
	Total   decimal.Decimal  `json:"total"`
}

// TabDetailResponse salida de GET /api/tabs/:id.
type TabDetailResponse struct {
	Tab          TabResponse           `json:"tab"`
	Items        []TabItemResponse     `json:"items"`
	Participants []ParticipantResponse `json:"participants"`
}

// ParticipantResponse participante persistido de un ítem.
type ParticipantResponse struct {
	ID         string          `json:"id"`
	TabItemID  string          `json:"tab_item_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
}
