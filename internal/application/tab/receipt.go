package tab

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
	"github.com/venuehub/comanda-api/internal/domain/settlement"
)

// ReceiptCharge cargo por cliente para el comprobante impreso.
type ReceiptCharge struct {
	CustomerID   string
	CustomerName string
	Amount       decimal.Decimal
}

// ReceiptData datos del comprobante de cierre de una comanda.
type ReceiptData struct {
	Tab      *entity.Tab
	Items    []*entity.TabItem
	Charges  []ReceiptCharge
	Payments []*entity.TabPayment
	Total    decimal.Decimal
}

// ReceiptUseCase genera el comprobante PDF del cierre de una comanda.
// Solo aplica a comandas cerradas: el desglose se reconstruye con la misma
// agregación del motor, sobre filas ya inmutables.
type ReceiptUseCase struct {
	tabRepo         repository.TabRepository
	itemRepo        repository.TabItemRepository
	participantRepo repository.ParticipantRepository
	paymentRepo     repository.TabPaymentRepository
	customerRepo    repository.CustomerRepository
	generator       ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	tabRepo repository.TabRepository,
	itemRepo repository.TabItemRepository,
	participantRepo repository.ParticipantRepository,
	paymentRepo repository.TabPaymentRepository,
	customerRepo repository.CustomerRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		tabRepo:         tabRepo,
		itemRepo:        itemRepo,
		participantRepo: participantRepo,
		paymentRepo:     paymentRepo,
		customerRepo:    customerRepo,
		generator:       generator,
	}
}

// Generate devuelve los bytes del PDF del comprobante.
func (uc *ReceiptUseCase) Generate(ctx context.Context, tenantID, tabID string) ([]byte, error) {
	t, err := uc.tabRepo.GetByID(tabID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	if t.IsOpen() {
		return nil, domain.ErrInvalidState
	}

	items, err := uc.itemRepo.ListByTab(t.ID)
	if err != nil {
		return nil, err
	}
	participants, err := uc.participantRepo.ListByTab(t.ID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByTab(t.ID)
	if err != nil {
		return nil, err
	}

	charges := settlement.Aggregate(t, items, participants)
	data := &ReceiptData{
		Tab:      t,
		Items:    items,
		Payments: payments,
		Total:    charges.Total(),
	}
	for _, customerID := range charges.CustomerIDs() {
		name := customerID
		if c, err := uc.customerRepo.GetByID(customerID); err == nil && c != nil {
			name = c.Name
		}
		data.Charges = append(data.Charges, ReceiptCharge{
			CustomerID:   customerID,
			CustomerName: name,
			Amount:       charges.Amount(customerID),
		})
	}

	return uc.generator.GenerateReceiptPDF(ctx, data)
}
