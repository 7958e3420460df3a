package tab

import (
	"context"

	"github.com/venuehub/comanda-api/internal/domain/repository"
)

// TxRunner ejecuta funciones dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el commit todo-o-nada del motor:
// cualquier error dentro del callback revierte todos los escritos.
type TxRunner interface {
	// RunSettlement abre la transacción del cierre de comanda: la lectura de
	// ítems y participantes, los saldos, la caja, los pagos, los asientos, el
	// estado de la comanda y el identificador van en un solo commit.
	RunSettlement(ctx context.Context, fn func(
		tabRepo repository.TabRepository,
		itemRepo repository.TabItemRepository,
		participantRepo repository.ParticipantRepository,
		customerRepo repository.CustomerRepository,
		registerRepo repository.CashRegisterRepository,
		paymentRepo repository.TabPaymentRepository,
		txnRepo repository.TransactionRepository,
		identifierRepo repository.IdentifierRepository,
	) error) error

	// RunParticipants abre la transacción del reemplazo de participantes de un
	// ítem (delete-all + insert-all como "set" atómico).
	RunParticipants(ctx context.Context, fn func(
		participantRepo repository.ParticipantRepository,
	) error) error
}

// ReceiptPDFGenerator genera la representación imprimible del cierre.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data *ReceiptData) ([]byte, error)
}
