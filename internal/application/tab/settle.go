package tab

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
	"github.com/venuehub/comanda-api/internal/domain/settlement"
)

// paymentTolerance es la diferencia absoluta admitida entre la suma de pagos
// y el total a cobrar en comandas de crédito (0.01 unidades de moneda).
var paymentTolerance = decimal.New(1, -2)

// SettleTabUseCase es el motor de liquidación: agrega los cargos de la
// comanda, valida contra saldo prepago o límite de crédito y ejecuta el commit
// atómico (débitos, pagos, asientos, cierre y liberación del identificador).
// Toda falla de validación deja el estado intacto; la transacción solo escribe
// después de que todas las verificaciones pasan, con las filas de cliente,
// caja y comanda bloqueadas (SELECT FOR UPDATE) para evitar que dos cierres
// concurrentes validen contra el mismo saldo antes de debitar.
type SettleTabUseCase struct {
	tabRepo  repository.TabRepository
	txRunner TxRunner
}

// NewSettleTabUseCase construye el motor de liquidación.
func NewSettleTabUseCase(tabRepo repository.TabRepository, txRunner TxRunner) *SettleTabUseCase {
	return &SettleTabUseCase{tabRepo: tabRepo, txRunner: txRunner}
}

// Close ejecuta el cierre de la comanda y devuelve el desglose por cliente.
func (uc *SettleTabUseCase) Close(ctx context.Context, tenantID string, in dto.CloseTabRequest) (*dto.CloseTabResponse, error) {
	if in.TabID == "" {
		return nil, domain.ErrInvalidInput
	}

	t, err := uc.tabRepo.GetByID(in.TabID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	if !t.IsOpen() {
		return nil, domain.ErrInvalidState
	}

	// Validaciones puras sobre los pagos, antes de tocar la BD. El contraste
	// contra el total a cobrar se hace recién dentro de la transacción, con
	// los ítems leídos bajo el lock de la comanda.
	paid := decimal.Zero
	switch t.Type {
	case entity.TabTypePrepaid:
		if len(in.Payments) > 0 {
			return nil, fmt.Errorf("%w: una comanda prepago no admite pagos de caja", domain.ErrInvalidState)
		}
	case entity.TabTypeCredit:
		for _, p := range in.Payments {
			if !entity.ValidPaymentMethod(p.Method) || !p.Amount.GreaterThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			paid = paid.Add(p.Amount)
		}
	default:
		return nil, domain.ErrInvalidState
	}

	var charges *settlement.ChargeSet
	var total decimal.Decimal

	// Commit atómico: agregación de cargos, validaciones de saldo/límite/caja
	// y todos los escritos ocurren con las filas bloqueadas; cualquier error
	// revierte todo.
	err = uc.txRunner.RunSettlement(ctx, func(
		tabRepo repository.TabRepository,
		itemRepo repository.TabItemRepository,
		participantRepo repository.ParticipantRepository,
		customerRepo repository.CustomerRepository,
		registerRepo repository.CashRegisterRepository,
		paymentRepo repository.TabPaymentRepository,
		txnRepo repository.TransactionRepository,
		identifierRepo repository.IdentifierRepository,
	) error {
		// Re-verificar el estado con la fila bloqueada: un cierre concurrente
		// pudo ganar entre la lectura inicial y esta transacción.
		locked, err := tabRepo.GetForUpdate(t.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if !locked.IsOpen() {
			return domain.ErrInvalidState
		}

		// Leer los consumos con la comanda ya bloqueada: un ítem agregado por
		// un AddItem concurrente que alcanzó a commitear entra al cierre;
		// después del lock ya no puede colarse ninguno.
		items, err := itemRepo.ListByTab(t.ID)
		if err != nil {
			return err
		}
		participants, err := participantRepo.ListByTab(t.ID)
		if err != nil {
			return err
		}
		charges = settlement.Aggregate(locked, items, participants)
		total = charges.Total()

		if locked.Type == entity.TabTypeCredit {
			if total.Sub(paid).Abs().GreaterThan(paymentTolerance) {
				return &domain.PaymentMismatchError{Expected: total, Received: paid}
			}
		}

		// Resolver y bloquear cada cliente cargado, en orden determinista.
		customers := make(map[string]*entity.Customer, charges.Len())
		for _, customerID := range charges.CustomerIDs() {
			c, err := customerRepo.GetForUpdate(customerID)
			if err != nil {
				return err
			}
			if c == nil {
				return &domain.MissingCustomerError{CustomerID: customerID}
			}
			customers[customerID] = c
		}

		now := time.Now()
		description := fmt.Sprintf("cierre de comanda %s", t.ID)

		switch t.Type {
		case entity.TabTypeCredit:
			// El límite se verifica contra el cliente principal; cero = sin límite.
			primary := customers[t.CustomerID]
			if primary == nil {
				primary, err = customerRepo.GetForUpdate(t.CustomerID)
				if err != nil {
					return err
				}
				if primary == nil {
					return &domain.MissingCustomerError{CustomerID: t.CustomerID}
				}
			}
			if primary.CreditLimit.GreaterThan(decimal.Zero) && total.GreaterThan(primary.CreditLimit) {
				return &domain.InsufficientFundsError{
					CustomerID: primary.ID,
					Available:  primary.CreditLimit,
					Required:   total,
				}
			}

			register, err := registerRepo.GetOpenByBranchForUpdate(tenantID, t.BranchID)
			if err != nil {
				return err
			}
			if register == nil {
				return fmt.Errorf("%w: no hay caja abierta para registrar los pagos", domain.ErrInvalidState)
			}

			for _, p := range in.Payments {
				payment := &entity.TabPayment{
					ID:             uuid.New().String(),
					TenantID:       tenantID,
					TabID:          t.ID,
					CashRegisterID: &register.ID,
					Method:         p.Method,
					Amount:         p.Amount,
					CreatedAt:      now,
				}
				if err := paymentRepo.Create(payment); err != nil {
					return err
				}
			}

		case entity.TabTypePrepaid:
			// Validar todos los saldos antes de debitar; el primero que no
			// alcanza aborta el cierre completo.
			for _, customerID := range charges.CustomerIDs() {
				c := customers[customerID]
				charge := charges.Amount(customerID)
				if c.Credits.LessThan(charge) {
					return &domain.InsufficientFundsError{
						CustomerID: customerID,
						Available:  c.Credits,
						Required:   charge,
					}
				}
			}
			for _, customerID := range charges.CustomerIDs() {
				c := customers[customerID]
				charge := charges.Amount(customerID)
				if err := customerRepo.UpdateCredits(customerID, c.Credits.Sub(charge)); err != nil {
					return err
				}
			}
		}

		// Un asiento de débito por cliente cargado, en orden de cargos.
		for _, customerID := range charges.CustomerIDs() {
			txn := &entity.Transaction{
				ID:          uuid.New().String(),
				TenantID:    tenantID,
				CustomerID:  customerID,
				Type:        entity.TransactionTypeDebit,
				Amount:      charges.Amount(customerID),
				Description: description,
				CreatedAt:   now,
			}
			if err := txnRepo.Create(txn); err != nil {
				return err
			}
		}

		if err := tabRepo.Close(t.ID, now); err != nil {
			return err
		}
		// Liberar el código para que pueda re-vincularse a otro cliente.
		return identifierRepo.DeactivateByCode(tenantID, t.IdentifierCode)
	})
	if err != nil {
		return nil, err
	}

	out := &dto.CloseTabResponse{
		ID:      t.ID,
		Status:  entity.TabStatusClosed,
		Charges: make([]dto.ChargeResponse, 0, charges.Len()),
		Total:   total,
	}
	for _, customerID := range charges.CustomerIDs() {
		out.Charges = append(out.Charges, dto.ChargeResponse{
			CustomerID: customerID,
			Amount:     charges.Amount(customerID),
		})
	}
	return out, nil
}
