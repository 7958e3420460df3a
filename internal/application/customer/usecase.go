// Package customer expone el almacén de saldos: recarga de créditos (punto de
// entrada del colaborador externo de top-up) y lectura del libro de asientos.
package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

// BalanceTxRunner ejecuta la recarga de saldo dentro de una transacción
// (actualización del saldo + asiento credit en un solo commit).
type BalanceTxRunner interface {
	RunBalance(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		txnRepo repository.TransactionRepository,
	) error) error
}

// UseCase casos de uso de clientes y su saldo.
type UseCase struct {
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
	txRunner     BalanceTxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(customerRepo repository.CustomerRepository, txnRepo repository.TransactionRepository, txRunner BalanceTxRunner) *UseCase {
	return &UseCase{customerRepo: customerRepo, txnRepo: txnRepo, txRunner: txRunner}
}

// AddCredits recarga el saldo prepago del cliente y registra el asiento credit.
func (uc *UseCase) AddCredits(ctx context.Context, tenantID, customerID string, in dto.AddCreditsRequest) (*dto.CustomerResponse, error) {
	if customerID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.CustomerResponse
	err := uc.txRunner.RunBalance(ctx, func(
		customerRepo repository.CustomerRepository,
		txnRepo repository.TransactionRepository,
	) error {
		c, err := customerRepo.GetForUpdate(customerID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.TenantID != tenantID {
			return domain.ErrForbidden
		}

		newCredits := c.Credits.Add(in.Amount)
		if err := customerRepo.UpdateCredits(c.ID, newCredits); err != nil {
			return err
		}

		description := in.Description
		if description == "" {
			description = "recarga de saldo"
		}
		txn := &entity.Transaction{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			CustomerID:  c.ID,
			Type:        entity.TransactionTypeCredit,
			Amount:      in.Amount,
			Description: description,
			CreatedAt:   time.Now(),
		}
		if err := txnRepo.Create(txn); err != nil {
			return err
		}

		out = &dto.CustomerResponse{
			ID:          c.ID,
			TenantID:    c.TenantID,
			Name:        c.Name,
			Credits:     newCredits,
			CreditLimit: c.CreditLimit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListTransactions devuelve los asientos del cliente, más recientes primero.
func (uc *UseCase) ListTransactions(ctx context.Context, tenantID, customerID string, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}

	page.DefaultPage()
	txns, err := uc.txnRepo.ListByCustomer(tenantID, customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, dto.TransactionResponse{
			ID:          t.ID,
			CustomerID:  t.CustomerID,
			Type:        t.Type,
			Amount:      t.Amount,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}
	return out, nil
}
