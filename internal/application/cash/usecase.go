// Package cash implementa el libro de caja: apertura de sesión con fondo,
// arqueo en caliente y cierre con acumulados finales por método de pago.
package cash

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

// TxRunner ejecuta el cierre de caja dentro de una transacción: los totales
// congelados y el cambio de estado salen del mismo commit, con la fila de la
// caja bloqueada para que ningún cierre de comanda inserte pagos entre medio.
type TxRunner interface {
	RunRegisterClose(ctx context.Context, fn func(
		registerRepo repository.CashRegisterRepository,
		paymentRepo repository.TabPaymentRepository,
	) error) error
}

// RegisterUseCase casos de uso de la caja registradora.
type RegisterUseCase struct {
	registerRepo repository.CashRegisterRepository
	paymentRepo  repository.TabPaymentRepository
	txRunner     TxRunner
}

// NewRegisterUseCase construye el caso de uso.
func NewRegisterUseCase(registerRepo repository.CashRegisterRepository, paymentRepo repository.TabPaymentRepository, txRunner TxRunner) *RegisterUseCase {
	return &RegisterUseCase{registerRepo: registerRepo, paymentRepo: paymentRepo, txRunner: txRunner}
}

// Open abre una caja para la sucursal con su fondo inicial. Falla con
// ErrConflict si ya hay una caja abierta para esa (tenant, sucursal); el
// índice único parcial de la tabla cubre la carrera de dos aperturas
// simultáneas.
func (uc *RegisterUseCase) Open(ctx context.Context, tenantID string, in dto.OpenRegisterRequest) (*dto.CashRegisterResponse, error) {
	if in.OpeningFloat.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.registerRepo.GetOpenByBranch(tenantID, in.BranchID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	register := &entity.CashRegister{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		BranchID:     in.BranchID,
		Status:       entity.RegisterStatusOpen,
		OpeningFloat: in.OpeningFloat,
		Notes:        in.Notes,
		OpenedAt:     time.Now(),
	}
	if err := uc.registerRepo.Create(register); err != nil {
		return nil, err
	}
	return toRegisterResponse(register), nil
}

// Close cierra la caja: agrega los TabPayment por método y persiste los
// acumulados finales junto con el efectivo declarado.
func (uc *RegisterUseCase) Close(ctx context.Context, tenantID string, in dto.CloseRegisterRequest) (*dto.RegisterStateResponse, error) {
	if in.CashRegisterID == "" {
		return nil, domain.ErrInvalidInput
	}

	var register *entity.CashRegister
	var totals entity.RegisterTotals
	now := time.Now()

	// Totales y cierre en la misma transacción, con la fila bloqueada: un
	// pago que commitea mientras se arquea entraría al total o esperaría al
	// lock, nunca quedaría fuera de los acumulados congelados.
	err := uc.txRunner.RunRegisterClose(ctx, func(
		registerRepo repository.CashRegisterRepository,
		paymentRepo repository.TabPaymentRepository,
	) error {
		var err error
		register, err = registerRepo.GetForUpdate(in.CashRegisterID)
		if err != nil {
			return err
		}
		if register == nil {
			return domain.ErrNotFound
		}
		if register.TenantID != tenantID {
			return domain.ErrForbidden
		}
		if register.Status != entity.RegisterStatusOpen {
			return domain.ErrInvalidState
		}

		totals, err = paymentRepo.TotalsByRegister(register.ID)
		if err != nil {
			return err
		}
		return registerRepo.Close(register.ID, in.ClosingFloat, totals, now)
	})
	if err != nil {
		return nil, err
	}

	register.Status = entity.RegisterStatusClosed
	register.ClosingFloat = in.ClosingFloat
	register.TotalCash = totals.Cash
	register.TotalDebit = totals.Debit
	register.TotalCredit = totals.Credit
	register.TotalPix = totals.Pix
	register.ClosedAt = &now
	if in.Notes != "" {
		register.Notes = in.Notes
	}

	return &dto.RegisterStateResponse{
		Data:   toRegisterResponse(register),
		Totals: toTotalsResponse(totals),
	}, nil
}

// Current devuelve la caja abierta de la sucursal (data null si no hay) con
// sus totales al momento, para el arqueo del operador antes del cierre formal.
func (uc *RegisterUseCase) Current(ctx context.Context, tenantID string, branchID *string) (*dto.RegisterStateResponse, error) {
	register, err := uc.registerRepo.GetOpenByBranch(tenantID, branchID)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return &dto.RegisterStateResponse{
			Data:   nil,
			Totals: toTotalsResponse(entity.RegisterTotals{}),
		}, nil
	}
	totals, err := uc.paymentRepo.TotalsByRegister(register.ID)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterStateResponse{
		Data:   toRegisterResponse(register),
		Totals: toTotalsResponse(totals),
	}, nil
}

func toRegisterResponse(r *entity.CashRegister) *dto.CashRegisterResponse {
	return &dto.CashRegisterResponse{
		ID:           r.ID,
		TenantID:     r.TenantID,
		BranchID:     r.BranchID,
		Status:       r.Status,
		OpeningFloat: r.OpeningFloat,
		ClosingFloat: r.ClosingFloat,
		Notes:        r.Notes,
		OpenedAt:     r.OpenedAt,
		ClosedAt:     r.ClosedAt,
	}
}

func toTotalsResponse(t entity.RegisterTotals) dto.RegisterTotalsResponse {
	return dto.RegisterTotalsResponse{
		Cash:   t.Cash,
		Debit:  t.Debit,
		Credit: t.Credit,
		Pix:    t.Pix,
	}
}
