package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo implementación de CashRegisterRepository (usable con pool o tx).
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

const registerColumns = `id, tenant_id, branch_id, status, opening_float, closing_float,
		total_cash, total_debit, total_credit, total_pix, notes, opened_at, closed_at`

func scanRegister(row pgx.Row) (*entity.CashRegister, error) {
	var c entity.CashRegister
	var notes *string
	err := row.Scan(
		&c.ID, &c.TenantID, &c.BranchID, &c.Status, &c.OpeningFloat, &c.ClosingFloat,
		&c.TotalCash, &c.TotalDebit, &c.TotalCredit, &c.TotalPix, &notes, &c.OpenedAt, &c.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		c.Notes = *notes
	}
	return &c, nil
}

// Create persiste una nueva caja. El índice único parcial
// (tenant_id, COALESCE(branch_id, '')) WHERE status = 'open' impide dos cajas
// abiertas en la misma sucursal ante aperturas concurrentes.
func (r *CashRegisterRepo) Create(register *entity.CashRegister) error {
	query := `
		INSERT INTO cash_registers (id, tenant_id, branch_id, status, opening_float,
			total_cash, total_debit, total_credit, total_pix, notes, opened_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, 0, 0, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		register.ID, register.TenantID, register.BranchID, register.Status,
		register.OpeningFloat, nullIfEmpty(register.Notes), register.OpenedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert cash register: %w", err)
	}
	return nil
}

// GetByID obtiene una caja por ID.
func (r *CashRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE id = $1`
	c, err := scanRegister(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash register: %w", err)
	}
	return c, nil
}

// GetForUpdate igual que GetByID pero bloqueando la fila. El cierre de caja la
// usa para que ningún cierre de comanda inserte pagos entre la agregación de
// totales y el cambio de estado.
func (r *CashRegisterRepo) GetForUpdate(id string) (*entity.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE id = $1 FOR UPDATE`
	c, err := scanRegister(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash register for update: %w", err)
	}
	return c, nil
}

// GetOpenByBranch devuelve la caja abierta de la sucursal, nil si no hay.
func (r *CashRegisterRepo) GetOpenByBranch(tenantID string, branchID *string) (*entity.CashRegister, error) {
	return r.getOpenByBranch(tenantID, branchID, false)
}

// GetOpenByBranchForUpdate igual que GetOpenByBranch pero con SELECT FOR UPDATE.
func (r *CashRegisterRepo) GetOpenByBranchForUpdate(tenantID string, branchID *string) (*entity.CashRegister, error) {
	return r.getOpenByBranch(tenantID, branchID, true)
}

func (r *CashRegisterRepo) getOpenByBranch(tenantID string, branchID *string, forUpdate bool) (*entity.CashRegister, error) {
	query := `
		SELECT ` + registerColumns + ` FROM cash_registers
		WHERE tenant_id = $1 AND branch_id IS NOT DISTINCT FROM $2 AND status = 'open'`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	c, err := scanRegister(r.q.QueryRow(context.Background(), query, tenantID, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open cash register: %w", err)
	}
	return c, nil
}

// Close cierra la caja persistiendo el efectivo declarado y los acumulados.
// Solo transiciona desde open.
func (r *CashRegisterRepo) Close(id string, closingFloat *decimal.Decimal, totals entity.RegisterTotals, closedAt time.Time) error {
	query := `
		UPDATE cash_registers
		SET status = 'closed', closing_float = $2,
		    total_cash = $3, total_debit = $4, total_credit = $5, total_pix = $6,
		    closed_at = $7
		WHERE id = $1 AND status = 'open'`
	tag, err := r.q.Exec(context.Background(), query,
		id, closingFloat, totals.Cash, totals.Debit, totals.Credit, totals.Pix, closedAt,
	)
	if err != nil {
		return fmt.Errorf("close cash register: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}
