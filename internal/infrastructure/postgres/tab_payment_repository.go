package postgres

import (
	"context"
	"fmt"

	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

var _ repository.TabPaymentRepository = (*TabPaymentRepo)(nil)

// TabPaymentRepo implementación de TabPaymentRepository (usable con pool o tx).
type TabPaymentRepo struct {
	q Querier
}

// NewTabPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTabPaymentRepository(q Querier) *TabPaymentRepo {
	return &TabPaymentRepo{q: q}
}

// Create persiste un pago de cierre contra la caja.
func (r *TabPaymentRepo) Create(payment *entity.TabPayment) error {
	query := `
		INSERT INTO tab_payments (id, tenant_id, tab_id, cash_register_id, method, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.TenantID, payment.TabID, payment.CashRegisterID,
		payment.Method, payment.Amount, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tab payment: %w", err)
	}
	return nil
}

// ListByRegister lista los pagos registrados contra una caja.
func (r *TabPaymentRepo) ListByRegister(registerID string) ([]*entity.TabPayment, error) {
	query := `
		SELECT id, tenant_id, tab_id, cash_register_id, method, amount, created_at
		FROM tab_payments WHERE cash_register_id = $1 ORDER BY created_at, id`
	return r.list(query, registerID)
}

// ListByTab lista los pagos del cierre de una comanda.
func (r *TabPaymentRepo) ListByTab(tabID string) ([]*entity.TabPayment, error) {
	query := `
		SELECT id, tenant_id, tab_id, cash_register_id, method, amount, created_at
		FROM tab_payments WHERE tab_id = $1 ORDER BY created_at, id`
	return r.list(query, tabID)
}

func (r *TabPaymentRepo) list(query string, arg any) ([]*entity.TabPayment, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list tab payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.TabPayment
	for rows.Next() {
		var p entity.TabPayment
		if err := rows.Scan(&p.ID, &p.TenantID, &p.TabID, &p.CashRegisterID, &p.Method, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tab payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// TotalsByRegister agrega los pagos de la caja por método con FILTER;
// los métodos sin pagos quedan en cero vía COALESCE.
func (r *TabPaymentRepo) TotalsByRegister(registerID string) (entity.RegisterTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE method = 'cash'), 0),
			COALESCE(SUM(amount) FILTER (WHERE method = 'debit'), 0),
			COALESCE(SUM(amount) FILTER (WHERE method = 'credit'), 0),
			COALESCE(SUM(amount) FILTER (WHERE method = 'pix'), 0)
		FROM tab_payments WHERE cash_register_id = $1`
	var t entity.RegisterTotals
	err := r.q.QueryRow(context.Background(), query, registerID).Scan(&t.Cash, &t.Debit, &t.Credit, &t.Pix)
	if err != nil {
		return entity.RegisterTotals{}, fmt.Errorf("totals by register: %w", err)
	}
	return t, nil
}
