package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

var _ repository.TabRepository = (*TabRepo)(nil)

// TabRepo implementación de TabRepository (usable con pool o tx).
type TabRepo struct {
	q Querier
}

// NewTabRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTabRepository(q Querier) *TabRepo {
	return &TabRepo{q: q}
}

const tabColumns = `id, tenant_id, branch_id, customer_id, identifier_code, type, status, opened_at, closed_at`

func scanTab(row pgx.Row) (*entity.Tab, error) {
	var t entity.Tab
	err := row.Scan(
		&t.ID, &t.TenantID, &t.BranchID, &t.CustomerID, &t.IdentifierCode,
		&t.Type, &t.Status, &t.OpenedAt, &t.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una nueva comanda. El índice único parcial
// (tenant_id, customer_id) WHERE status = 'open' impide dos comandas abiertas
// del mismo cliente ante aperturas concurrentes.
func (r *TabRepo) Create(tab *entity.Tab) error {
	query := `
		INSERT INTO tabs (` + tabColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tab.ID, tab.TenantID, tab.BranchID, tab.CustomerID, tab.IdentifierCode,
		tab.Type, tab.Status, tab.OpenedAt, tab.ClosedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert tab: %w", err)
	}
	return nil
}

// GetByID obtiene una comanda por ID.
func (r *TabRepo) GetByID(id string) (*entity.Tab, error) {
	query := `SELECT ` + tabColumns + ` FROM tabs WHERE id = $1`
	t, err := scanTab(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tab: %w", err)
	}
	return t, nil
}

// GetOpenByCustomer devuelve la comanda abierta del cliente, nil si no hay.
func (r *TabRepo) GetOpenByCustomer(tenantID, customerID string) (*entity.Tab, error) {
	query := `
		SELECT ` + tabColumns + ` FROM tabs
		WHERE tenant_id = $1 AND customer_id = $2 AND status = 'open'`
	t, err := scanTab(r.q.QueryRow(context.Background(), query, tenantID, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open tab: %w", err)
	}
	return t, nil
}

// GetForUpdate obtiene la comanda bloqueando la fila (SELECT FOR UPDATE).
func (r *TabRepo) GetForUpdate(id string) (*entity.Tab, error) {
	query := `SELECT ` + tabColumns + ` FROM tabs WHERE id = $1 FOR UPDATE`
	t, err := scanTab(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tab for update: %w", err)
	}
	return t, nil
}

// Close marca la comanda como cerrada. Solo transiciona desde open: la cláusula
// WHERE garantiza que nunca haya dos cierres terminales.
func (r *TabRepo) Close(id string, closedAt time.Time) error {
	query := `UPDATE tabs SET status = 'closed', closed_at = $2 WHERE id = $1 AND status = 'open'`
	tag, err := r.q.Exec(context.Background(), query, id, closedAt)
	if err != nil {
		return fmt.Errorf("close tab: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}
