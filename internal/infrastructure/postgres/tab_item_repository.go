package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

var _ repository.TabItemRepository = (*TabItemRepo)(nil)

// TabItemRepo implementación de TabItemRepository (usable con pool o tx).
// Las líneas son append-only: solo insert y lecturas.
type TabItemRepo struct {
	q Querier
}

// NewTabItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTabItemRepository(q Querier) *TabItemRepo {
	return &TabItemRepo{q: q}
}

const tabItemColumns = `id, tenant_id, tab_id, product_id, service_id, location_id, description,
		quantity, unit_price, total, start_at, end_at, created_at`

func scanTabItem(row pgx.Row) (*entity.TabItem, error) {
	var i entity.TabItem
	var description *string
	err := row.Scan(
		&i.ID, &i.TenantID, &i.TabID, &i.ProductID, &i.ServiceID, &i.LocationID, &description,
		&i.Quantity, &i.UnitPrice, &i.Total, &i.StartAt, &i.EndAt, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		i.Description = *description
	}
	return &i, nil
}

// Create persiste una línea de consumo tal como llega (Total incluido).
func (r *TabItemRepo) Create(item *entity.TabItem) error {
	query := `
		INSERT INTO tab_items (` + tabItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TenantID, item.TabID, item.ProductID, item.ServiceID, item.LocationID,
		nullIfEmpty(item.Description), item.Quantity, item.UnitPrice, item.Total,
		item.StartAt, item.EndAt, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tab item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *TabItemRepo) GetByID(id string) (*entity.TabItem, error) {
	query := `SELECT ` + tabItemColumns + ` FROM tab_items WHERE id = $1`
	item, err := scanTabItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tab item: %w", err)
	}
	return item, nil
}

// ListByTab lista las líneas de la comanda en orden de inserción.
func (r *TabItemRepo) ListByTab(tabID string) ([]*entity.TabItem, error) {
	query := `SELECT ` + tabItemColumns + ` FROM tab_items WHERE tab_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, tabID)
	if err != nil {
		return nil, fmt.Errorf("list tab items: %w", err)
	}
	defer rows.Close()
	var list []*entity.TabItem
	for rows.Next() {
		item, err := scanTabItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tab item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
