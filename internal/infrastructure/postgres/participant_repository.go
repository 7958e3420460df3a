package postgres

import (
	"context"
	"fmt"

	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

var _ repository.ParticipantRepository = (*ParticipantRepo)(nil)

// ParticipantRepo implementación de ParticipantRepository (usable con pool o tx).
// El reemplazo delete+insert debe correr dentro de una tx del caller.
type ParticipantRepo struct {
	q Querier
}

// NewParticipantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewParticipantRepository(q Querier) *ParticipantRepo {
	return &ParticipantRepo{q: q}
}

// Create persiste un participante de ítem.
func (r *ParticipantRepo) Create(p *entity.TabItemParticipant) error {
	query := `
		INSERT INTO tab_item_participants (id, tenant_id, tab_item_id, customer_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.TenantID, p.TabItemID, p.CustomerID, p.Amount, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

// DeleteByItem borra el conjunto completo de participantes del ítem.
func (r *ParticipantRepo) DeleteByItem(tabItemID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM tab_item_participants WHERE tab_item_id = $1`, tabItemID)
	if err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}
	return nil
}

// ListByItem lista los participantes de un ítem.
func (r *ParticipantRepo) ListByItem(tabItemID string) ([]*entity.TabItemParticipant, error) {
	query := `
		SELECT id, tenant_id, tab_item_id, customer_id, amount, created_at
		FROM tab_item_participants WHERE tab_item_id = $1 ORDER BY created_at, id`
	return r.list(query, tabItemID)
}

// ListByTab lista los participantes de todos los ítems de la comanda.
func (r *ParticipantRepo) ListByTab(tabID string) ([]*entity.TabItemParticipant, error) {
	query := `
		SELECT p.id, p.tenant_id, p.tab_item_id, p.customer_id, p.amount, p.created_at
		FROM tab_item_participants p
		JOIN tab_items i ON i.id = p.tab_item_id
		WHERE i.tab_id = $1 ORDER BY p.created_at, p.id`
	return r.list(query, tabID)
}

func (r *ParticipantRepo) list(query string, arg any) ([]*entity.TabItemParticipant, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()
	var list []*entity.TabItemParticipant
	for rows.Next() {
		var p entity.TabItemParticipant
		if err := rows.Scan(&p.ID, &p.TenantID, &p.TabItemID, &p.CustomerID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
