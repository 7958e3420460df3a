package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

var _ repository.IdentifierRepository = (*IdentifierRepo)(nil)

// IdentifierRepo implementación de IdentifierRepository (usable con pool o tx).
type IdentifierRepo struct {
	q Querier
}

// NewIdentifierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIdentifierRepository(q Querier) *IdentifierRepo {
	return &IdentifierRepo{q: q}
}

// Create persiste un nuevo identificador. El índice único parcial
// (tenant_id, code) WHERE active rechaza códigos duplicados activos.
func (r *IdentifierRepo) Create(identifier *entity.Identifier) error {
	query := `
		INSERT INTO identifiers (id, tenant_id, customer_id, type, code, tab_policy, is_master, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		identifier.ID, identifier.TenantID, identifier.CustomerID, identifier.Type, identifier.Code,
		identifier.TabPolicy, identifier.IsMaster, identifier.Active, identifier.CreatedAt, identifier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert identifier: %w", err)
	}
	return nil
}

// GetActiveByCode resuelve el identificador activo del código en el tenant.
func (r *IdentifierRepo) GetActiveByCode(tenantID, code string) (*entity.Identifier, error) {
	query := `
		SELECT id, tenant_id, customer_id, type, code, tab_policy, is_master, active, created_at, updated_at
		FROM identifiers WHERE tenant_id = $1 AND code = $2 AND active = true`
	var i entity.Identifier
	err := r.q.QueryRow(context.Background(), query, tenantID, code).Scan(
		&i.ID, &i.TenantID, &i.CustomerID, &i.Type, &i.Code, &i.TabPolicy,
		&i.IsMaster, &i.Active, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identifier: %w", err)
	}
	return &i, nil
}

// DeactivateByCode libera el código: active=false, is_master=false.
// Update condicional de una sola fila; no es error que ya esté inactivo.
func (r *IdentifierRepo) DeactivateByCode(tenantID, code string) error {
	query := `
		UPDATE identifiers SET active = false, is_master = false, updated_at = now()
		WHERE tenant_id = $1 AND code = $2 AND active = true`
	_, err := r.q.Exec(context.Background(), query, tenantID, code)
	if err != nil {
		return fmt.Errorf("deactivate identifier: %w", err)
	}
	return nil
}
