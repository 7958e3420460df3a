package repository

import "github.com/venuehub/comanda-api/internal/domain/entity"

// IdentifierRepository define el puerto de persistencia para Identifier.
type IdentifierRepository interface {
	Create(identifier *entity.Identifier) error
	// GetActiveByCode resuelve el identificador activo de un código dentro del
	// tenant. (nil, nil) si no hay match activo.
	GetActiveByCode(tenantID, code string) (*entity.Identifier, error)
	// DeactivateByCode marca active=false e is_master=false para el código
	// activo del tenant, liberándolo para re-vincularse a otro cliente.
	// No es error que el código ya esté inactivo.
	DeactivateByCode(tenantID, code string) error
}
