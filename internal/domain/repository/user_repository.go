package repository

import "github.com/venuehub/comanda-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios operadores.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndTenant(email, tenantID string) (*entity.User, error)
}

// TenantRepository define el puerto de persistencia para tenants.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
}
