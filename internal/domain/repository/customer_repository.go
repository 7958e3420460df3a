package repository

import (
	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetForUpdate bloquea la fila del cliente (SELECT FOR UPDATE). El cierre lo
	// usa para que dos liquidaciones concurrentes que comparten un cliente no
	// pasen ambas la validación de saldo antes de debitar.
	GetForUpdate(id string) (*entity.Customer, error)
	// UpdateCredits fija el saldo prepago resultante de un débito o recarga.
	UpdateCredits(id string, credits decimal.Decimal) error
}
