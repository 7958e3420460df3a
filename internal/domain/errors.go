package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("estado inválido para la operación")
	ErrInsufficientFunds  = errors.New("saldo insuficiente")
)

// InsufficientFundsError identifica al cliente que no alcanza a cubrir su cargo
// (saldo prepago insuficiente o límite de crédito excedido).
type InsufficientFundsError struct {
	CustomerID string
	Available  decimal.Decimal
	Required   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("saldo insuficiente para el cliente %s: disponible %s, requerido %s",
		e.CustomerID, e.Available.StringFixed(2), e.Required.StringFixed(2))
}

// Unwrap permite errors.Is(err, ErrInsufficientFunds).
func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// MissingCustomerError indica que un cliente con cargos en el cierre no existe.
// El cierre completo se aborta sin efectos.
type MissingCustomerError struct {
	CustomerID string
}

func (e *MissingCustomerError) Error() string {
	return fmt.Sprintf("cliente %s no encontrado durante el cierre", e.CustomerID)
}

// Unwrap permite errors.Is(err, ErrNotFound).
func (e *MissingCustomerError) Unwrap() error { return ErrNotFound }

// PaymentMismatchError indica que la suma de pagos no coincide con el total a cobrar.
type PaymentMismatchError struct {
	Expected decimal.Decimal
	Received decimal.Decimal
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("los pagos (%s) no cubren el total de la comanda (%s)",
		e.Received.StringFixed(2), e.Expected.StringFixed(2))
}

// Unwrap permite errors.Is(err, ErrInvalidState).
func (e *PaymentMismatchError) Unwrap() error { return ErrInvalidState }
