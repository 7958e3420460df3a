package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/venuehub/comanda-api/internal/application/cash"
	"github.com/venuehub/comanda-api/internal/application/customer"
	"github.com/venuehub/comanda-api/internal/application/tab"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

// Ensure TxRunner implements the application-layer runner ports.
var _ tab.TxRunner = (*TxRunner)(nil)
var _ cash.TxRunner = (*TxRunner)(nil)
var _ customer.BalanceTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSettlement inicia la transacción del cierre de comanda, ejecuta fn con
// repos atados a la tx y hace Commit o Rollback. Los SELECT FOR UPDATE de los
// repos dentro de fn serializan cierres que comparten cliente o caja.
func (r *TxRunner) RunSettlement(ctx context.Context, fn func(
	tabRepo repository.TabRepository,
	itemRepo repository.TabItemRepository,
	participantRepo repository.ParticipantRepository,
	customerRepo repository.CustomerRepository,
	registerRepo repository.CashRegisterRepository,
	paymentRepo repository.TabPaymentRepository,
	txnRepo repository.TransactionRepository,
	identifierRepo repository.IdentifierRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tabRepo := NewTabRepository(tx)
	itemRepo := NewTabItemRepository(tx)
	participantRepo := NewParticipantRepository(tx)
	customerRepo := NewCustomerRepository(tx)
	registerRepo := NewCashRegisterRepository(tx)
	paymentRepo := NewTabPaymentRepository(tx)
	txnRepo := NewTransactionRepository(tx)
	identifierRepo := NewIdentifierRepository(tx)

	if err := fn(tabRepo, itemRepo, participantRepo, customerRepo, registerRepo, paymentRepo, txnRepo, identifierRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunParticipants inicia la transacción del reemplazo de participantes
// (delete-all + insert-all atómico para un ítem).
func (r *TxRunner) RunParticipants(ctx context.Context, fn func(
	participantRepo repository.ParticipantRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewParticipantRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRegisterClose inicia la transacción del cierre de caja (totales
// congelados + cambio de estado en un solo commit).
func (r *TxRunner) RunRegisterClose(ctx context.Context, fn func(
	registerRepo repository.CashRegisterRepository,
	paymentRepo repository.TabPaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCashRegisterRepository(tx), NewTabPaymentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBalance inicia la transacción de recarga de saldo (update + asiento).
func (r *TxRunner) RunBalance(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	txnRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCustomerRepository(tx), NewTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
