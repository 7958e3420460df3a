package postgres

import (
	"context"
	"fmt"

	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del libro financiero append-only
// (usable con pool o tx). Solo insert y lecturas, nunca update ni delete.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste un asiento.
func (r *TransactionRepo) Create(txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, tenant_id, customer_id, type, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.TenantID, txn.CustomerID, txn.Type, txn.Amount,
		nullIfEmpty(txn.Description), txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByCustomer lista los asientos del cliente, más recientes primero.
func (r *TransactionRepo) ListByCustomer(tenantID, customerID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT id, tenant_id, customer_id, type, amount, COALESCE(description, ''), created_at
		FROM transactions
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.TenantID, &t.CustomerID, &t.Type, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
