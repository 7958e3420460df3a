package repository

import "github.com/venuehub/comanda-api/internal/domain/entity"

// TransactionRepository define el puerto del libro financiero append-only.
type TransactionRepository interface {
	Create(txn *entity.Transaction) error
	ListByCustomer(tenantID, customerID string, limit, offset int) ([]*entity.Transaction, error)
}
