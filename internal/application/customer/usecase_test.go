package customer_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/comanda-api/internal/application/customer"
	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

const (
	tenantA = "tenant-a"
	anaID   = "cliente-ana"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) UpdateCredits(id string, credits decimal.Decimal) error {
	r.customers[id].Credits = credits
	return nil
}

type fakeTxnRepo struct {
	txns []*entity.Transaction
}

func (r *fakeTxnRepo) Create(txn *entity.Transaction) error {
	r.txns = append(r.txns, txn)
	return nil
}

func (r *fakeTxnRepo) ListByCustomer(tenantID, customerID string, limit, offset int) ([]*entity.Transaction, error) {
	var matched []*entity.Transaction
	for _, t := range r.txns {
		if t.TenantID == tenantID && t.CustomerID == customerID {
			matched = append(matched, t)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

type fakeBalanceRunner struct {
	customers *fakeCustomerRepo
	txns      *fakeTxnRepo
}

func (f *fakeBalanceRunner) RunBalance(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	txnRepo repository.TransactionRepository,
) error) error {
	return fn(f.customers, f.txns)
}

func fixture() (*fakeCustomerRepo, *fakeTxnRepo, *customer.UseCase) {
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		anaID: {ID: anaID, TenantID: tenantA, Name: "Ana", Credits: d("20")},
	}}
	txns := &fakeTxnRepo{}
	uc := customer.NewUseCase(customers, txns, &fakeBalanceRunner{customers, txns})
	return customers, txns, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Recarga de saldo
// ──────────────────────────────────────────────────────────────────────────────

func TestAddCredits_SumaYRegistraAsiento(t *testing.T) {
	customers, txns, uc := fixture()

	out, err := uc.AddCredits(context.Background(), tenantA, anaID, dto.AddCreditsRequest{
		Amount: d("80"),
	})
	require.NoError(t, err)

	assert.True(t, out.Credits.Equal(d("100")))
	assert.True(t, customers.customers[anaID].Credits.Equal(d("100")))

	require.Len(t, txns.txns, 1)
	assert.Equal(t, entity.TransactionTypeCredit, txns.txns[0].Type)
	assert.True(t, txns.txns[0].Amount.Equal(d("80")))
	assert.Equal(t, "recarga de saldo", txns.txns[0].Description)
}

func TestAddCredits_DescripcionPersonalizada(t *testing.T) {
	_, txns, uc := fixture()

	_, err := uc.AddCredits(context.Background(), tenantA, anaID, dto.AddCreditsRequest{
		Amount:      d("50"),
		Description: "promo de apertura",
	})
	require.NoError(t, err)
	require.Len(t, txns.txns, 1)
	assert.Equal(t, "promo de apertura", txns.txns[0].Description)
}

func TestAddCredits_MontoNoPositivo_InvalidInput(t *testing.T) {
	_, _, uc := fixture()

	_, err := uc.AddCredits(context.Background(), tenantA, anaID, dto.AddCreditsRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddCredits(context.Background(), tenantA, anaID, dto.AddCreditsRequest{Amount: d("-10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddCredits_ClienteInexistente_NotFound(t *testing.T) {
	_, _, uc := fixture()
	_, err := uc.AddCredits(context.Background(), tenantA, "no-existe", dto.AddCreditsRequest{Amount: d("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddCredits_ClienteDeOtroTenant_Forbidden(t *testing.T) {
	_, _, uc := fixture()
	_, err := uc.AddCredits(context.Background(), "otro-tenant", anaID, dto.AddCreditsRequest{Amount: d("10")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de asientos
// ──────────────────────────────────────────────────────────────────────────────

func TestListTransactions_DevuelveLosAsientosDelCliente(t *testing.T) {
	_, txns, uc := fixture()
	txns.txns = append(txns.txns,
		&entity.Transaction{ID: "t1", TenantID: tenantA, CustomerID: anaID, Type: entity.TransactionTypeCredit, Amount: d("50")},
		&entity.Transaction{ID: "t2", TenantID: tenantA, CustomerID: anaID, Type: entity.TransactionTypeDebit, Amount: d("30")},
		&entity.Transaction{ID: "t3", TenantID: tenantA, CustomerID: "otro", Type: entity.TransactionTypeDebit, Amount: d("5")},
	)

	out, err := uc.ListTransactions(context.Background(), tenantA, anaID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "t1", out[0].ID)
	assert.Equal(t, "t2", out[1].ID)
}

func TestListTransactions_PaginacionConDefaults(t *testing.T) {
	_, txns, uc := fixture()
	for i := 0; i < 25; i++ {
		txns.txns = append(txns.txns, &entity.Transaction{
			ID: string(rune('a' + i)), TenantID: tenantA, CustomerID: anaID,
			Type: entity.TransactionTypeCredit, Amount: d("1"),
		})
	}

	out, err := uc.ListTransactions(context.Background(), tenantA, anaID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out, 20, "el límite por defecto es 20")
}

func TestListTransactions_ClienteInexistente_NotFound(t *testing.T) {
	_, _, uc := fixture()
	_, err := uc.ListTransactions(context.Background(), tenantA, "no-existe", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
