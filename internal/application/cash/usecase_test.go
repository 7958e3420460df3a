package cash_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/comanda-api/internal/application/cash"
	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

const tenantA = "tenant-a"

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeRegisterRepo struct {
	registers map[string]*entity.CashRegister
}

func newFakeRegisterRepo() *fakeRegisterRepo {
	return &fakeRegisterRepo{registers: make(map[string]*entity.CashRegister)}
}

func (r *fakeRegisterRepo) Create(register *entity.CashRegister) error {
	r.registers[register.ID] = register
	return nil
}

func (r *fakeRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	return r.registers[id], nil
}

func (r *fakeRegisterRepo) GetForUpdate(id string) (*entity.CashRegister, error) {
	return r.registers[id], nil
}

func sameBranch(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *fakeRegisterRepo) GetOpenByBranch(tenantID string, branchID *string) (*entity.CashRegister, error) {
	for _, reg := range r.registers {
		if reg.TenantID == tenantID && reg.Status == entity.RegisterStatusOpen && sameBranch(reg.BranchID, branchID) {
			return reg, nil
		}
	}
	return nil, nil
}

func (r *fakeRegisterRepo) GetOpenByBranchForUpdate(tenantID string, branchID *string) (*entity.CashRegister, error) {
	return r.GetOpenByBranch(tenantID, branchID)
}

func (r *fakeRegisterRepo) Close(id string, closingFloat *decimal.Decimal, totals entity.RegisterTotals, closedAt time.Time) error {
	reg := r.registers[id]
	reg.Status = entity.RegisterStatusClosed
	reg.ClosingFloat = closingFloat
	reg.TotalCash = totals.Cash
	reg.TotalDebit = totals.Debit
	reg.TotalCredit = totals.Credit
	reg.TotalPix = totals.Pix
	reg.ClosedAt = &closedAt
	return nil
}

type fakePaymentRepo struct {
	payments []*entity.TabPayment
}

func (r *fakePaymentRepo) Create(p *entity.TabPayment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) ListByRegister(registerID string) ([]*entity.TabPayment, error) {
	var out []*entity.TabPayment
	for _, p := range r.payments {
		if p.CashRegisterID != nil && *p.CashRegisterID == registerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByTab(tabID string) ([]*entity.TabPayment, error) {
	var out []*entity.TabPayment
	for _, p := range r.payments {
		if p.TabID == tabID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) TotalsByRegister(registerID string) (entity.RegisterTotals, error) {
	totals := entity.RegisterTotals{
		Cash: decimal.Zero, Debit: decimal.Zero, Credit: decimal.Zero, Pix: decimal.Zero,
	}
	list, _ := r.ListByRegister(registerID)
	for _, p := range list {
		switch p.Method {
		case entity.PaymentMethodCash:
			totals.Cash = totals.Cash.Add(p.Amount)
		case entity.PaymentMethodDebit:
			totals.Debit = totals.Debit.Add(p.Amount)
		case entity.PaymentMethodCredit:
			totals.Credit = totals.Credit.Add(p.Amount)
		case entity.PaymentMethodPix:
			totals.Pix = totals.Pix.Add(p.Amount)
		}
	}
	return totals, nil
}

func addPayment(payments *fakePaymentRepo, registerID, method, amount string) {
	payments.payments = append(payments.payments, &entity.TabPayment{
		ID: method + "-" + amount, TenantID: tenantA, TabID: "tab-x",
		CashRegisterID: &registerID, Method: method, Amount: d(amount),
	})
}

type fakeCashTxRunner struct {
	registers *fakeRegisterRepo
	payments  *fakePaymentRepo
	// onStart simula un pago de cierre de comanda que commitea justo cuando
	// arranca la transacción del cierre de caja, antes del lock de la fila.
	onStart func()
}

func (f *fakeCashTxRunner) RunRegisterClose(ctx context.Context, fn func(
	registerRepo repository.CashRegisterRepository,
	paymentRepo repository.TabPaymentRepository,
) error) error {
	if f.onStart != nil {
		f.onStart()
	}
	return fn(f.registers, f.payments)
}

var _ cash.TxRunner = (*fakeCashTxRunner)(nil)

func newRegisterUC(registers *fakeRegisterRepo, payments *fakePaymentRepo) *cash.RegisterUseCase {
	return cash.NewRegisterUseCase(registers, payments, &fakeCashTxRunner{registers: registers, payments: payments})
}

// ──────────────────────────────────────────────────────────────────────────────
// Apertura
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_CreaLaCajaConFondo(t *testing.T) {
	registers := newFakeRegisterRepo()
	uc := newRegisterUC(registers, &fakePaymentRepo{})

	out, err := uc.Open(context.Background(), tenantA, dto.OpenRegisterRequest{
		OpeningFloat: d("100"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RegisterStatusOpen, out.Status)
	assert.True(t, out.OpeningFloat.Equal(d("100")))
	assert.Len(t, registers.registers, 1)
}

func TestOpen_FondoNegativo_InvalidInput(t *testing.T) {
	uc := newRegisterUC(newFakeRegisterRepo(), &fakePaymentRepo{})
	_, err := uc.Open(context.Background(), tenantA, dto.OpenRegisterRequest{
		OpeningFloat: d("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una sola caja abierta por (tenant, sucursal): la segunda apertura falla.
func TestOpen_SegundaApertura_Conflicto(t *testing.T) {
	registers := newFakeRegisterRepo()
	uc := newRegisterUC(registers, &fakePaymentRepo{})
	ctx := context.Background()

	_, err := uc.Open(ctx, tenantA, dto.OpenRegisterRequest{OpeningFloat: d("100")})
	require.NoError(t, err)

	_, err = uc.Open(ctx, tenantA, dto.OpenRegisterRequest{OpeningFloat: d("50")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Sucursales distintas tienen cajas independientes.
func TestOpen_OtraSucursal_Permitida(t *testing.T) {
	registers := newFakeRegisterRepo()
	uc := newRegisterUC(registers, &fakePaymentRepo{})
	ctx := context.Background()
	b1, b2 := "sucursal-1", "sucursal-2"

	_, err := uc.Open(ctx, tenantA, dto.OpenRegisterRequest{BranchID: &b1, OpeningFloat: d("100")})
	require.NoError(t, err)
	_, err = uc.Open(ctx, tenantA, dto.OpenRegisterRequest{BranchID: &b2, OpeningFloat: d("100")})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Arqueo en caliente
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrent_SinCajaAbierta_DataNull(t *testing.T) {
	uc := newRegisterUC(newFakeRegisterRepo(), &fakePaymentRepo{})

	out, err := uc.Current(context.Background(), tenantA, nil)
	require.NoError(t, err)

	assert.Nil(t, out.Data, "data debe ser null sin caja abierta")
	assert.True(t, out.Totals.Cash.IsZero())
	assert.True(t, out.Totals.Pix.IsZero())
}

func TestCurrent_ConCajaAbierta_DevuelveTotalesAlMomento(t *testing.T) {
	registers := newFakeRegisterRepo()
	payments := &fakePaymentRepo{}
	uc := newRegisterUC(registers, payments)
	ctx := context.Background()

	opened, err := uc.Open(ctx, tenantA, dto.OpenRegisterRequest{OpeningFloat: d("100")})
	require.NoError(t, err)
	addPayment(payments, opened.ID, entity.PaymentMethodCash, "80")
	addPayment(payments, opened.ID, entity.PaymentMethodCash, "20")
	addPayment(payments, opened.ID, entity.PaymentMethodPix, "45.50")

	out, err := uc.Current(ctx, tenantA, nil)
	require.NoError(t, err)

	require.NotNil(t, out.Data)
	assert.Equal(t, opened.ID, out.Data.ID)
	assert.True(t, out.Totals.Cash.Equal(d("100")))
	assert.True(t, out.Totals.Pix.Equal(d("45.50")))
	assert.True(t, out.Totals.Debit.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_PersisteAcumuladosFinales(t *testing.T) {
	registers := newFakeRegisterRepo()
	payments := &fakePaymentRepo{}
	uc := newRegisterUC(registers, payments)
	ctx := context.Background()

	opened, err := uc.Open(ctx, tenantA, dto.OpenRegisterRequest{OpeningFloat: d("100")})
	require.NoError(t, err)
	addPayment(payments, opened.ID, entity.PaymentMethodCash, "250")
	addPayment(payments, opened.ID, entity.PaymentMethodDebit, "75")

	declared := d("340")
	out, err := uc.Close(ctx, tenantA, dto.CloseRegisterRequest{
		CashRegisterID: opened.ID,
		ClosingFloat:   &declared,
	})
	require.NoError(t, err)

	require.NotNil(t, out.Data)
	assert.Equal(t, entity.RegisterStatusClosed, out.Data.Status)
	require.NotNil(t, out.Data.ClosingFloat)
	assert.True(t, out.Data.ClosingFloat.Equal(d("340")))
	assert.True(t, out.Totals.Cash.Equal(d("250")))
	assert.True(t, out.Totals.Debit.Equal(d("75")))
	assert.NotNil(t, registers.registers[opened.ID].ClosedAt)
}

// Un pago que commitea justo cuando arranca el cierre de caja entra igual a
// los acumulados: los totales se agregan y el estado cambia en la misma
// transacción, con la fila de la caja bloqueada.
func TestClose_PagoConcurrenteAlCerrar_EntraAlTotal(t *testing.T) {
	registers := newFakeRegisterRepo()
	payments := &fakePaymentRepo{}
	runner := &fakeCashTxRunner{registers: registers, payments: payments}
	uc := cash.NewRegisterUseCase(registers, payments, runner)
	ctx := context.Background()

	opened, err := uc.Open(ctx, tenantA, dto.OpenRegisterRequest{OpeningFloat: d("100")})
	require.NoError(t, err)
	addPayment(payments, opened.ID, entity.PaymentMethodCash, "250")
	runner.onStart = func() {
		addPayment(payments, opened.ID, entity.PaymentMethodPix, "30")
	}

	out, err := uc.Close(ctx, tenantA, dto.CloseRegisterRequest{CashRegisterID: opened.ID})
	require.NoError(t, err)

	assert.True(t, out.Totals.Cash.Equal(d("250")))
	assert.True(t, out.Totals.Pix.Equal(d("30")), "el pago tardío queda en los acumulados congelados")
	assert.True(t, registers.registers[opened.ID].TotalPix.Equal(d("30")))
	assert.Equal(t, entity.RegisterStatusClosed, registers.registers[opened.ID].Status)
}

func TestClose_CajaYaCerrada_EstadoInvalido(t *testing.T) {
	registers := newFakeRegisterRepo()
	uc := newRegisterUC(registers, &fakePaymentRepo{})
	ctx := context.Background()

	opened, err := uc.Open(ctx, tenantA, dto.OpenRegisterRequest{OpeningFloat: d("100")})
	require.NoError(t, err)
	_, err = uc.Close(ctx, tenantA, dto.CloseRegisterRequest{CashRegisterID: opened.ID})
	require.NoError(t, err)

	_, err = uc.Close(ctx, tenantA, dto.CloseRegisterRequest{CashRegisterID: opened.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestClose_CajaInexistente_NotFound(t *testing.T) {
	uc := newRegisterUC(newFakeRegisterRepo(), &fakePaymentRepo{})
	_, err := uc.Close(context.Background(), tenantA, dto.CloseRegisterRequest{CashRegisterID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClose_CajaDeOtroTenant_Forbidden(t *testing.T) {
	registers := newFakeRegisterRepo()
	uc := newRegisterUC(registers, &fakePaymentRepo{})
	ctx := context.Background()

	opened, err := uc.Open(ctx, tenantA, dto.OpenRegisterRequest{OpeningFloat: d("100")})
	require.NoError(t, err)

	_, err = uc.Close(ctx, "otro-tenant", dto.CloseRegisterRequest{CashRegisterID: opened.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
