package tab_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/application/tab"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

// memStore es el estado compartido de los fakes en memoria. El fakeTxRunner
// lo clona antes de cada transacción y lo restaura si el callback falla, para
// reproducir la semántica todo-o-nada del motor real.
type memStore struct {
	identifiers  map[string]*entity.Identifier // key: code
	tabs         map[string]*entity.Tab
	items        []*entity.TabItem
	participants []*entity.TabItemParticipant
	customers    map[string]*entity.Customer
	registers    map[string]*entity.CashRegister
	payments     []*entity.TabPayment
	txns         []*entity.Transaction
	bookings     []*entity.Booking
}

func newMemStore() *memStore {
	return &memStore{
		identifiers: make(map[string]*entity.Identifier),
		tabs:        make(map[string]*entity.Tab),
		customers:   make(map[string]*entity.Customer),
		registers:   make(map[string]*entity.CashRegister),
	}
}

func (s *memStore) clone() *memStore {
	cp := newMemStore()
	for k, v := range s.identifiers {
		c := *v
		cp.identifiers[k] = &c
	}
	for k, v := range s.tabs {
		c := *v
		cp.tabs[k] = &c
	}
	for k, v := range s.customers {
		c := *v
		cp.customers[k] = &c
	}
	for k, v := range s.registers {
		c := *v
		cp.registers[k] = &c
	}
	for _, v := range s.items {
		c := *v
		cp.items = append(cp.items, &c)
	}
	for _, v := range s.participants {
		c := *v
		cp.participants = append(cp.participants, &c)
	}
	for _, v := range s.payments {
		c := *v
		cp.payments = append(cp.payments, &c)
	}
	for _, v := range s.txns {
		c := *v
		cp.txns = append(cp.txns, &c)
	}
	for _, v := range s.bookings {
		c := *v
		cp.bookings = append(cp.bookings, &c)
	}
	return cp
}

func (s *memStore) restore(snap *memStore) { *s = *snap }

// ── identificadores ───────────────────────────────────────────────────────────

type fakeIdentifierRepo struct{ s *memStore }

func (r *fakeIdentifierRepo) Create(identifier *entity.Identifier) error {
	r.s.identifiers[identifier.Code] = identifier
	return nil
}

func (r *fakeIdentifierRepo) GetActiveByCode(tenantID, code string) (*entity.Identifier, error) {
	id, ok := r.s.identifiers[code]
	if !ok || !id.Active || id.TenantID != tenantID {
		return nil, nil
	}
	return id, nil
}

func (r *fakeIdentifierRepo) DeactivateByCode(tenantID, code string) error {
	if id, ok := r.s.identifiers[code]; ok && id.TenantID == tenantID {
		id.Active = false
		id.IsMaster = false
	}
	return nil
}

// ── comandas ──────────────────────────────────────────────────────────────────

type fakeTabRepo struct{ s *memStore }

func (r *fakeTabRepo) Create(t *entity.Tab) error {
	r.s.tabs[t.ID] = t
	return nil
}

func (r *fakeTabRepo) GetByID(id string) (*entity.Tab, error) {
	return r.s.tabs[id], nil
}

func (r *fakeTabRepo) GetOpenByCustomer(tenantID, customerID string) (*entity.Tab, error) {
	for _, t := range r.s.tabs {
		if t.TenantID == tenantID && t.CustomerID == customerID && t.IsOpen() {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTabRepo) GetForUpdate(id string) (*entity.Tab, error) {
	return r.s.tabs[id], nil
}

func (r *fakeTabRepo) Close(id string, closedAt time.Time) error {
	t := r.s.tabs[id]
	t.Status = entity.TabStatusClosed
	t.ClosedAt = &closedAt
	return nil
}

// ── líneas de consumo ─────────────────────────────────────────────────────────

type fakeItemRepo struct{ s *memStore }

func (r *fakeItemRepo) Create(item *entity.TabItem) error {
	r.s.items = append(r.s.items, item)
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.TabItem, error) {
	for _, it := range r.s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) ListByTab(tabID string) ([]*entity.TabItem, error) {
	var out []*entity.TabItem
	for _, it := range r.s.items {
		if it.TabID == tabID {
			out = append(out, it)
		}
	}
	return out, nil
}

// ── participantes ─────────────────────────────────────────────────────────────

type fakeParticipantRepo struct{ s *memStore }

func (r *fakeParticipantRepo) Create(p *entity.TabItemParticipant) error {
	r.s.participants = append(r.s.participants, p)
	return nil
}

func (r *fakeParticipantRepo) DeleteByItem(tabItemID string) error {
	var kept []*entity.TabItemParticipant
	for _, p := range r.s.participants {
		if p.TabItemID != tabItemID {
			kept = append(kept, p)
		}
	}
	r.s.participants = kept
	return nil
}

func (r *fakeParticipantRepo) ListByItem(tabItemID string) ([]*entity.TabItemParticipant, error) {
	var out []*entity.TabItemParticipant
	for _, p := range r.s.participants {
		if p.TabItemID == tabItemID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) ListByTab(tabID string) ([]*entity.TabItemParticipant, error) {
	itemIDs := make(map[string]bool)
	for _, it := range r.s.items {
		if it.TabID == tabID {
			itemIDs[it.ID] = true
		}
	}
	var out []*entity.TabItemParticipant
	for _, p := range r.s.participants {
		if itemIDs[p.TabItemID] {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── clientes ──────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.s.customers[id], nil
}

func (r *fakeCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.s.customers[id], nil
}

func (r *fakeCustomerRepo) UpdateCredits(id string, credits decimal.Decimal) error {
	r.s.customers[id].Credits = credits
	return nil
}

// ── caja ──────────────────────────────────────────────────────────────────────

type fakeRegisterRepo struct{ s *memStore }

func (r *fakeRegisterRepo) Create(register *entity.CashRegister) error {
	r.s.registers[register.ID] = register
	return nil
}

func (r *fakeRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	return r.s.registers[id], nil
}

func (r *fakeRegisterRepo) GetForUpdate(id string) (*entity.CashRegister, error) {
	return r.s.registers[id], nil
}

func sameBranch(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *fakeRegisterRepo) GetOpenByBranch(tenantID string, branchID *string) (*entity.CashRegister, error) {
	for _, reg := range r.s.registers {
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
	reg := r.s.registers[id]
	reg.Status = entity.RegisterStatusClosed
	reg.ClosingFloat = closingFloat
	reg.TotalCash = totals.Cash
	reg.TotalDebit = totals.Debit
	reg.TotalCredit = totals.Credit
	reg.TotalPix = totals.Pix
	reg.ClosedAt = &closedAt
	return nil
}

// ── pagos ─────────────────────────────────────────────────────────────────────

type fakePaymentRepo struct{ s *memStore }

func (r *fakePaymentRepo) Create(p *entity.TabPayment) error {
	r.s.payments = append(r.s.payments, p)
	return nil
}

func (r *fakePaymentRepo) ListByRegister(registerID string) ([]*entity.TabPayment, error) {
	var out []*entity.TabPayment
	for _, p := range r.s.payments {
		if p.CashRegisterID != nil && *p.CashRegisterID == registerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByTab(tabID string) ([]*entity.TabPayment, error) {
	var out []*entity.TabPayment
	for _, p := range r.s.payments {
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

// ── transacciones ─────────────────────────────────────────────────────────────

type fakeTxnRepo struct{ s *memStore }

func (r *fakeTxnRepo) Create(txn *entity.Transaction) error {
	r.s.txns = append(r.s.txns, txn)
	return nil
}

func (r *fakeTxnRepo) ListByCustomer(tenantID, customerID string, limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.s.txns {
		if t.TenantID == tenantID && t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	return out, nil
}

// ── reservas ──────────────────────────────────────────────────────────────────

type fakeBookingRepo struct{ s *memStore }

func (r *fakeBookingRepo) ListOverlapping(tenantID, locationID string, startAt, endAt time.Time) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.TenantID != tenantID || b.LocationID != locationID {
			continue
		}
		if b.Status != entity.BookingStatusPending && b.Status != entity.BookingStatusInProgress {
			continue
		}
		if b.StartAt.Before(endAt) && b.EndAt.After(startAt) {
			out = append(out, b)
		}
	}
	return out, nil
}

// ── tx runner ─────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	s *memStore
	// onSettlementStart simula escrituras concurrentes que commitean después
	// de las lecturas previas del caso de uso pero antes del lock de la
	// comanda. No participa del rollback: en la BD real ya están commiteadas.
	onSettlementStart func(s *memStore)
}

func (f *fakeTxRunner) RunSettlement(ctx context.Context, fn func(
	tabRepo repository.TabRepository,
	itemRepo repository.TabItemRepository,
	participantRepo repository.ParticipantRepository,
	customerRepo repository.CustomerRepository,
	registerRepo repository.CashRegisterRepository,
	paymentRepo repository.TabPaymentRepository,
	txnRepo repository.TransactionRepository,
	identifierRepo repository.IdentifierRepository,
) error) error {
	if f.onSettlementStart != nil {
		f.onSettlementStart(f.s)
	}
	snap := f.s.clone()
	err := fn(
		&fakeTabRepo{f.s},
		&fakeItemRepo{f.s},
		&fakeParticipantRepo{f.s},
		&fakeCustomerRepo{f.s},
		&fakeRegisterRepo{f.s},
		&fakePaymentRepo{f.s},
		&fakeTxnRepo{f.s},
		&fakeIdentifierRepo{f.s},
	)
	if err != nil {
		f.s.restore(snap)
	}
	return err
}

func (f *fakeTxRunner) RunParticipants(ctx context.Context, fn func(
	participantRepo repository.ParticipantRepository,
) error) error {
	snap := f.s.clone()
	err := fn(&fakeParticipantRepo{f.s})
	if err != nil {
		f.s.restore(snap)
	}
	return err
}

var _ tab.TxRunner = (*fakeTxRunner)(nil)
