package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeProducts struct {
	byID map[string]*entity.Product
	err  error
}

func newFakeProducts(ps ...*entity.Product) *fakeProducts {
	f := &fakeProducts{byID: map[string]*entity.Product{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeProducts) GetByStoreAndSKU(_ context.Context, storeID, sku string) (*entity.Product, error) {
	for _, p := range f.byID {
		if p.StoreID == storeID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProducts) ListByStore(_ context.Context, storeID string, _, _ int) ([]*entity.Product, error) {
	return f.filter(storeID, false), nil
}

func (f *fakeProducts) ListActive(_ context.Context, storeID string) ([]*entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(storeID, true), nil
}

func (f *fakeProducts) SetStatus(_ context.Context, id, status string) error {
	if p := f.byID[id]; p != nil {
		p.Status = status
	}
	return nil
}

func (f *fakeProducts) filter(storeID string, onlyActive bool) []*entity.Product {
	out := []*entity.Product{}
	for _, p := range f.byID {
		if storeID != "" && p.StoreID != storeID {
			continue
		}
		if onlyActive && !p.IsActive() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeMovements struct {
	mu      sync.Mutex
	list    []*entity.Movement
	err     error
	locks   int
	created int
}

func (f *fakeMovements) Create(_ context.Context, m *entity.Movement) error {
	f.list = append(f.list, m)
	f.created++
	return nil
}

func (f *fakeMovements) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range f.list {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMovements) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	out := []*entity.Movement{}
	for _, m := range f.list {
		if filter.StoreID != "" && m.StoreID != filter.StoreID {
			continue
		}
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMovements) LedgerEntries(_ context.Context, productID, storeID string) ([]ledger.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ms []*entity.Movement
	for _, m := range f.list {
		if m.ProductID == productID && (storeID == "" || m.StoreID == storeID) {
			ms = append(ms, m)
		}
	}
	return ledger.FromMovements(ms), nil
}

func (f *fakeMovements) LedgerEntriesByProduct(_ context.Context, storeID string) (map[string][]ledger.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string][]ledger.Entry{}
	for _, m := range f.list {
		if storeID != "" && m.StoreID != storeID {
			continue
		}
		out[m.ProductID] = append(out[m.ProductID], ledger.Entry{Type: m.Type, Quantity: m.Quantity, Cancelled: m.Cancelled})
	}
	return out, nil
}

func (f *fakeMovements) LockLedger(context.Context, string, string) error {
	f.locks++
	return nil
}

func (f *fakeMovements) SetVerified(_ context.Context, id string, verified bool) error {
	for _, m := range f.list {
		if m.ID == id {
			m.Verified = verified
		}
	}
	return nil
}

func (f *fakeMovements) MarkCancelled(_ context.Context, id string, at time.Time) error {
	for _, m := range f.list {
		if m.ID == id {
			m.Cancelled = true
			m.CancelledAt = &at
		}
	}
	return nil
}

// fakeTx serializa las funciones con un mutex, como lo haría el advisory lock.
type fakeTx struct {
	movs *fakeMovements
}

func (t fakeTx) Run(ctx context.Context, fn func(repository.MovementRepository) error) error {
	t.movs.mu.Lock()
	defer t.movs.mu.Unlock()
	snapshot := len(t.movs.list)
	if err := fn(t.movs); err != nil {
		t.movs.list = t.movs.list[:snapshot]
		return err
	}
	return nil
}

type fakeSuppliers struct {
	byID map[string]*entity.Supplier
}

func (f *fakeSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return f.byID[id], nil
}

func (f *fakeSuppliers) GetByStoreAndKey(context.Context, string, string) (*entity.Supplier, error) {
	return nil, nil
}

func (f *fakeSuppliers) Update(_ context.Context, s *entity.Supplier) error {
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSuppliers) ListByStore(context.Context, string, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}

type countingObserver struct {
	negative  int
	movements map[string]int
}

func (o *countingObserver) ObserveNegativeStock() { o.negative++ }

func (o *countingObserver) ObserveMovement(t string) {
	if o.movements == nil {
		o.movements = map[string]int{}
	}
	o.movements[t]++
}

func product(id, storeID string, stockMin, pct int64) *entity.Product {
	return &entity.Product{
		ID:              id,
		StoreID:         storeID,
		SKU:             "SKU-" + id,
		Name:            "Producto " + id,
		StockMin:        stockMin,
		AlertPercentage: pct,
		Status:          entity.ProductStatusActive,
	}
}

func mov(id, productID, storeID string, t entity.MovementType, q int64) *entity.Movement {
	return &entity.Movement{ID: id, ProductID: productID, StoreID: storeID, Type: t, Quantity: q, CreatedAt: time.Now()}
}
