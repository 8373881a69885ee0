package usecase_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type memProducts struct{ byID map[string]*entity.Product }

func newMemProducts() *memProducts { return &memProducts{byID: map[string]*entity.Product{}} }

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.byID[p.ID] = p
	return nil
}
func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.byID[id], nil
}
func (m *memProducts) GetByStoreAndSKU(_ context.Context, storeID, sku string) (*entity.Product, error) {
	for _, p := range m.byID {
		if p.StoreID == storeID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.byID[p.ID] = p
	return nil
}
func (m *memProducts) ListByStore(_ context.Context, storeID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.byID {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}
func (m *memProducts) ListActive(ctx context.Context, storeID string) ([]*entity.Product, error) {
	return m.ListByStore(ctx, storeID, 0, 0)
}
func (m *memProducts) SetStatus(_ context.Context, id, status string) error {
	if p := m.byID[id]; p != nil {
		p.Status = status
	}
	return nil
}

type memMovements struct{ list []*entity.Movement }

func (m *memMovements) Create(_ context.Context, mv *entity.Movement) error {
	m.list = append(m.list, mv)
	return nil
}
func (m *memMovements) GetByID(context.Context, string) (*entity.Movement, error) { return nil, nil }
func (m *memMovements) List(context.Context, repository.MovementFilter) ([]*entity.Movement, error) {
	return m.list, nil
}
func (m *memMovements) LedgerEntries(_ context.Context, productID, storeID string) ([]ledger.Entry, error) {
	var ms []*entity.Movement
	for _, mv := range m.list {
		if mv.ProductID == productID && (storeID == "" || mv.StoreID == storeID) {
			ms = append(ms, mv)
		}
	}
	return ledger.FromMovements(ms), nil
}
func (m *memMovements) LedgerEntriesByProduct(_ context.Context, storeID string) (map[string][]ledger.Entry, error) {
	out := map[string][]ledger.Entry{}
	for _, mv := range m.list {
		if storeID == "" || mv.StoreID == storeID {
			out[mv.ProductID] = append(out[mv.ProductID], ledger.Entry{Type: mv.Type, Quantity: mv.Quantity, Cancelled: mv.Cancelled})
		}
	}
	return out, nil
}
func (m *memMovements) LockLedger(context.Context, string, string) error       { return nil }
func (m *memMovements) SetVerified(context.Context, string, bool) error        { return nil }
func (m *memMovements) MarkCancelled(context.Context, string, time.Time) error { return nil }

type memCategories struct{ byID map[string]*entity.Category }

func newMemCategories() *memCategories { return &memCategories{byID: map[string]*entity.Category{}} }

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	m.byID[c.ID] = c
	return nil
}
func (m *memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	if c, ok := m.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}
func (m *memCategories) GetBySibling(_ context.Context, storeID string, parentID *string, key string) (*entity.Category, error) {
	for _, c := range m.byID {
		if c.StoreID != storeID || c.NameKey != key {
			continue
		}
		if (c.ParentID == nil) != (parentID == nil) {
			continue
		}
		if c.ParentID != nil && *c.ParentID != *parentID {
			continue
		}
		return c, nil
	}
	return nil, nil
}
func (m *memCategories) Update(_ context.Context, c *entity.Category) error {
	m.byID[c.ID] = c
	return nil
}
func (m *memCategories) ListByStore(_ context.Context, storeID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range m.byID {
		if c.StoreID == storeID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (m *memCategories) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memSuppliers struct{ byID map[string]*entity.Supplier }

func newMemSuppliers() *memSuppliers { return &memSuppliers{byID: map[string]*entity.Supplier{}} }

func (m *memSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	m.byID[s.ID] = s
	return nil
}
func (m *memSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return m.byID[id], nil
}
func (m *memSuppliers) GetByStoreAndKey(_ context.Context, storeID, key string) (*entity.Supplier, error) {
	for _, s := range m.byID {
		if s.StoreID == storeID && s.NameKey == key {
			return s, nil
		}
	}
	return nil, nil
}
func (m *memSuppliers) Update(_ context.Context, s *entity.Supplier) error {
	m.byID[s.ID] = s
	return nil
}
func (m *memSuppliers) ListByStore(_ context.Context, storeID string, _, _ int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range m.byID {
		if s.StoreID == storeID {
			out = append(out, s)
		}
	}
	return out, nil
}

type memStores struct {
	byID    map[string]*entity.Store
	members map[string][]string // userID → storeIDs
}

func newMemStores() *memStores {
	return &memStores{byID: map[string]*entity.Store{}, members: map[string][]string{}}
}

func (m *memStores) Create(_ context.Context, s *entity.Store) error {
	m.byID[s.ID] = s
	return nil
}
func (m *memStores) GetByID(_ context.Context, id string) (*entity.Store, error) {
	return m.byID[id], nil
}
func (m *memStores) Update(_ context.Context, s *entity.Store) error {
	m.byID[s.ID] = s
	return nil
}
func (m *memStores) ListByUser(_ context.Context, userID string) ([]*entity.Store, error) {
	var out []*entity.Store
	for _, id := range m.members[userID] {
		out = append(out, m.byID[id])
	}
	return out, nil
}
func (m *memStores) List(context.Context, int, int) ([]*entity.Store, error) {
	var out []*entity.Store
	for _, s := range m.byID {
		out = append(out, s)
	}
	return out, nil
}

// memAssignments implementa solo lo que usa la creación de tiendas.
type memAssignments struct {
	repository.PermissionRepository
	stores *memStores
	list   []domperm.StoreUserPermission
	fail   bool
}

func (m *memAssignments) UpsertStoreAssignment(_ context.Context, a *domperm.StoreUserPermission) error {
	if m.fail {
		return errors.New("fallo al asignar")
	}
	m.list = append(m.list, *a)
	m.stores.members[a.UserID] = append(m.stores.members[a.UserID], a.StoreID)
	return nil
}

// memStoreTx aplica la función y deshace la tienda si falla, como una tx.
type memStoreTx struct {
	stores *memStores
	perms  *memAssignments
}

func (t memStoreTx) RunStore(_ context.Context, fn func(repository.StoreRepository, repository.PermissionRepository) error) error {
	before := map[string]*entity.Store{}
	for k, v := range t.stores.byID {
		before[k] = v
	}
	if err := fn(t.stores, t.perms); err != nil {
		t.stores.byID = before
		return err
	}
	return nil
}

type memUsers struct{ byID map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}
func (m *memUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}
func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

type recordingInvalidator struct{ users []string }

func (r *recordingInvalidator) InvalidateUser(_ context.Context, userID string) {
	r.users = append(r.users, userID)
}
