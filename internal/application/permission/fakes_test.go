package permission_test

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeUsers struct {
	byID  map[string]*entity.User
	calls int
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.calls++
	return f.byID[id], nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }

type fakeStores struct {
	byID map[string]*entity.Store
}

func (f *fakeStores) Create(_ context.Context, s *entity.Store) error {
	f.byID[s.ID] = s
	return nil
}

func (f *fakeStores) GetByID(_ context.Context, id string) (*entity.Store, error) {
	return f.byID[id], nil
}

func (f *fakeStores) Update(_ context.Context, s *entity.Store) error {
	f.byID[s.ID] = s
	return nil
}

func (f *fakeStores) ListByUser(context.Context, string) ([]*entity.Store, error) { return nil, nil }

func (f *fakeStores) List(context.Context, int, int) ([]*entity.Store, error) { return nil, nil }

type fakePerms struct {
	perms       []domperm.UserPermission
	assignments []domperm.StoreUserPermission
}

func (f *fakePerms) ListUserPermissions(_ context.Context, userID string) ([]domperm.UserPermission, error) {
	var out []domperm.UserPermission
	for _, p := range f.perms {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePerms) GetUserPermission(_ context.Context, id string) (*domperm.UserPermission, error) {
	for _, p := range f.perms {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePerms) CreateUserPermission(_ context.Context, p *domperm.UserPermission) error {
	f.perms = append(f.perms, *p)
	return nil
}

func (f *fakePerms) DeleteUserPermission(_ context.Context, id string) error {
	for i, p := range f.perms {
		if p.ID == id {
			f.perms = append(f.perms[:i], f.perms[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakePerms) ListStoreAssignments(_ context.Context, userID string) ([]domperm.StoreUserPermission, error) {
	var out []domperm.StoreUserPermission
	for _, a := range f.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakePerms) ListStoreMembers(_ context.Context, storeID string) ([]domperm.StoreUserPermission, error) {
	var out []domperm.StoreUserPermission
	for _, a := range f.assignments {
		if a.StoreID == storeID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakePerms) UpsertStoreAssignment(_ context.Context, a *domperm.StoreUserPermission) error {
	for i, cur := range f.assignments {
		if cur.UserID == a.UserID && cur.StoreID == a.StoreID {
			f.assignments[i] = *a
			return nil
		}
	}
	f.assignments = append(f.assignments, *a)
	return nil
}

func (f *fakePerms) DeleteStoreAssignment(_ context.Context, userID, storeID string) error {
	for i, a := range f.assignments {
		if a.UserID == userID && a.StoreID == storeID {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return nil
}

type memCache struct {
	data        map[string]domperm.Snapshot
	invalidated []string
	failGet     bool
}

func newMemCache() *memCache { return &memCache{data: map[string]domperm.Snapshot{}} }

func (c *memCache) Get(_ context.Context, userID string) (*domperm.Snapshot, bool, error) {
	if c.failGet {
		return nil, false, errors.New("redis caído")
	}
	s, ok := c.data[userID]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *memCache) Set(_ context.Context, s domperm.Snapshot) error {
	c.data[s.UserID] = s
	return nil
}

func (c *memCache) Invalidate(_ context.Context, userID string) error {
	delete(c.data, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type countingObserver struct {
	decisions map[string]int
	cache     map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{decisions: map[string]int{}, cache: map[string]int{}}
}

func (o *countingObserver) ObservePermissionDecision(rule string, _ bool) { o.decisions[rule]++ }
func (o *countingObserver) ObserveCache(result string)                    { o.cache[result]++ }
