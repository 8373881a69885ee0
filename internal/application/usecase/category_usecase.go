package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/normalize"
)

// CategoryUseCase categorías jerárquicas por tienda. El nombre es único entre hermanos
// (comparado sin tildes ni mayúsculas) y la jerarquía no admite ciclos.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría; ParentID debe pertenecer a la misma tienda.
func (uc *CategoryUseCase) Create(ctx context.Context, storeID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	parentID := nilIfEmpty(in.ParentID)
	if parentID != nil {
		if _, err := uc.get(ctx, storeID, *parentID); err != nil {
			return nil, err
		}
	}
	key := normalize.Key(name)
	if err := uc.checkSibling(ctx, storeID, parentID, key, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		ParentID:  parentID,
		Name:      name,
		NameKey:   key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Update renombra y/o mueve la categoría. Mover bajo sí misma o bajo un descendiente
// devuelve domain.ErrCategoryCycle.
func (uc *CategoryUseCase) Update(ctx context.Context, storeID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	parentID := nilIfEmpty(in.ParentID)
	if parentID != nil {
		if err := uc.checkNoCycle(ctx, storeID, c.ID, *parentID); err != nil {
			return nil, err
		}
	}
	key := normalize.Key(name)
	if err := uc.checkSibling(ctx, storeID, parentID, key, c.ID); err != nil {
		return nil, err
	}
	c.Name = name
	c.NameKey = key
	c.ParentID = parentID
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Get obtiene una categoría de la tienda.
func (uc *CategoryUseCase) Get(ctx context.Context, storeID, id string) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List lista las categorías de la tienda ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, storeID string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].NameKey < list[j].NameKey })
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Tree devuelve las categorías de la tienda como árbol (raíces ordenadas por nombre).
func (uc *CategoryUseCase) Tree(ctx context.Context, storeID string) ([]dto.CategoryNode, error) {
	flat, err := uc.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	children := make(map[string][]dto.CategoryResponse)
	var roots []dto.CategoryResponse
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}
	var build func(c dto.CategoryResponse) dto.CategoryNode
	build = func(c dto.CategoryResponse) dto.CategoryNode {
		node := dto.CategoryNode{CategoryResponse: c, Children: []dto.CategoryNode{}}
		for _, child := range children[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}
	out := make([]dto.CategoryNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r))
	}
	return out, nil
}

// Delete elimina una categoría sin hijas. Con hijas → domain.ErrConflict.
func (uc *CategoryUseCase) Delete(ctx context.Context, storeID, id string) error {
	c, err := uc.get(ctx, storeID, id)
	if err != nil {
		return err
	}
	all, err := uc.repo.ListByStore(ctx, storeID)
	if err != nil {
		return err
	}
	for _, other := range all {
		if other.ParentID != nil && *other.ParentID == c.ID {
			return domain.ErrConflict
		}
	}
	return uc.repo.Delete(ctx, c.ID)
}

func (uc *CategoryUseCase) get(ctx context.Context, storeID, id string) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *CategoryUseCase) checkSibling(ctx context.Context, storeID string, parentID *string, key, selfID string) error {
	existing, err := uc.repo.GetBySibling(ctx, storeID, parentID, key)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

// checkNoCycle sube desde newParentID hasta la raíz; si pasa por id hay ciclo.
func (uc *CategoryUseCase) checkNoCycle(ctx context.Context, storeID, id, newParentID string) error {
	seen := map[string]struct{}{}
	cur := newParentID
	for cur != "" {
		if cur == id {
			return domain.ErrCategoryCycle
		}
		if _, ok := seen[cur]; ok {
			return domain.ErrCategoryCycle
		}
		seen[cur] = struct{}{}
		c, err := uc.get(ctx, storeID, cur)
		if err != nil {
			return err
		}
		if c.ParentID == nil {
			return nil
		}
		cur = *c.ParentID
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		StoreID:   c.StoreID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
