// Package memory is an in-process document store with the same semantics
// as the mongodb repositories. It backs tests and the "memory" store driver.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	entity "catalog/internal/domain"
	"catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu         sync.RWMutex
	categories map[primitive.ObjectID]entity.Category
	items      map[primitive.ObjectID]entity.Item
}

func NewStore() *Store {
	return &Store{
		categories: map[primitive.ObjectID]entity.Category{},
		items:      map[primitive.ObjectID]entity.Item{},
	}
}

func (s *Store) Categories() repository.CategoryRepository { return categoryRepository{s} }

func (s *Store) Items() repository.ItemRepository { return itemRepository{s} }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func byName[T any](name func(T) string, id func(T) primitive.ObjectID) func(a, b T) int {
	return func(a, b T) int {
		if c := cmp.Compare(name(a), name(b)); c != 0 {
			return c
		}
		return cmp.Compare(id(a).Hex(), id(b).Hex())
	}
}

var (
	categoryOrder = byName(
		func(c entity.Category) string { return c.Name },
		func(c entity.Category) primitive.ObjectID { return c.ID },
	)
	itemOrder = byName(
		func(i entity.Item) string { return i.Name },
		func(i entity.Item) primitive.ObjectID { return i.ID },
	)
)

func cloneItem(i entity.Item) entity.Item {
	i.Category = slices.Clone(i.Category)
	if i.Category == nil {
		i.Category = []primitive.ObjectID{}
	}
	return i
}

// populate must be called with s.mu held.
func (s *Store) populate(i entity.Item) entity.PopulatedItem {
	p := entity.PopulatedItem{Item: cloneItem(i), Categories: []entity.Category{}}
	for _, id := range i.Category {
		if c, ok := s.categories[id]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return p
}

type categoryRepository struct{ s *Store }

func (r categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, entity.Category{ID: c.ID, Name: c.Name})
	}
	slices.SortFunc(out, categoryOrder)
	return out, nil
}

func (r categoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r categoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []entity.Category{}
	seen := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func (r categoryRepository) FindItemsReferencing(ctx context.Context, id primitive.ObjectID) ([]entity.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []entity.Item{}
	for _, i := range r.s.items {
		if slices.Contains(i.Category, id) {
			out = append(out, cloneItem(i))
		}
	}
	slices.SortFunc(out, itemOrder)
	return out, nil
}

func (r categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r categoryRepository) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[category.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	updated := *category
	r.s.categories[category.ID] = updated
	return &updated, nil
}

func (r categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

func (r categoryRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.categories)), nil
}

type itemRepository struct{ s *Store }

func (r itemRepository) List(ctx context.Context) ([]entity.PopulatedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]entity.Item, 0, len(r.s.items))
	for _, i := range r.s.items {
		items = append(items, i)
	}
	slices.SortFunc(items, itemOrder)

	out := make([]entity.PopulatedItem, 0, len(items))
	for _, i := range items {
		out = append(out, r.s.populate(i))
	}
	return out, nil
}

func (r itemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.PopulatedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := r.s.populate(i)
	return &p, nil
}

func (r itemRepository) Create(ctx context.Context, item *entity.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if item.Category == nil {
		item.Category = []primitive.ObjectID{}
	}
	r.s.items[item.ID] = cloneItem(*item)
	return nil
}

func (r itemRepository) Update(ctx context.Context, item *entity.Item) (*entity.PopulatedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[item.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.s.items[item.ID] = cloneItem(*item)
	p := r.s.populate(r.s.items[item.ID])
	return &p, nil
}

func (r itemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r itemRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.items)), nil
}

func (r itemRepository) TotalStock(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var total int64
	for _, i := range r.s.items {
		total += int64(i.Stock)
	}
	return total, nil
}
