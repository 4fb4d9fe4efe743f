// Package repository declares the accessors the catalog services use to
// read and write categories and items. Implementations live in the
// mongodb and memory subpackages.
package repository

import (
	"context"
	"errors"

	entity "catalog/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup by id matches no document.
var ErrNotFound = errors.New("document not found")

type CategoryRepository interface {
	// List returns every category sorted by name ascending.
	List(ctx context.Context) ([]entity.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)
	// FindByIDs returns the categories that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Category, error)
	// FindItemsReferencing returns the items whose category list contains id.
	FindItemsReferencing(ctx context.Context, id primitive.ObjectID) ([]entity.Item, error)
	Create(ctx context.Context, category *entity.Category) error
	// Update replaces every writable field and returns the stored record.
	Update(ctx context.Context, category *entity.Category) (*entity.Category, error)
	// Delete removes the category. Callers check for referencing items first.
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type ItemRepository interface {
	// List returns every item sorted by name ascending with categories resolved.
	List(ctx context.Context) ([]entity.PopulatedItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.PopulatedItem, error)
	Create(ctx context.Context, item *entity.Item) error
	Update(ctx context.Context, item *entity.Item) (*entity.PopulatedItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	// TotalStock sums the stock of every item.
	TotalStock(ctx context.Context) (int64, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
