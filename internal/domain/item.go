package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Item struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       float64              `bson:"price"`
	Stock       int                  `bson:"stock"`
	Category    []primitive.ObjectID `bson:"category"`
}

func (i Item) URL() string {
	return "/catalog/item/" + i.ID.Hex()
}

// PopulatedItem is an item with its category references resolved.
// Categories keeps the stored reference order; dangling references are dropped.
type PopulatedItem struct {
	Item       `bson:",inline"`
	Categories []Category `bson:"categories"`
}

// ItemForm is the raw create/update submission. Category binds every
// submitted value, so an absent field is an empty list and a single value
// is a one-element list.
type ItemForm struct {
	Name        string   `form:"name" validate:"required"`
	Description string   `form:"description" validate:"required"`
	Price       string   `form:"price" validate:"required"`
	Stock       string   `form:"stock" validate:"required"`
	Category    []string `form:"category" validate:"dive,mongodb"`
}

// ItemInput is a validated item submission with price and stock coerced.
type ItemInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    []primitive.ObjectID
}

// Summary carries the home page aggregates. Each count has its own error
// so one failing query does not hide the others.
type Summary struct {
	CategoryCount int64
	ItemCount     int64
	TotalStock    int64

	CategoryCountErr error
	ItemCountErr     error
	TotalStockErr    error
}

// Err returns the first recorded aggregate failure.
func (s Summary) Err() error {
	switch {
	case s.CategoryCountErr != nil:
		return s.CategoryCountErr
	case s.ItemCountErr != nil:
		return s.ItemCountErr
	default:
		return s.TotalStockErr
	}
}
