package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
}

// URL is the canonical location of the category detail page.
func (c Category) URL() string {
	return "/catalog/category/" + c.ID.Hex()
}

// CategoryForm is the raw create/update submission.
type CategoryForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
}

// CategoryOption is a category as offered in the item form's multi-select.
type CategoryOption struct {
	Category
	Checked bool
}
