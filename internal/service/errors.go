package service

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("item not found")

	// ErrCategoryInUse is returned when deleting a category that items still reference.
	ErrCategoryInUse = errors.New("category is referenced by items")

	// ErrUnknownCategory is returned when an item references a category id that does not exist.
	ErrUnknownCategory = errors.New("selected category does not exist")
)
