package handler

import (
	"errors"
	"net/http"

	"catalog/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusError is an error with the HTTP status the error page is rendered with.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error { return e.Err }

func (e *StatusError) StatusCode() int { return e.Status }

// Text is the message shown on the error page.
func (e *StatusError) Text() string { return e.Message }

func NotFound(message string) *StatusError {
	return &StatusError{Status: http.StatusNotFound, Message: message}
}

// fail hands err to the error middleware and stops the chain.
func fail(c *gin.Context, err error) {
	var se *StatusError
	switch {
	case errors.As(err, &se):
	case errors.Is(err, service.ErrCategoryNotFound):
		se = &StatusError{Status: http.StatusNotFound, Message: "Category not found", Err: err}
	case errors.Is(err, service.ErrItemNotFound):
		se = &StatusError{Status: http.StatusNotFound, Message: "Item not found", Err: err}
	default:
		se = &StatusError{Status: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
	}
	_ = c.Error(se)
	c.Abort()
}

// objectID parses the :id route parameter. A malformed id cannot match any
// document, so it is reported as notFound.
func objectID(c *gin.Context, notFound string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, NotFound(notFound))
		return primitive.NilObjectID, false
	}
	return id, true
}

// objectIDOrRedirect is objectID for the delete pages, where a missing
// entity sends the user back to the listing.
func objectIDOrRedirect(c *gin.Context, listURL string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, listURL)
		return primitive.NilObjectID, false
	}
	return id, true
}

// confirmID checks the hidden id field of a delete form against the route id.
func confirmID(c *gin.Context, field string, id primitive.ObjectID) bool {
	posted := c.PostForm(field)
	if posted == "" || posted == id.Hex() {
		return true
	}
	fail(c, &StatusError{Status: http.StatusBadRequest, Message: "Mismatched " + field})
	return false
}

func badForm(c *gin.Context, err error) {
	fail(c, &StatusError{Status: http.StatusBadRequest, Message: "Invalid form submission", Err: err})
}
