// Package validation sanitizes and checks submitted category and item forms.
//
// Every field is trimmed and escaped before the rules run, so the values
// handed back to callers are safe to persist and to re-render.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	entity "catalog/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FieldError struct {
	Field   string
	Message string
}

// Result holds the field errors in the order the fields are declared.
type Result struct {
	Errors []FieldError
}

func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Add records a message against field.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// Has reports whether field has at least one error.
func (r Result) Has(field string) bool {
	for _, e := range r.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

var messages = map[string]string{
	"name":        "Name must be specified.",
	"description": "Description must be specified.",
	"price":       "Price must be specified.",
	"stock":       "Stock must be specified.",
	"category":    "Invalid category selected.",
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Sanitize trims s and escapes markup-significant characters.
func Sanitize(s string) string {
	return escaper.Replace(strings.TrimSpace(s))
}

func sanitizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, Sanitize(v))
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// check runs the struct rules and groups failures by field. A non-nil
// error means the rules could not run at all.
func check(form any) (map[string][]string, error) {
	err := validate.Struct(form)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("failed to validate form: %w", err)
	}

	byField := map[string][]string{}
	for _, fe := range verrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		msg, ok := messages[field]
		if !ok {
			msg = fmt.Sprintf("%s is invalid.", field)
		}
		if slices.Contains(byField[field], msg) {
			continue
		}
		byField[field] = append(byField[field], msg)
	}
	return byField, nil
}

func collect(byField map[string][]string, order ...string) Result {
	var res Result
	for _, field := range order {
		for _, msg := range byField[field] {
			res.Add(field, msg)
		}
	}
	return res
}

// Category sanitizes form and checks that name and description are present.
func Category(form entity.CategoryForm) (entity.CategoryForm, Result, error) {
	clean := entity.CategoryForm{
		Name:        Sanitize(form.Name),
		Description: Sanitize(form.Description),
	}
	byField, err := check(clean)
	if err != nil {
		return clean, Result{}, err
	}
	return clean, collect(byField, "name", "description"), nil
}

// Item sanitizes form, checks it, and coerces price, stock and category ids.
// The returned input is only meaningful when the result is valid.
func Item(form entity.ItemForm) (entity.ItemForm, entity.ItemInput, Result, error) {
	clean := entity.ItemForm{
		Name:        Sanitize(form.Name),
		Description: Sanitize(form.Description),
		Price:       Sanitize(form.Price),
		Stock:       Sanitize(form.Stock),
		Category:    sanitizeAll(form.Category),
	}
	byField, err := check(clean)
	if err != nil {
		return clean, entity.ItemInput{}, Result{}, err
	}
	if byField == nil {
		byField = map[string][]string{}
	}

	input := entity.ItemInput{
		Name:        clean.Name,
		Description: clean.Description,
		Category:    []primitive.ObjectID{},
	}

	if len(byField["price"]) == 0 {
		price, err := decimal.NewFromString(clean.Price)
		switch {
		case err != nil:
			byField["price"] = append(byField["price"], "Price must be a number.")
		case price.IsNegative():
			byField["price"] = append(byField["price"], "Price must not be negative.")
		default:
			input.Price = price.InexactFloat64()
		}
	}

	if len(byField["stock"]) == 0 {
		stock, err := strconv.Atoi(clean.Stock)
		switch {
		case err != nil:
			byField["stock"] = append(byField["stock"], "Stock must be a whole number.")
		case stock < 0:
			byField["stock"] = append(byField["stock"], "Stock must not be negative.")
		default:
			input.Stock = stock
		}
	}

	if len(byField["category"]) == 0 {
		seen := map[primitive.ObjectID]bool{}
		for _, hex := range clean.Category {
			id, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				byField["category"] = append(byField["category"], messages["category"])
				break
			}
			if !seen[id] {
				seen[id] = true
				input.Category = append(input.Category, id)
			}
		}
	}

	return clean, input, collect(byField, "name", "description", "price", "stock", "category"), nil
}
