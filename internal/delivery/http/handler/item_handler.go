package handler

import (
	"errors"
	"net/http"

	entity "catalog/internal/domain"
	"catalog/internal/service"
	"catalog/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ItemListURL = "/catalog/items"

type ItemHandler struct {
	itemService *service.ItemService
}

func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.itemService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "item_list", gin.H{
		"Title": "Item List",
		"Items": items,
	})
}

func (h *ItemHandler) Detail(c *gin.Context) {
	id, ok := objectID(c, "Item not found")
	if !ok {
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "item_detail", gin.H{
		"Title": "Item Detail",
		"Item":  item,
	})
}

func (h *ItemHandler) CreateForm(c *gin.Context) {
	options, err := h.itemService.CategoryOptions(c.Request.Context(), nil)
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "item_form", gin.H{
		"Title":      "Create Item",
		"Item":       entity.ItemForm{},
		"Categories": options,
	})
}

// selected returns the well-formed ids among the submitted category values.
func selected(values []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, err := primitive.ObjectIDFromHex(v); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// bindItem binds and validates the item form. When it returns ok == false
// the response has already been written.
func (h *ItemHandler) bindItem(c *gin.Context, title, id string) (entity.ItemForm, entity.ItemInput, bool) {
	var form entity.ItemForm
	if err := c.ShouldBind(&form); err != nil {
		badForm(c, err)
		return form, entity.ItemInput{}, false
	}

	clean, input, res, err := validation.Item(form)
	if err != nil {
		badForm(c, err)
		return clean, entity.ItemInput{}, false
	}
	if !res.Valid() {
		h.renderInvalid(c, title, id, clean, res)
		return clean, entity.ItemInput{}, false
	}
	return clean, input, true
}

// renderInvalid re-renders the item form with the submitted values and
// the submitted categories checked.
func (h *ItemHandler) renderInvalid(c *gin.Context, title, id string, clean entity.ItemForm, res validation.Result) {
	options, err := h.itemService.CategoryOptions(c.Request.Context(), selected(clean.Category))
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "item_form", gin.H{
		"Title":      title,
		"ID":         id,
		"Item":       clean,
		"Categories": options,
		"Errors":     res.Errors,
	})
}

// unknownCategory turns ErrUnknownCategory into a form error on category.
func (h *ItemHandler) unknownCategory(c *gin.Context, err error, title, id string, clean entity.ItemForm) bool {
	if !errors.Is(err, service.ErrUnknownCategory) {
		return false
	}
	var res validation.Result
	res.Add("category", "Selected category does not exist.")
	h.renderInvalid(c, title, id, clean, res)
	return true
}

func (h *ItemHandler) Create(c *gin.Context) {
	clean, input, ok := h.bindItem(c, "Create Item", "")
	if !ok {
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), input)
	if h.unknownCategory(c, err, "Create Item", "", clean) {
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, item.URL())
}

func (h *ItemHandler) UpdateForm(c *gin.Context) {
	id, ok := objectID(c, "Item not found")
	if !ok {
		return
	}

	item, options, err := h.itemService.Edit(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "item_form", gin.H{
		"Title":      "Update Item",
		"ID":         id.Hex(),
		"Item":       item,
		"Categories": options,
	})
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := objectID(c, "Item not found")
	if !ok {
		return
	}

	clean, input, ok := h.bindItem(c, "Update Item", id.Hex())
	if !ok {
		return
	}

	updated, err := h.itemService.Update(c.Request.Context(), id, input)
	if h.unknownCategory(c, err, "Update Item", id.Hex(), clean) {
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, updated.URL())
}

func (h *ItemHandler) DeleteForm(c *gin.Context) {
	id, ok := objectIDOrRedirect(c, ItemListURL)
	if !ok {
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrItemNotFound) {
		c.Redirect(http.StatusFound, ItemListURL)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "item_delete", gin.H{
		"Title": "Delete Item",
		"Item":  item,
	})
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := objectIDOrRedirect(c, ItemListURL)
	if !ok {
		return
	}
	if !confirmID(c, "itemid", id) {
		return
	}

	err := h.itemService.Delete(c.Request.Context(), id)
	if err != nil && !errors.Is(err, service.ErrItemNotFound) {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, ItemListURL)
}
