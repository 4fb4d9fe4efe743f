package handler

import (
	"errors"
	"net/http"

	entity "catalog/internal/domain"
	"catalog/internal/service"
	"catalog/internal/validation"

	"github.com/gin-gonic/gin"
)

const CategoryListURL = "/catalog/categories"

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "category_list", gin.H{
		"Title":      "Category List",
		"Categories": categories,
	})
}

func (h *CategoryHandler) Detail(c *gin.Context) {
	id, ok := objectID(c, "Category not found")
	if !ok {
		return
	}

	detail, err := h.categoryService.Detail(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "category_detail", gin.H{
		"Title":    "Category Detail",
		"Category": detail.Category,
		"Items":    detail.Items,
	})
}

func (h *CategoryHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "category_form", gin.H{
		"Title":    "Create Category",
		"Category": entity.CategoryForm{},
	})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var form entity.CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		badForm(c, err)
		return
	}

	clean, res, err := validation.Category(form)
	if err != nil {
		badForm(c, err)
		return
	}
	if !res.Valid() {
		c.HTML(http.StatusOK, "category_form", gin.H{
			"Title":    "Create Category",
			"Category": clean,
			"Errors":   res.Errors,
		})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), clean)
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, category.URL())
}

func (h *CategoryHandler) UpdateForm(c *gin.Context) {
	id, ok := objectID(c, "Category not found")
	if !ok {
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "category_form", gin.H{
		"Title":    "Update Category",
		"ID":       id.Hex(),
		"Category": entity.CategoryForm{Name: category.Name, Description: category.Description},
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := objectID(c, "Category not found")
	if !ok {
		return
	}

	var form entity.CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		badForm(c, err)
		return
	}

	clean, res, err := validation.Category(form)
	if err != nil {
		badForm(c, err)
		return
	}
	if !res.Valid() {
		c.HTML(http.StatusOK, "category_form", gin.H{
			"Title":    "Update Category",
			"ID":       id.Hex(),
			"Category": clean,
			"Errors":   res.Errors,
		})
		return
	}

	updated, err := h.categoryService.Update(c.Request.Context(), id, clean)
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, updated.URL())
}

func (h *CategoryHandler) DeleteForm(c *gin.Context) {
	id, ok := objectIDOrRedirect(c, CategoryListURL)
	if !ok {
		return
	}

	detail, err := h.categoryService.Detail(c.Request.Context(), id)
	if errors.Is(err, service.ErrCategoryNotFound) {
		c.Redirect(http.StatusFound, CategoryListURL)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "category_delete", gin.H{
		"Title":    "Delete Category",
		"Category": detail.Category,
		"Items":    detail.Items,
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := objectIDOrRedirect(c, CategoryListURL)
	if !ok {
		return
	}
	if !confirmID(c, "categoryid", id) {
		return
	}

	detail, err := h.categoryService.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrCategoryInUse):
		c.HTML(http.StatusOK, "category_delete", gin.H{
			"Title":    "Delete Category",
			"Category": detail.Category,
			"Items":    detail.Items,
		})
	case errors.Is(err, service.ErrCategoryNotFound):
		c.Redirect(http.StatusSeeOther, CategoryListURL)
	case err != nil:
		fail(c, err)
	default:
		c.Redirect(http.StatusSeeOther, CategoryListURL)
	}
}
