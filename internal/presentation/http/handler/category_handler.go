package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles listing the tenant's categories
// @Summary List categories
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// Create handles creating a category
// @Summary Create category
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CategoryRequest true "Category"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req request.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// Update handles renaming a category
// @Summary Update category
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body request.CategoryRequest true "Category"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	var req request.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), &service.UpdateCategoryInput{
		ID:   id,
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", category)
}

// Delete handles deleting an unused category
// @Summary Delete category
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}
