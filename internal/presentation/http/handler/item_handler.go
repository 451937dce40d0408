package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/domain/repository"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List handles listing items, optionally of one category
// @Summary List items
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param category_id query string false "Category ID"
// @Param search query string false "Name search"
// @Success 200 {object} response.APIResponse
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	var filter request.ItemFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.ItemFilterParams{Search: filter.Search}
	if filter.CategoryID != "" {
		categoryID := uuid.MustParse(filter.CategoryID)
		params.CategoryID = &categoryID
	}

	items, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items retrieved successfully", items)
}

// Get handles fetching one item
// @Summary Get item
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "item")
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Create handles creating an item
// @Summary Create item
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ItemRequest true "Item"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	var a amounts
	price := a.cents("price", req.Price)
	if err := a.err(); err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      price,
		Image:      req.Image,
		TrackStock: req.TrackStock,
		Stock:      req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Update handles updating an item's catalog fields
// @Summary Update item
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body request.ItemRequest true "Item"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "item")
	if !ok {
		return
	}

	var req request.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	var a amounts
	price := a.cents("price", req.Price)
	if err := a.err(); err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), &service.UpdateItemInput{
		ID:         id,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      price,
		Image:      req.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// UpdateStock handles setting an item's stock level
// @Summary Set item stock
// @Description Overwrites the stock level and turns stock tracking on
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body request.StockRequest true "Stock"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /items/{id}/stock [put]
func (h *ItemHandler) UpdateStock(c *gin.Context) {
	id, ok := parseID(c, "id", "item")
	if !ok {
		return
	}

	var req request.StockRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.UpdateStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock updated successfully", item)
}

// Delete handles deleting an item
// @Summary Delete item
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "item")
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}
