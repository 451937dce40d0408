package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
)

// ModifierHandler handles modifier-related HTTP requests
type ModifierHandler struct {
	modifierService *service.ModifierService
}

// NewModifierHandler creates a new modifier handler
func NewModifierHandler(modifierService *service.ModifierService) *ModifierHandler {
	return &ModifierHandler{modifierService: modifierService}
}

// List handles listing modifiers, optionally those offered for one category
// @Summary List modifiers
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param category_id query string false "Category ID"
// @Success 200 {object} response.APIResponse
// @Router /modifiers [get]
func (h *ModifierHandler) List(c *gin.Context) {
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		categoryID = &id
	}

	modifiers, err := h.modifierService.ListModifiers(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Modifiers retrieved successfully", modifiers)
}

// Create handles creating a modifier
// @Summary Create modifier
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ModifierRequest true "Modifier"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /modifiers [post]
func (h *ModifierHandler) Create(c *gin.Context) {
	var req request.ModifierRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := modifierInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	modifier, err := h.modifierService.CreateModifier(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Modifier created successfully", modifier)
}

// Update handles updating a modifier
// @Summary Update modifier
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Modifier ID"
// @Param request body request.ModifierRequest true "Modifier"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /modifiers/{id} [put]
func (h *ModifierHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "modifier")
	if !ok {
		return
	}

	var req request.ModifierRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := modifierInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	modifier, err := h.modifierService.UpdateModifier(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Modifier updated successfully", modifier)
}

// Delete handles deleting a modifier
// @Summary Delete modifier
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Modifier ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /modifiers/{id} [delete]
func (h *ModifierHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "modifier")
	if !ok {
		return
	}

	if err := h.modifierService.DeleteModifier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Modifier deleted successfully", nil)
}

func modifierInput(req *request.ModifierRequest) (*service.ModifierInput, error) {
	var a amounts
	input := &service.ModifierInput{
		Name:        req.Name,
		Cost:        a.cents("cost", req.Cost),
		CategoryIDs: req.CategoryIDs,
	}
	return input, a.err()
}
