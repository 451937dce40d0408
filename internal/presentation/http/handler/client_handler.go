package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gopos-api/pkg/utils"
)

// ClientHandler handles shop (client) account management by the super admin
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles listing clients
// @Summary List clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clients retrieved successfully", usersPayload(clients))
}

// Create handles creating a client
// @Summary Create client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateClientRequest true "Client"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.CreateClientInput{
		Phone:          req.Phone,
		Password:       req.Password,
		Name:           req.Name,
		CompanyName:    req.CompanyName,
		Address:        req.Address,
		QRPaymentImage: req.QRPaymentImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", userPayload(client))
}

// Update handles updating a client
// @Summary Update client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body request.UpdateClientRequest true "Client"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "client")
	if !ok {
		return
	}

	var req request.UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), &service.UpdateClientInput{
		ID:             id,
		Phone:          req.Phone,
		Password:       req.Password,
		Name:           req.Name,
		CompanyName:    req.CompanyName,
		Address:        req.Address,
		QRPaymentImage: req.QRPaymentImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", userPayload(client))
}

// Delete handles deleting a client and its staff
// @Summary Delete client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "client")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client deleted successfully", nil)
}

// ResetPassword handles resetting a client's password to the default
// @Summary Reset client password
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /clients/{id}/reset-password [put]
func (h *ClientHandler) ResetPassword(c *gin.Context) {
	id, ok := parseID(c, "id", "client")
	if !ok {
		return
	}

	if err := h.clientService.ResetPassword(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password reset to "+utils.DefaultResetPassword, nil)
}

func usersPayload(users []entity.User) []gin.H {
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userPayload(&users[i]))
	}
	return out
}
