package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/internal/domain/repository"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/sangkips/gopos-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles recording a sale
// @Summary Create order
// @Description Records a completed sale. Send an Idempotency-Key header to make retries safe.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.CreateOrderRequest true "Order"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	p := GetPolicy(c)
	if p == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	var req request.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	identity := p.Identity()
	input, err := createOrderInput(&req, identity.UserID, identity.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// List handles listing the tenant's orders, newest first
// @Summary List orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Param status query string false "completed, refunded or all"
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderListRequest
	if !bindQuery(c, &req) {
		return
	}

	params := &repository.OrderFilterParams{
		Page:      pagination.New(req.Page, req.PerPage),
		SortOrder: "desc",
	}
	if req.SortOrder != "" {
		params.SortOrder = req.SortOrder
	}
	if req.Status != "" && req.Status != "all" {
		status, err := enum.ParseOrderStatus(req.Status)
		if err != nil {
			response.BadRequest(c, "Invalid status")
			return
		}
		params.Status = &status
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Orders retrieved successfully", result.Items, result.Info)
}

// Get handles fetching one order with its lines
// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// ReturnItems handles returning individual lines of an order
// @Summary Return items
// @Description Marks every line carrying one of the given item ids as returned
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body request.ReturnItemRequest true "Items to return"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id}/return-item [post]
func (h *OrderHandler) ReturnItems(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}
	userID := GetUserID(c)
	if userID == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	var req request.ReturnItemRequest
	if !bindJSON(c, &req) {
		return
	}
	itemIDs := req.ItemIDs()
	if len(itemIDs) == 0 {
		response.BadRequest(c, "item_id or items is required")
		return
	}

	count, err := h.orderService.ReturnItems(c.Request.Context(), &service.ReturnItemsInput{
		OrderID: id,
		UserID:  *userID,
		ItemIDs: itemIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items returned successfully", gin.H{
		"returned_count": count,
	})
}

// Refund handles refunding a whole order
// @Summary Refund order
// @Description Refunds the order and marks every line returned. Also served at /orders/{id}/return.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id}/refund [post]
// @Router /orders/{id}/return [post]
func (h *OrderHandler) Refund(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}
	userID := GetUserID(c)
	if userID == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	order, err := h.orderService.RefundOrder(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order refunded successfully", order)
}

func createOrderInput(req *request.CreateOrderRequest, userID uuid.UUID, salesPerson string) (*service.CreateOrderInput, error) {
	var a amounts
	lines := make([]service.OrderLineInput, 0, len(req.Items))
	for i, item := range req.Items {
		mods := make([]entity.LineModifier, 0, len(item.Modifiers))
		for j, m := range item.Modifiers {
			mods = append(mods, entity.LineModifier{
				ModifierID: m.ModifierID,
				Name:       m.Name,
				Cost:       a.cents(fmt.Sprintf("items[%d].modifiers[%d].cost", i, j), m.Cost),
			})
		}
		lines = append(lines, service.OrderLineInput{
			ItemID:    item.ItemID,
			Name:      item.Name,
			UnitPrice: a.cents(fmt.Sprintf("items[%d].price", i), item.Price),
			Quantity:  item.Quantity,
			Modifiers: mods,
		})
	}

	input := &service.CreateOrderInput{
		UserID:             userID,
		SalesPersonName:    salesPerson,
		Lines:              lines,
		Subtotal:           a.cents("subtotal", req.Subtotal),
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     a.cents("discount_amount", req.DiscountAmount),
		Total:              a.cents("total", req.Total),
		PaymentMethod:      enum.PaymentMethod(req.PaymentMethod),
		CashAmount:         a.optional("cash_amount", req.CashAmount),
		ChangeAmount:       a.optional("change_amount", req.ChangeAmount),
		QRImage:            req.QRImage,
	}
	if err := a.err(); err != nil {
		return nil, err
	}
	return input, nil
}
