package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
// @Summary Printer status
// @Tags printer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /printer/status [get]
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// PrintOrder prints the receipt of an order.
// @Summary Print order receipt
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id}/print [post]
func (h *PrinterHandler) PrintOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintOrderReceipt(c.Request.Context(), id)
	if err != nil {
		// The receipt was built but the printer failed
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Order receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
